package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var renderCmd = &cobra.Command{
	Use:   "render <name> --instance-ip <ip> --output <dir>",
	Short: "Render tofu/ansible/compose artifacts without invoking any tool",
	Long: `render exists to inspect what provision/configure/release would
produce: it writes the tofu/, ansible/, and compose/ sub-directories of
--output without running any external tool or changing the environment's
persisted state.`,
	GroupID: "inspection",
	Args:    cobra.ExactArgs(1),
	RunE:    runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("instance-ip", "0.0.0.0", "instance IP to render templates against")
	renderCmd.Flags().StringP("output", "o", "", "directory to render tofu/ansible/compose sub-directories into (default: a fresh render/<random> scratch directory)")
}

func runRender(cmd *cobra.Command, args []string) error {
	name, err := parseEnvironmentName(args[0])
	if err != nil {
		return err
	}
	instanceIP, _ := cmd.Flags().GetString("instance-ip")
	output, _ := cmd.Flags().GetString("output")

	deps := newDeps()
	if output == "" {
		output = filepath.Join(deps.WorkingDir, "render", uuid.NewString())
	}

	uc := usecases.NewRender(deps.Repo, deps.ProvisionerRenderer, deps.ConfigEngineRenderer, deps.ContainerRenderer, deps.Progress)
	if err := uc.Execute(cmd.Context(), name, instanceIP, output); err != nil {
		return err
	}

	fmt.Printf("rendered %q into %s\n", name.String(), output)
	return nil
}
