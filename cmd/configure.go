package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var configureCmd = &cobra.Command{
	Use:     "configure <name>",
	Short:   "Run config-engine playbooks against a provisioned instance (Provisioned -> Configured)",
	GroupID: "lifecycle",
	Args:    cobra.ExactArgs(1),
	RunE:    runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	name, err := parseEnvironmentName(args[0])
	if err != nil {
		return err
	}

	deps := newDeps()
	uc := usecases.NewConfigure(deps.Repo, deps.Layout, deps.ConfigEngineRenderer, deps.ConfigEngine, deps.Clock, deps.Progress)
	env, err := uc.Execute(cmd.Context(), name)
	if err != nil {
		return err
	}

	fmt.Printf("%s is now %s\n", env.Name.String(), env.State.Kind)
	return nil
}
