package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var purgeCmd = &cobra.Command{
	Use:     "purge <name>",
	Short:   "Delete an environment's persisted record and build tree",
	Long:    "purge normally requires the environment be Destroyed first; --force bypasses that guard.",
	GroupID: "maintenance",
	Args:    cobra.ExactArgs(1),
	RunE:    runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
	purgeCmd.Flags().Bool("force", false, "purge even if the environment is not Destroyed")
}

func runPurge(cmd *cobra.Command, args []string) error {
	name, err := parseEnvironmentName(args[0])
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	deps := newDeps()
	uc := usecases.NewPurge(deps.Repo, deps.Layout, deps.Progress)
	if err := uc.Execute(cmd.Context(), name, force); err != nil {
		return err
	}

	fmt.Printf("purged %q\n", name.String())
	return nil
}
