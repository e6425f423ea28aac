package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var releaseCmd = &cobra.Command{
	Use:     "release <name>",
	Short:   "Render and upload the compose stack to the instance (Configured -> Released)",
	GroupID: "lifecycle",
	Args:    cobra.ExactArgs(1),
	RunE:    runRelease,
}

func init() {
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, args []string) error {
	name, err := parseEnvironmentName(args[0])
	if err != nil {
		return err
	}

	deps := newDeps()
	uc := usecases.NewRelease(deps.Repo, deps.Layout, deps.ContainerRenderer, deps.SSH, deps.Clock, deps.Progress)
	env, err := uc.Execute(cmd.Context(), name)
	if err != nil {
		return err
	}

	fmt.Printf("%s is now %s\n", env.Name.String(), env.State.Kind)
	return nil
}
