package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var runCmd = &cobra.Command{
	Use:     "run <name>",
	Short:   "Bring the compose stack up on the instance (Released -> Running)",
	GroupID: "lifecycle",
	Args:    cobra.ExactArgs(1),
	RunE:    runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	name, err := parseEnvironmentName(args[0])
	if err != nil {
		return err
	}

	deps := newDeps()
	uc := usecases.NewRun(deps.Repo, deps.ContainerRuntime, deps.Clock, deps.Progress)
	env, err := uc.Execute(cmd.Context(), name)
	if err != nil {
		return err
	}

	fmt.Printf("%s is now %s\n", env.Name.String(), env.State.Kind)
	return nil
}
