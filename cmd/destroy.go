package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy <name>",
	Short: "Tear down an environment's infrastructure (any state -> Destroyed)",
	Long: `destroy is the operator escape hatch: it is allowed from any
non-Destroyed state, including transient and terminal-failure states, and
is idempotent against an already-Destroyed environment. Infrastructure and
local-VM-profile cleanup are best-effort; failures there are logged, not
returned, since Destroyed has no failure state of its own.`,
	GroupID: "lifecycle",
	Args:    cobra.ExactArgs(1),
	RunE:    runDestroy,
}

func init() {
	rootCmd.AddCommand(destroyCmd)
}

func runDestroy(cmd *cobra.Command, args []string) error {
	name, err := parseEnvironmentName(args[0])
	if err != nil {
		return err
	}

	deps := newDeps()
	uc := usecases.NewDestroy(deps.Repo, deps.Layout, deps.Provisioner, deps.VMManager, deps.Clock, deps.Progress)
	env, err := uc.Execute(cmd.Context(), name)
	if err != nil {
		return err
	}

	fmt.Printf("%s is now %s\n", env.Name.String(), env.State.Kind)
	return nil
}
