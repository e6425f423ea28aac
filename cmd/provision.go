package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var provisionCmd = &cobra.Command{
	Use:     "provision <name>",
	Short:   "Provision infrastructure for an environment (Created -> Provisioned)",
	GroupID: "lifecycle",
	Args:    cobra.ExactArgs(1),
	RunE:    runProvision,
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}

func runProvision(cmd *cobra.Command, args []string) error {
	name, err := parseEnvironmentName(args[0])
	if err != nil {
		return err
	}

	deps := newDeps()
	uc := usecases.NewProvision(deps.Repo, deps.Layout, deps.ProvisionerRenderer, deps.Provisioner, deps.SSH, deps.Clock, deps.Progress)
	env, err := uc.Execute(cmd.Context(), name)
	if err != nil {
		return err
	}

	fmt.Printf("%s is now %s (instance %s)\n", env.Name.String(), env.State.Kind, derefString(env.InstanceIP))
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return "<none>"
	}
	return *s
}
