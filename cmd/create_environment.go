package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/adapters/config"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var createEnvironmentCmd = &cobra.Command{
	Use:     "create-environment --env-file <path>",
	Short:   "Create a new environment from an --env-file JSON document",
	GroupID: "lifecycle",
	Example: `  tracker-deployer create-environment --env-file ./env.json`,
	RunE:    runCreateEnvironment,
}

func init() {
	rootCmd.AddCommand(createEnvironmentCmd)
	createEnvironmentCmd.Flags().String("env-file", "", "path to the environment config JSON file (required)")
	_ = createEnvironmentCmd.MarkFlagRequired("env-file")
}

func runCreateEnvironment(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")

	req, err := config.LoadEnvFile(envFile)
	if err != nil {
		return err
	}
	if err := usecases.NewValidate().Execute(req); err != nil {
		return err
	}

	deps := newDeps()
	uc := usecases.NewCreateEnvironment(deps.Repo, deps.Clock, deps.Progress)
	env, err := uc.Execute(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Printf("created environment %q in state %s\n", env.Name.String(), env.State.Kind)
	return nil
}
