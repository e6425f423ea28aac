package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/adapters/config"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var validateCmd = &cobra.Command{
	Use:     "validate --env-file <path>",
	Short:   "Check an --env-file config for cross-field rules without creating anything",
	GroupID: "maintenance",
	RunE:    runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("env-file", "", "path to the environment config JSON file (required)")
	_ = validateCmd.MarkFlagRequired("env-file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")

	req, err := config.LoadEnvFile(envFile)
	if err != nil {
		return err
	}
	if err := usecases.NewValidate().Execute(req); err != nil {
		return err
	}

	fmt.Printf("%s is valid\n", envFile)
	return nil
}
