package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var testCmd = &cobra.Command{
	Use:     "test <name>",
	Short:   "Probe the running instance's health-check endpoints",
	GroupID: "inspection",
	Args:    cobra.ExactArgs(1),
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	name, err := parseEnvironmentName(args[0])
	if err != nil {
		return err
	}

	deps := newDeps()
	uc := usecases.NewTest(deps.Repo, deps.SSH, deps.Clock, deps.Progress)
	report, err := uc.Execute(cmd.Context(), name)
	if err != nil {
		return err
	}

	for _, line := range report.Details {
		fmt.Println(line)
	}
	if !report.Healthy {
		fmt.Fprintln(os.Stderr, "unhealthy")
		os.Exit(1)
	}
	fmt.Println("healthy")
	return nil
}
