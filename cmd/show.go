package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/adapters/encoding"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var showCmd = &cobra.Command{
	Use:     "show <name>",
	Short:   "Print one environment's full persisted record",
	GroupID: "inspection",
	Args:    cobra.ExactArgs(1),
	RunE:    runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().String("format", "json", "output format: json or toon")
}

func runShow(cmd *cobra.Command, args []string) error {
	name, err := parseEnvironmentName(args[0])
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	deps := newDeps()
	uc := usecases.NewShow(deps.Repo)
	env, err := uc.Execute(cmd.Context(), name)
	if err != nil {
		return err
	}

	switch format {
	case "toon":
		data, err := encoding.EncodeEnvironmentTOON(env)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	default:
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}
