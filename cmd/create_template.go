package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var createTemplateCmd = &cobra.Command{
	Use:     "create-template",
	Short:   "Emit a starter --env-file config, or its JSON Schema",
	GroupID: "maintenance",
	Example: `  tracker-deployer create-template --provider hetzner > env.json
  tracker-deployer create-template --schema`,
	RunE: runCreateTemplate,
}

func init() {
	rootCmd.AddCommand(createTemplateCmd)
	createTemplateCmd.Flags().String("provider", "lxd", "provider kind for the starter config: lxd or hetzner")
	createTemplateCmd.Flags().Bool("schema", false, "print the --env-file JSON Schema instead of a starter config")
}

func runCreateTemplate(cmd *cobra.Command, args []string) error {
	uc := usecases.NewCreateTemplate()

	if schema, _ := cmd.Flags().GetBool("schema"); schema {
		fmt.Println(string(uc.Schema()))
		return nil
	}

	provider, _ := cmd.Flags().GetString("provider")
	if !cmd.Flags().Changed("provider") && resolvedConfig.DefaultProvider != "" {
		provider = resolvedConfig.DefaultProvider
	}
	data, err := uc.Execute(provider)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
