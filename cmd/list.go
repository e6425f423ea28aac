package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List every persisted environment",
	GroupID: "inspection",
	Aliases: []string{"ls"},
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	deps := newDeps()
	uc := usecases.NewList(deps.Repo)
	summaries, err := uc.Execute(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tINSTANCE IP")
	for _, s := range summaries {
		ip := "<none>"
		if s.InstanceIP != nil {
			ip = *s.InstanceIP
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.State, ip)
	}
	return w.Flush()
}
