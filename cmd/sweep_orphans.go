package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var sweepOrphansCmd = &cobra.Command{
	Use:   "sweep-orphans",
	Short: "Find local-VM instances left behind by purged environments",
	Long: `sweep-orphans diffs the local-VM manager's instance list against
persisted environment records and reports any instance with no matching
record. It is dry-run by default; --apply also deletes them.`,
	GroupID: "maintenance",
	RunE:    runSweepOrphans,
}

func init() {
	rootCmd.AddCommand(sweepOrphansCmd)
	sweepOrphansCmd.Flags().Bool("apply", false, "delete orphaned instances instead of only reporting them")
}

func runSweepOrphans(cmd *cobra.Command, args []string) error {
	apply, _ := cmd.Flags().GetBool("apply")

	deps := newDeps()
	uc := usecases.NewSweepOrphans(deps.Repo, deps.VMManager, deps.Progress)
	orphans, err := uc.Execute(cmd.Context(), apply)
	if err != nil {
		return err
	}

	if len(orphans) == 0 {
		fmt.Println("no orphans found")
		return nil
	}
	for _, o := range orphans {
		status := "found"
		if o.Deleted {
			status = "deleted"
		}
		fmt.Printf("%s: %s\n", o.Name, status)
	}
	return nil
}
