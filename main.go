// Command tracker-deployer provisions, configures, and operates
// torrust-tracker deployments.
package main

import (
	"os"

	"github.com/torrust/tracker-deployer/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	// cmd.Execute prints any error itself; this return value only
	// decides the exit code.
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
