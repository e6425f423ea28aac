package cmd

import "github.com/torrust/tracker-deployer/internal/core/entities"

// parseEnvironmentName validates the positional <name> argument every
// lifecycle and inspection command takes.
func parseEnvironmentName(s string) (entities.EnvironmentName, error) {
	return entities.NewEnvironmentName(s)
}
