package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

var (
	headlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).PaddingLeft(2)
)

// printError writes a red one-line headline and, when err implements
// entities.Helper, an indented multi-line guidance block beneath it.
func printError(err error) {
	fmt.Fprintln(os.Stderr, headlineStyle.Render("✗ "+err.Error()))
	if helper, ok := err.(entities.Helper); ok {
		fmt.Fprintln(os.Stderr, helpStyle.Render(helper.Help()))
	}
}
