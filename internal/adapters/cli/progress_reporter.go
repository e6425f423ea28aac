package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var (
	colorSuccess = lipgloss.Color("#10b981")
	colorError   = lipgloss.Color("#ef4444")
	colorMuted   = lipgloss.Color("#6b7280")
	colorWarning = lipgloss.Color("#f59e0b")

	stepStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarning)
)

var _ usecases.ProgressListener = (*ProgressReporter)(nil)

// ProgressReporter renders command handler progress to the terminal using
// lipgloss styling: a muted line when a step starts, a colored checkmark or
// cross when it finishes, and a plain line for ad-hoc log events.
type ProgressReporter struct {
	out io.Writer
	err io.Writer
}

// NewProgressReporter creates a ProgressReporter writing to stdout/stderr.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{out: os.Stdout, err: os.Stderr}
}

func (r *ProgressReporter) OnStepStart(step string) {
	fmt.Fprintln(r.out, stepStyle.Render("› "+step))
}

func (r *ProgressReporter) OnStepFinish(step string, err error) {
	if err != nil {
		fmt.Fprintln(r.err, errorStyle.Render("✗ "+step))
		return
	}
	fmt.Fprintln(r.out, successStyle.Render("✓ "+step))
}

func (r *ProgressReporter) OnLog(level string, msg string) {
	if level == "warn" || level == "warning" {
		fmt.Fprintln(r.err, warnStyle.Render("⚠ "+msg))
		return
	}
	fmt.Fprintln(r.out, "  "+msg)
}
