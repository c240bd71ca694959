package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	renderer     = lipgloss.NewRenderer(os.Stderr)
	successStyle = renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Success renders msg as a success line for stderr.
func Success(msg string) string {
	return successStyle.Render(msg)
}

// Error renders msg as an error line for stderr.
func Error(msg string) string {
	return errorStyle.Render(msg)
}
