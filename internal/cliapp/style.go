// Package cliapp implements Northroot's reference command-line front end:
// append, list, get, verify, inspect, and checkpoint over a journal file.
//
package cliapp

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/northroot/northroot/internal/verify"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

// verdictStyle maps a verifier verdict to its display color: green Ok,
// yellow Denied, red Violation, gray Invalid.
func verdictStyle(v verify.Verdict) lipgloss.Style {
	switch v {
	case verify.Ok:
		return successStyle
	case verify.Denied:
		return warnStyle
	case verify.Violation:
		return errorStyle
	default:
		return dimStyle
	}
}

func renderVerdict(v verify.Verdict) string {
	return verdictStyle(v).Render(string(v))
}
