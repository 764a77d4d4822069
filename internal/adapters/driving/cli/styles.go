package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/recrawl/internal/core/domain"
)

// Colour palette for command output.
var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")) // Purple
	createdStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))            // Green
	modifiedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))            // Yellow
	unmodifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))            // Medium gray
	skippedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))            // Cyan
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))            // Red
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))            // Medium gray
)

// renderChange returns the styled label for a change type, padded so
// listed references line up.
func renderChange(t domain.ChangeType) string {
	label := pad(t.String())
	switch t {
	case domain.ChangeCreated:
		return createdStyle.Render(label)
	case domain.ChangeModified:
		return modifiedStyle.Render(label)
	case domain.ChangeUnmodified:
		return unmodifiedStyle.Render(label)
	case domain.ChangeSkipped:
		return skippedStyle.Render(label)
	default:
		return label
	}
}

// pad left-aligns a label in a 10 character cell.
func pad(s string) string {
	for len(s) < 10 {
		s += " "
	}
	return s
}
