package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-len(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("  ─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// StatusIcon returns the appropriate status icon and color
func StatusIcon(status string) (string, lipgloss.Color) {
	switch status {
	case "match", "success":
		return "✓", ColorGreen
	case "mismatch":
		return "✗", ColorRed
	case "skipped":
		return "⊘", ColorYellow
	default:
		return "·", ColorWhite
	}
}

// KeyValue renders a dimmed label followed by a value
func KeyValue(key, value string) string {
	keyStyle := lipgloss.NewStyle().Foreground(ColorDarkGray)
	valueStyle := lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)
	return fmt.Sprintf("  %s %s", keyStyle.Render(key+":"), valueStyle.Render(value))
}

// Box creates a bordered box
func Box(content string, borderColor lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	return style.Render(content)
}
