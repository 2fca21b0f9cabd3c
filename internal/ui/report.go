package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.relnotes/internal/models"
	"github.com/wahlandcase/attuned.relnotes/internal/reconcile"
)

// RenderReport renders a gate report for the terminal
func RenderReport(releaseName string, report *reconcile.Report) string {
	var lines []string

	status := "match"
	summary := "Release notes match the tracker"
	if report.Comparison.HasDifferences() {
		status = "mismatch"
		summary = "Release notes and tracker differ"
	}
	icon, color := StatusIcon(status)
	summaryStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	lines = append(lines, Box(summaryStyle.Render(icon+" "+summary), color), "")

	if releaseName != "" {
		lines = append(lines, KeyValue("Release", releaseName))
	}
	lines = append(lines, KeyValue("Fix version", report.FixVersion))

	lines = append(lines, renderTickets("ONLY IN RELEASE", "release", report.OnlyInRelease())...)
	lines = append(lines, renderTickets("ONLY IN TRACKER", "tracker", report.OnlyInTracker())...)
	lines = append(lines, renderTickets("IN BOTH", "common", report.Common())...)

	return strings.Join(lines, "\n")
}

func renderTickets(title, side string, tickets []models.Ticket) []string {
	if len(tickets) == 0 {
		return nil
	}

	color := SideColor(side)
	keyStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	lines := []string{"", SectionHeader(fmt.Sprintf("%s (%d)", title, len(tickets)), color)}
	for _, ticket := range tickets {
		lines = append(lines, fmt.Sprintf("    %s %s", keyStyle.Render(ticket.Key), titleStyle.Render(ticket.Title)))
	}
	return lines
}
