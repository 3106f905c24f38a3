package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderGreeting(p config.Profile, cw int, compact bool) string {
	greeting := theme.Title.Render(fmt.Sprintf("Hello, %s!", p.DisplayName()))
	if compact {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(greeting)
	}
	sub := theme.Subtitle.Render("Pick a subject to study, practice, or take this week's test.")
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(greeting + "\n" + sub)
}

// renderStatsBar shows the learner's board, class and this run's results.
func renderStatsBar(p config.Profile, subjects, results, cw int) string {
	board := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(p.Board)
	class := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(p.ClassLabel())
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	stats := fmt.Sprintf("%s  %s  %s  %s",
		board, class,
		dim.Render(fmt.Sprintf("%d subjects", subjects)),
		dim.Render(fmt.Sprintf("%d results", results)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(stats)
}

func renderSubjectMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Render(m.View())
}

// renderFrame centers content within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
