package lesson

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/ui/theme"
)

func noteWidth(width int) int {
	w := width - 6
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderPDF shows the preview link for a PDF lesson.
func renderPDF(width, height int, title, url string) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render(title))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("This lesson is a PDF. Open it in your browser:"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(url))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(b.String()))
}
