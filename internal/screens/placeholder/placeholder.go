package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

// PlaceholderScreen shows a centered notice, e.g. a chapter that is not
// published yet.
type PlaceholderScreen struct {
	title   string
	heading string
	body    string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a "Coming Soon" screen with the given title.
func New(title string) *PlaceholderScreen {
	return NewWithMessage(title, "Coming Soon", "Content is being prepared.")
}

// NewWithMessage creates a placeholder with a custom heading and body.
func NewWithMessage(title, heading, body string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, heading: heading, body: body}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return Render(width, height, p.heading, p.body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}

// Render draws a heading and body centered in the given area.
func Render(width, height int, heading, body string) string {
	content := theme.ComingSoonBadge.Render("╌╌ "+heading+" ╌╌") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(body+"\n\nPress Esc to go back.")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
