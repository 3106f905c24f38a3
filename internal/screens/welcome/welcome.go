package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/router"
	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bookEnd      = 400 * time.Millisecond
	bannerEnd    = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

const bookArt = `   ______ ______
 _/      Y      \_
// ~~ ~~ | ~~ ~  \\
// ~ ~ ~~| ~~~ ~~ \\
//________.|.________\\
'----------'-'----------'`

// page flip frames drawn beside the book
var pageFrames = []string{"◜", "◝", "◞", "◟"}

type tickMsg time.Time

// WelcomeScreen shows a short splash before replacing itself with the
// dashboard. Any key skips it.
type WelcomeScreen struct {
	learner      string
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen greeting learner that transitions to the
// screen produced by nextFactory.
func New(learner string, nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		learner:     learner,
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(bookArt)

	if w.elapsed >= bookEnd {
		page := lipgloss.NewStyle().Foreground(theme.Accent).
			Render(pageFrames[w.tickCount%len(pageFrames)])
		lines := strings.Split(rendered, "\n")
		if len(lines) > 2 {
			lines[2] = page + "  " + lines[2] + "  " + page
		}
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{rendered}

	if w.elapsed >= bookEnd {
		sections = append(sections, "", RenderBanner(width))
	}

	if w.elapsed >= bannerEnd {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Welcome back, " + w.learner + ". Ready to study?")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", tagline, "", hint)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
