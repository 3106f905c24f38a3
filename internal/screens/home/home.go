package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studydeck/internal/catalog"
	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/router"
	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/screens/chapters"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/abhisek/studydeck/internal/ui/layout"
)

// Options configures the home screen.
type Options struct {
	Profile config.Profile
	Lister  chapters.Lister
	Source  chapters.Source

	// Scores is shared with every chapter screen opened from home.
	Scores chapters.Scores
}

// HomeScreen is the learner's dashboard: one entry per subject of their class.
type HomeScreen struct {
	opts     Options
	subjects []catalog.Subject
	menu     components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen for opts.Profile.
func New(opts Options) *HomeScreen {
	if opts.Scores == nil {
		opts.Scores = chapters.Scores{}
	}
	h := &HomeScreen{
		opts:     opts,
		subjects: catalog.SubjectsFor(opts.Profile.Class, opts.Profile.Stream),
	}

	items := make([]components.MenuItem, 0, len(h.subjects)+1)
	for _, subj := range h.subjects {
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%-2s  %s", subj.Icon, subj.Name),
			Action: func() tea.Cmd {
				next := chapters.New(chapters.Options{
					Profile: opts.Profile,
					Subject: subj.Name,
					Lister:  opts.Lister,
					Source:  opts.Source,
					Scores:  opts.Scores,
				})
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		})
	}
	items = append(items, components.MenuItem{Label: "    Quit", Action: func() tea.Cmd { return tea.Quit }})
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderGreeting(h.opts.Profile, cw, compact))
	sections = append(sections, renderStatsBar(h.opts.Profile, len(h.subjects), len(h.opts.Scores), cw))
	sections = append(sections, renderSubjectMenu(h.menu, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open subject"},
	}
}
