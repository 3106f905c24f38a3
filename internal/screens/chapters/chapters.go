// Package chapters lists a subject's chapters and the study actions for each.
package chapters

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/router"
	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/screens/placeholder"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/abhisek/studydeck/internal/ui/layout"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

// Lister returns the published chapters of a subject.
type Lister interface {
	Chapters(ctx context.Context, loc content.Locator) ([]content.Chapter, error)
}

// Source serves both lesson documents and question sets.
type Source interface {
	content.Resolver
	content.DocumentSource
}

// Options configures the chapter screens.
type Options struct {
	Profile config.Profile
	Subject string
	Lister  Lister
	Source  Source
	Scores  Scores
}

type chaptersLoadedMsg struct {
	Chapters []content.Chapter
	Err      error
}

// ListScreen shows the chapters of one subject.
type ListScreen struct {
	opts     Options
	loaded   bool
	chapters []content.Chapter
	errMsg   string
	menu     components.Menu
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// New creates a ListScreen for opts.Subject.
func New(opts Options) *ListScreen {
	if opts.Scores == nil {
		opts.Scores = Scores{}
	}
	return &ListScreen{opts: opts}
}

func (s *ListScreen) Init() tea.Cmd {
	lister := s.opts.Lister
	loc := s.opts.Profile.Locator(s.opts.Subject, "", "")
	return func() tea.Msg {
		chapters, err := lister.Chapters(context.Background(), loc)
		return chaptersLoadedMsg{Chapters: chapters, Err: err}
	}
}

func (s *ListScreen) Title() string {
	return s.opts.Subject
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	if len(s.chapters) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open chapter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chaptersLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.chapters = msg.Chapters
		s.menu = components.NewMenu(s.menuItems())
		return s, nil
	}

	if len(s.chapters) == 0 {
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ListScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, len(s.chapters))
	for i, ch := range s.chapters {
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%2d. %s", i+1, ch.Title),
			Detail: s.lastResults(ch.ID),
			Action: func() tea.Cmd {
				next := NewChapter(s.opts, ch)
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		}
	}
	return items
}

// lastResults summarizes the latest quiz, practice and test results of a
// chapter.
func (s *ListScreen) lastResults(chapterID string) string {
	var parts []string
	for _, mode := range []content.Mode{"", content.ModePractice, content.ModeTest} {
		loc := s.opts.Profile.Locator(s.opts.Subject, chapterID, mode)
		name := strings.ToLower(string(mode))
		if mode == "" {
			name = "quiz"
		}
		if r, ok := s.opts.Scores.Last(loc); ok {
			parts = append(parts, fmt.Sprintf("%s %s", name, r))
		}
	}
	return strings.Join(parts, " · ")
}

func (s *ListScreen) View(width, height int) string {
	switch {
	case !s.loaded:
		return placeholder.Render(width, height, "Loading", "Loading chapters...")
	case s.errMsg != "":
		return placeholder.Render(width, height, "Error", "Could not load chapters: "+s.errMsg)
	case len(s.chapters) == 0:
		return placeholder.Render(width, height, "No Chapters Yet",
			fmt.Sprintf("No chapters are published for %s.", s.opts.Subject))
	}

	// Results may have changed while a child screen was open.
	for i := range s.menu.Items {
		s.menu.Items[i].Detail = s.lastResults(s.chapters[i].ID)
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render(s.opts.Subject))
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d chapters", len(s.chapters))))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	return lipgloss.NewStyle().Width(width).Height(height).Padding(1, 2).Render(b.String())
}
