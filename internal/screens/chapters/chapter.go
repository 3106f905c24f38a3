package chapters

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/router"
	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/screens/exam"
	"github.com/abhisek/studydeck/internal/screens/lesson"
	"github.com/abhisek/studydeck/internal/session"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

// ChapterScreen offers the study actions for one chapter.
type ChapterScreen struct {
	opts    Options
	chapter content.Chapter
	menu    components.Menu
}

var _ screen.Screen = (*ChapterScreen)(nil)

// NewChapter creates the action menu for chapter.
func NewChapter(opts Options, chapter content.Chapter) *ChapterScreen {
	s := &ChapterScreen{opts: opts, chapter: chapter}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Notes", Action: s.openLesson(content.DocNotes)},
		{Label: "PDF", Action: s.openLesson(content.DocPDF)},
		{Label: "Quiz", Action: s.openLesson(content.DocMCQSimple)},
		{Label: "Practice", Action: s.openExam(content.ModePractice)},
		{Label: "Weekly Test", Action: s.openExam(content.ModeTest)},
	})
	return s
}

func (s *ChapterScreen) locator(mode content.Mode) content.Locator {
	return s.opts.Profile.Locator(s.opts.Subject, s.chapter.ID, mode)
}

func (s *ChapterScreen) openLesson(kind content.DocType) func() tea.Cmd {
	return func() tea.Cmd {
		loc := s.locator("")
		next := lesson.New(lesson.Options{
			Source:         s.opts.Source,
			Locator:        loc,
			ChapterTitle:   s.chapter.Title,
			Kind:           kind,
			OnQuizFinished: s.record(loc),
		})
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (s *ChapterScreen) openExam(mode content.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		loc := s.locator(mode)
		next := exam.New(exam.Options{
			Resolver:     s.opts.Source,
			Locator:      loc,
			ChapterTitle: s.chapter.Title,
			OnFinished:   s.record(loc),
		})
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (s *ChapterScreen) record(loc content.Locator) func(session.Result) {
	return func(r session.Result) {
		s.opts.Scores.Record(loc, r)
	}
}

func (s *ChapterScreen) Init() tea.Cmd {
	return nil
}

func (s *ChapterScreen) Title() string {
	return s.chapter.Title
}

func (s *ChapterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ChapterScreen) View(width, height int) string {
	// Quiz, Practice and Weekly Test, in menu order.
	for i, mode := range []content.Mode{"", content.ModePractice, content.ModeTest} {
		s.menu.Items[2+i].Detail = s.opts.Scores.summary(s.locator(mode))
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render(s.chapter.Title))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(s.opts.Subject))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	return lipgloss.NewStyle().Width(width).Height(height).Padding(1, 2).Render(b.String())
}
