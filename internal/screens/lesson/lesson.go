package lesson

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/router"
	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/screens/exam"
	"github.com/abhisek/studydeck/internal/screens/placeholder"
	"github.com/abhisek/studydeck/internal/session"
	"github.com/abhisek/studydeck/internal/ui/layout"
)

// documentLoadedMsg is sent when the chapter document has been read.
type documentLoadedMsg struct {
	Doc content.Document
	Err error
}

// Options configures a LessonScreen.
type Options struct {
	Source       content.DocumentSource
	Locator      content.Locator
	ChapterTitle string

	// Kind restricts the screen to documents of that type; anything else is
	// shown as coming soon. Either MCQ type matches the other. Empty accepts
	// every type.
	Kind content.DocType

	// OnQuizFinished receives the result of an MCQ lesson, once per attempt.
	OnQuizFinished func(session.Result)
}

// LessonScreen shows a chapter's lesson body: scrollable notes, a PDF link,
// or a coming soon notice. An MCQ lesson is handed to a practice session.
type LessonScreen struct {
	opts Options

	loaded bool
	doc    content.Document
	errMsg string

	vp            viewport.Model
	renderedWidth int
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a LessonScreen for the chapter in opts.
func New(opts Options) *LessonScreen {
	return &LessonScreen{
		opts: opts,
		vp:   viewport.New(),
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	source := s.opts.Source
	loc := s.opts.Locator
	return func() tea.Msg {
		doc, err := source.Document(context.Background(), loc)
		return documentLoadedMsg{Doc: doc, Err: err}
	}
}

func (s *LessonScreen) Title() string {
	return s.opts.ChapterTitle
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.showsNotes() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "PgUp/PgDn", Description: "Page"},
			{Key: "Enter", Description: "Complete & close"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *LessonScreen) showsNotes() bool {
	return s.shows(content.DocNotes)
}

// shows reports whether the loaded document is displayed as type t.
func (s *LessonScreen) shows(t content.DocType) bool {
	return s.loaded && s.errMsg == "" && s.doc.Available() &&
		s.doc.Type == t && kindMatches(s.opts.Kind, t)
}

func kindMatches(kind, t content.DocType) bool {
	return kind == "" || kind == t || (kind.IsMCQ() && t.IsMCQ())
}

// quiz builds the practice session that replaces this screen for an MCQ
// lesson.
func (s *LessonScreen) quiz() tea.Cmd {
	loc := s.opts.Locator
	loc.Mode = content.ModePractice
	next := exam.New(exam.Options{
		Resolver:     content.StaticResolver(s.doc.LessonMCQ),
		Locator:      loc,
		ChapterTitle: s.opts.ChapterTitle,
		Label:        "Quiz",
		OnFinished:   s.opts.OnQuizFinished,
	})
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case documentLoadedMsg:
		s.loaded = true
		if msg.Err != nil && !errors.Is(msg.Err, content.ErrNotFound) {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if msg.Err == nil {
			s.doc = msg.Doc
		}
		s.renderedWidth = 0
		if s.doc.Available() && s.doc.Type.IsMCQ() && kindMatches(s.opts.Kind, s.doc.Type) {
			return s, s.quiz()
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" && s.loaded {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *LessonScreen) View(width, height int) string {
	switch {
	case !s.loaded:
		return placeholder.Render(width, height, "Loading", "Loading content...")
	case s.errMsg != "":
		return placeholder.Render(width, height, "Error", fmt.Sprintf("Could not load lesson: %s", s.errMsg))
	case !s.doc.Available(), !kindMatches(s.opts.Kind, s.doc.Type):
		return placeholder.Render(width, height, "Coming Soon", "Content is being prepared.")
	}

	switch s.doc.Type {
	case content.DocPDF:
		return renderPDF(width, height, s.opts.ChapterTitle, content.PreviewURL(s.doc.Content))
	case content.DocMCQSimple, content.DocMCQAnalysis:
		return placeholder.Render(width, height, "Loading", "Starting the quiz...")
	}

	// The frame size is only known here, so notes are laid out lazily.
	s.vp.SetWidth(width)
	s.vp.SetHeight(height)
	if s.renderedWidth != width {
		s.vp.SetContent(RenderNotes(s.doc.Content, noteWidth(width)))
		s.renderedWidth = width
	}
	return s.vp.View()
}
