package exam

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/router"
	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/session"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/abhisek/studydeck/internal/ui/layout"
)

// Options configures an ExamScreen.
type Options struct {
	Resolver content.Resolver

	// Locator identifies the chapter; its Mode picks PRACTICE or TEST.
	Locator content.Locator

	ChapterTitle string

	// Label replaces the mode name in the screen title.
	Label string

	// OnFinished receives the attempt's result once, when the session
	// finishes.
	OnFinished func(session.Result)
}

// ExamScreen renders an assessment session and routes key presses to it.
// It never touches the score or position directly.
type ExamScreen struct {
	opts   Options
	sess   *session.Session
	snap   session.Snapshot
	cursor int
	errMsg string

	showingQuitConfirm bool
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.BackInterceptor = (*ExamScreen)(nil)

// New creates an ExamScreen. The session starts in LOADING; Init resolves
// the questions.
func New(opts Options) *ExamScreen {
	s := &ExamScreen{opts: opts}
	s.sess = session.New(opts.Locator.Mode)
	s.sess.OnChange(func(snap session.Snapshot) {
		s.snap = snap
	})
	if opts.OnFinished != nil {
		s.sess.OnFinished(func(int, int) {
			if r, ok := s.sess.Result(); ok {
				opts.OnFinished(r)
			}
		})
	}
	s.snap = s.sess.Snapshot()
	return s
}

func (s *ExamScreen) Init() tea.Cmd {
	return s.loadQuestions()
}

func (s *ExamScreen) Title() string {
	prefix := "Practice"
	switch {
	case s.opts.Label != "":
		prefix = s.opts.Label
	case s.opts.Locator.Mode == content.ModeTest:
		prefix = "Test"
	}
	if s.opts.ChapterTitle == "" {
		return prefix
	}
	return prefix + ": " + s.opts.ChapterTitle
}

// InterceptsBack keeps Esc on this screen so leaving goes through Exit.
func (s *ExamScreen) InterceptsBack() bool {
	return true
}

// Snapshot returns the last session snapshot rendered.
func (s *ExamScreen) Snapshot() session.Snapshot {
	return s.snap
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave test"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.snap.Phase {
	case session.PhaseActive:
		if s.snap.Answered {
			label := "Next question"
			if s.snap.IsLast() {
				label = "Finish"
			}
			return []layout.KeyHint{
				{Key: "Enter", Description: label},
				{Key: "Esc", Description: "Exit"},
			}
		}
		n := len(s.snap.Question.Options)
		return []layout.KeyHint{
			{Key: fmt.Sprintf("1-%d/A-%s", n, components.OptionLetter(n-1)), Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Exit"},
		}
	case session.PhaseFinished:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Exit"},
		}
	case session.PhaseNoContent:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return nil
}

func (s *ExamScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	switch s.snap.Phase {
	case session.PhaseNoContent:
		return renderNoContent(width)
	case session.PhaseActive:
		return s.renderQuestionView(width)
	case session.PhaseFinished:
		return s.renderResult(width, height)
	}
	return renderLoading(width)
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// loadQuestions resolves the question set off the UI loop.
func (s *ExamScreen) loadQuestions() tea.Cmd {
	resolver := s.opts.Resolver
	loc := s.opts.Locator
	return func() tea.Msg {
		qs, err := resolver.ResolveQuestionSet(context.Background(), loc)
		return questionsLoadedMsg{Questions: qs, Err: err}
	}
}

func (s *ExamScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil && !errors.Is(msg.Err, content.ErrNotFound) {
		s.errMsg = fmt.Sprintf("could not load questions: %v", msg.Err)
		return s, nil
	}
	// A stale load after exit is rejected by the session.
	_ = s.sess.Load(msg.Questions)
	s.cursor = 0
	return s, nil
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s.exit()
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s.exit()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch s.snap.Phase {
	case session.PhaseLoading:
		if key == "esc" {
			return s.exit()
		}
	case session.PhaseNoContent:
		return s.exit()
	case session.PhaseFinished:
		switch key {
		case "r", "R":
			return s, s.retry()
		case "esc", "enter", "q":
			return s.exit()
		}
	case session.PhaseActive:
		return s.handleActiveKey(key)
	}
	return s, nil
}

func (s *ExamScreen) handleActiveKey(key string) (screen.Screen, tea.Cmd) {
	if key == "esc" {
		if s.snap.Mode == content.ModeTest {
			s.showingQuitConfirm = true
			return s, nil
		}
		return s.exit()
	}

	if s.snap.Answered {
		switch key {
		case "enter", "space", "n", "right":
			_ = s.sess.Advance()
			s.cursor = 0
		}
		return s, nil
	}

	options := len(s.snap.Question.Options)
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < options-1 {
			s.cursor++
		}
	case "enter", "space":
		_ = s.sess.SelectOption(s.cursor)
	default:
		if k, ok := optionForKey(key); ok && k < options {
			s.cursor = k
			_ = s.sess.SelectOption(k)
		}
	}
	return s, nil
}

// optionForKey maps "1".."8" and "a".."h" to an option index.
func optionForKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '8':
		return int(c - '1'), true
	case c >= 'a' && c <= 'h':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'H':
		return int(c - 'A'), true
	}
	return 0, false
}

func (s *ExamScreen) exit() (screen.Screen, tea.Cmd) {
	s.sess.Exit()
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

// retry replaces this screen with a fresh session on the same chapter.
func (s *ExamScreen) retry() tea.Cmd {
	s.sess.Exit()
	next := New(s.opts)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
