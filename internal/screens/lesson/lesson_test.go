package lesson

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/router"
	"github.com/abhisek/studydeck/internal/screens/exam"
	"github.com/abhisek/studydeck/internal/session"
)

type mockSource struct {
	doc content.Document
	err error
}

func (m mockSource) Document(context.Context, content.Locator) (content.Document, error) {
	return m.doc, m.err
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var physicsCh1 = content.Locator{Board: "CBSE", Class: "10", Subject: "Physics", ChapterID: "ch1"}

// plainView renders s without styling so tests can match on text.
func plainView(s *LessonScreen, width, height int) string {
	return ansi.Strip(s.View(width, height))
}

// loaded creates a LessonScreen and feeds it the result of its Init command.
func loaded(t *testing.T, src mockSource) *LessonScreen {
	t.Helper()
	return loadedKind(t, src, "")
}

func loadedKind(t *testing.T, src mockSource, kind content.DocType) *LessonScreen {
	t.Helper()
	s := New(Options{Source: src, Locator: physicsCh1, ChapterTitle: "Light", Kind: kind})
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init() returned nil cmd")
	}
	s.Update(cmd())
	return s
}

func TestLesson_Loading(t *testing.T) {
	s := New(Options{Source: mockSource{}, ChapterTitle: "Light"})
	if !strings.Contains(s.View(80, 20), "Loading content...") {
		t.Error("expected loading message before the document arrives")
	}
	if s.Title() != "Light" {
		t.Errorf("Title() = %q, want %q", s.Title(), "Light")
	}
}

func TestLesson_NotFoundIsComingSoon(t *testing.T) {
	s := loaded(t, mockSource{err: content.ErrNotFound})
	if !strings.Contains(s.View(80, 20), "Coming Soon") {
		t.Errorf("expected coming soon view, got:\n%s", s.View(80, 20))
	}
}

func TestLesson_FlaggedComingSoon(t *testing.T) {
	s := loaded(t, mockSource{doc: content.Document{Type: content.DocNotes, Content: "# Light", IsComingSoon: true}})
	if !strings.Contains(s.View(80, 20), "Coming Soon") {
		t.Error("expected coming soon view for a flagged document")
	}
}

func TestLesson_StorageError(t *testing.T) {
	s := loaded(t, mockSource{err: errors.New("disk gone")})
	if !strings.Contains(s.View(80, 20), "disk gone") {
		t.Errorf("expected error in view, got:\n%s", s.View(80, 20))
	}
}

func TestLesson_Notes(t *testing.T) {
	s := loaded(t, mockSource{doc: content.Document{
		Type:    content.DocNotes,
		Content: "# Reflection\n\nLight bounces off **mirrors**.\n\n- angle of incidence\n- angle of reflection",
	}})
	view := plainView(s, 80, 20)
	for _, want := range []string{"Reflection", "Light bounces off mirrors.", "• angle of incidence"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if len(s.KeyHints()) != 4 {
		t.Errorf("KeyHints() = %d hints, want 4 for notes", len(s.KeyHints()))
	}
}

func TestLesson_NotesScroll(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("line\n")
	}
	s := loaded(t, mockSource{doc: content.Document{Type: content.DocNotes, Content: b.String()}})
	s.View(80, 10)
	if s.vp.YOffset() != 0 {
		t.Fatalf("YOffset() = %d, want 0", s.vp.YOffset())
	}
	s.Update(specialKey(tea.KeyPgDown))
	if s.vp.YOffset() == 0 {
		t.Error("expected page down to scroll the notes")
	}
}

func TestLesson_PDF(t *testing.T) {
	s := loaded(t, mockSource{doc: content.Document{
		Type:    content.DocPDF,
		Content: "https://drive.google.com/file/d/abc/view",
	}})
	view := plainView(s, 100, 20)
	if !strings.Contains(view, "https://drive.google.com/file/d/abc/preview") {
		t.Errorf("expected preview link, got:\n%s", view)
	}
}

// quizDoc is a one question MCQ lesson whose first option is correct.
func quizDoc() content.Document {
	return content.Document{
		Type: content.DocMCQSimple,
		LessonMCQ: []content.QuestionItem{
			{Question: "Light travels fastest in?", Options: []string{"Vacuum", "Glass"}, CorrectAnswer: 0},
		},
	}
}

// openQuiz loads an MCQ lesson and returns the screen that replaces it.
func openQuiz(t *testing.T, doc content.Document, kind content.DocType, done func(session.Result)) *exam.ExamScreen {
	t.Helper()
	s := New(Options{
		Source:         mockSource{doc: doc},
		Locator:        physicsCh1,
		ChapterTitle:   "Light",
		Kind:           kind,
		OnQuizFinished: done,
	})
	_, cmd := s.Update(s.Init()())
	if cmd == nil {
		t.Fatal("expected an MCQ lesson to hand over to a quiz")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	quiz, ok := msg.Screen.(*exam.ExamScreen)
	if !ok {
		t.Fatalf("replacement screen = %T, want *exam.ExamScreen", msg.Screen)
	}
	return quiz
}

func TestLesson_MCQDocumentStartsQuiz(t *testing.T) {
	var results []session.Result
	quiz := openQuiz(t, quizDoc(), content.DocMCQSimple, func(r session.Result) { results = append(results, r) })
	if quiz.Title() != "Quiz: Light" {
		t.Errorf("Title() = %q, want %q", quiz.Title(), "Quiz: Light")
	}

	quiz.Update(quiz.Init()())
	snap := quiz.Snapshot()
	if snap.Mode != session.ModePractice || snap.Phase != session.PhaseActive || snap.Total != 1 {
		t.Fatalf("quiz snapshot = %+v, want an active practice session of 1 question", snap)
	}

	quiz.Update(keyPress('1'))
	if !strings.Contains(ansi.Strip(quiz.View(80, 24)), "No explanation provided.") {
		t.Error("expected the explanation fallback after answering")
	}
	quiz.Update(specialKey(tea.KeyEnter))

	if len(results) != 1 {
		t.Fatalf("OnQuizFinished calls = %d, want 1", len(results))
	}
	if results[0].Score != 1 || results[0].Total != 1 || results[0].AttemptID == "" {
		t.Errorf("quiz result = %+v, want 1/1 with an attempt ID", results[0])
	}
}

func TestLesson_MCQAnalysisMatchesMCQKind(t *testing.T) {
	doc := quizDoc()
	doc.Type = content.DocMCQAnalysis
	openQuiz(t, doc, content.DocMCQSimple, nil)
}

func TestLesson_MCQWithoutQuestionsIsComingSoon(t *testing.T) {
	s := loaded(t, mockSource{doc: content.Document{Type: content.DocMCQSimple}})
	if !strings.Contains(plainView(s, 80, 20), "Coming Soon") {
		t.Error("expected coming soon for an MCQ lesson without questions")
	}
}

func TestLesson_MCQKindMismatchIsComingSoon(t *testing.T) {
	s := New(Options{Source: mockSource{doc: quizDoc()}, Locator: physicsCh1, ChapterTitle: "Light", Kind: content.DocNotes})
	_, cmd := s.Update(s.Init()())
	if cmd != nil {
		t.Error("expected no quiz when notes were asked for")
	}
	if !strings.Contains(plainView(s, 80, 20), "Coming Soon") {
		t.Error("expected coming soon when asking for notes of an MCQ chapter")
	}
}

func TestLesson_EnterCloses(t *testing.T) {
	s := loaded(t, mockSource{doc: content.Document{Type: content.DocNotes, Content: "hi"}})
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on enter")
	}
}

func TestRenderNotes(t *testing.T) {
	out := ansi.Strip(RenderNotes("## Summary\n> Remember this\n```\nv = u + at\n```", 40))
	for _, want := range []string{"Summary", "Remember this", "v = u + at"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderNotes missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "```") {
		t.Error("code fences should not be rendered")
	}
}

func TestRenderNotes_Inline(t *testing.T) {
	md := "Use *Snell's law* with `n1 sin i`.\n\n" +
		"1. measure\n2. compute\n\n" +
		"See [the lab sheet](https://example.com/lab) and ~~skip~~ this."
	out := ansi.Strip(RenderNotes(md, 80))
	for _, want := range []string{
		"Use Snell's law with n1 sin i.",
		"1. measure",
		"2. compute",
		"the lab sheet (https://example.com/lab)",
		"skip this.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderNotes missing %q:\n%s", want, out)
		}
	}
	for _, marker := range []string{"*Snell", "`", "~~", "]("} {
		if strings.Contains(out, marker) {
			t.Errorf("RenderNotes left markdown %q in:\n%s", marker, out)
		}
	}
}

func TestRenderNotes_Table(t *testing.T) {
	out := ansi.Strip(RenderNotes("| Medium | Index |\n| --- | --- |\n| Water | 1.33 |", 60))
	for _, want := range []string{"Medium", "Index", "Water", "1.33"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderNotes missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "---") {
		t.Errorf("table delimiter row should not be rendered:\n%s", out)
	}
}

func TestLesson_KindMismatchIsComingSoon(t *testing.T) {
	s := loadedKind(t, mockSource{doc: content.Document{Type: content.DocNotes, Content: "# Light"}}, content.DocPDF)
	if !strings.Contains(s.View(80, 20), "Coming Soon") {
		t.Error("expected coming soon when asking for a PDF of a notes chapter")
	}
	if len(s.KeyHints()) != 1 {
		t.Errorf("KeyHints() = %d hints, want 1", len(s.KeyHints()))
	}
}
