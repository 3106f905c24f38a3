//go:build cucumber

package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/abhisek/studydeck/internal/content"
)

// TestAssessmentScenarios runs the assessment feature scenarios.
func TestAssessmentScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "assessment.feature")
	suite := godog.TestSuite{
		Name:                "assessment",
		ScenarioInitializer: InitializeAssessmentScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeAssessmentScenario wires steps for assessment scenarios.
func InitializeAssessmentScenario(ctx *godog.ScenarioContext) {
	state := &assessmentScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a chapter with (\d+) questions whose correct options are ([\d, ]+)$`, state.givenChapterWithAnswers)
	ctx.Step(`^a chapter with (\d+) questions$`, state.givenChapter)
	ctx.Step(`^I start a (PRACTICE|TEST) session$`, state.whenIStart)
	ctx.Step(`^I answer ([\d, ]+)$`, state.whenIAnswer)
	ctx.Step(`^I select option (\d+)$`, state.whenISelect)
	ctx.Step(`^the scores after each selection are ([\d, ]+)$`, state.thenScoresAfterSelection)
	ctx.Step(`^correctness was revealed after every selection$`, state.thenRevealedEverySelection)
	ctx.Step(`^correctness was never revealed before FINISHED$`, state.thenNeverRevealed)
	ctx.Step(`^the session is FINISHED with score (\d+) of (\d+)$`, state.thenFinishedWith)
	ctx.Step(`^the session is NO_CONTENT$`, state.thenNoContent)
	ctx.Step(`^no ACTIVE phase was observed$`, state.thenNoActiveObserved)
	ctx.Step(`^the selection is rejected as out of range$`, state.thenRejectedOutOfRange)
	ctx.Step(`^the selection is rejected as an invalid transition$`, state.thenRejectedInvalid)
	ctx.Step(`^the session is ACTIVE on question (\d+) and unanswered$`, state.thenActiveUnanswered)
	ctx.Step(`^option (\d+) is still selected$`, state.thenStillSelected)
}

type assessmentScenarioState struct {
	questions     content.QuestionSet
	session       *Session
	snapshots     []Snapshot
	selectScores  []int
	selectReveals []bool
	lastErr       error
	finalScore    int
	finalTotal    int
	finished      int
}

// reset clears scenario state.
func (s *assessmentScenarioState) reset() {
	*s = assessmentScenarioState{}
}

func parseInts(list string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// givenChapterWithAnswers seeds four-option questions with the listed keys.
func (s *assessmentScenarioState) givenChapterWithAnswers(count int, answers string) error {
	keys, err := parseInts(answers)
	if err != nil {
		return err
	}
	if len(keys) != count {
		return fmt.Errorf("got %d correct options for %d questions", len(keys), count)
	}
	s.questions = make(content.QuestionSet, count)
	for i, k := range keys {
		s.questions[i] = content.QuestionItem{
			Question:      fmt.Sprintf("Question %d", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: k,
		}
	}
	return nil
}

// givenChapter seeds a chapter whose questions all have option 0 correct.
func (s *assessmentScenarioState) givenChapter(count int) error {
	s.questions = s.questions[:0]
	for i := 0; i < count; i++ {
		s.questions = append(s.questions, content.QuestionItem{
			Question: fmt.Sprintf("Question %d", i+1),
			Options:  []string{"A", "B", "C", "D"},
		})
	}
	return nil
}

// whenIStart starts a session through a static resolver.
func (s *assessmentScenarioState) whenIStart(mode string) error {
	s.session = New(Mode(mode))
	s.session.OnChange(func(snap Snapshot) { s.snapshots = append(s.snapshots, snap) })
	s.session.OnFinished(func(score, total int) {
		s.finished++
		s.finalScore, s.finalTotal = score, total
	})
	qs, err := content.StaticResolver(s.questions).ResolveQuestionSet(context.Background(), content.Locator{})
	if err != nil && !errors.Is(err, content.ErrNotFound) {
		return err
	}
	return s.session.Load(qs)
}

// whenIAnswer selects each option and advances.
func (s *assessmentScenarioState) whenIAnswer(list string) error {
	answers, err := parseInts(list)
	if err != nil {
		return err
	}
	for _, k := range answers {
		if err := s.session.SelectOption(k); err != nil {
			return fmt.Errorf("select %d: %w", k, err)
		}
		snap := s.session.Snapshot()
		s.selectScores = append(s.selectScores, snap.Score)
		s.selectReveals = append(s.selectReveals, snap.RevealCorrectness)
		if err := s.session.Advance(); err != nil {
			return fmt.Errorf("advance: %w", err)
		}
	}
	return nil
}

// whenISelect records the result of a single selection.
func (s *assessmentScenarioState) whenISelect(k int) error {
	s.lastErr = s.session.SelectOption(k)
	return nil
}

func (s *assessmentScenarioState) thenScoresAfterSelection(list string) error {
	want, err := parseInts(list)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(s.selectScores, want) {
		return fmt.Errorf("scores after selection = %v, want %v", s.selectScores, want)
	}
	return nil
}

func (s *assessmentScenarioState) thenRevealedEverySelection() error {
	for i, revealed := range s.selectReveals {
		if !revealed {
			return fmt.Errorf("question %d: correctness not revealed", i+1)
		}
	}
	return nil
}

func (s *assessmentScenarioState) thenNeverRevealed() error {
	for i, snap := range s.snapshots {
		if snap.Phase == PhaseFinished {
			continue
		}
		if snap.RevealCorrectness || snap.ShowExplanation || snap.ShowScore {
			return fmt.Errorf("snapshot %d (%v) revealed results", i, snap.Phase)
		}
	}
	return nil
}

func (s *assessmentScenarioState) thenFinishedWith(score, total int) error {
	snap := s.session.Snapshot()
	if snap.Phase != PhaseFinished {
		return fmt.Errorf("phase = %v, want FINISHED", snap.Phase)
	}
	if s.finished != 1 {
		return fmt.Errorf("completion callback fired %d times, want 1", s.finished)
	}
	if s.finalScore != score || s.finalTotal != total {
		return fmt.Errorf("final = %d/%d, want %d/%d", s.finalScore, s.finalTotal, score, total)
	}
	return nil
}

func (s *assessmentScenarioState) thenNoContent() error {
	if got := s.session.Snapshot().Phase; got != PhaseNoContent {
		return fmt.Errorf("phase = %v, want NO_CONTENT", got)
	}
	return nil
}

func (s *assessmentScenarioState) thenNoActiveObserved() error {
	for _, snap := range s.snapshots {
		if snap.Phase == PhaseActive {
			return fmt.Errorf("observed ACTIVE phase")
		}
	}
	return nil
}

func (s *assessmentScenarioState) thenRejectedOutOfRange() error {
	if !errors.Is(s.lastErr, ErrOptionOutOfRange) {
		return fmt.Errorf("err = %v, want ErrOptionOutOfRange", s.lastErr)
	}
	return nil
}

func (s *assessmentScenarioState) thenRejectedInvalid() error {
	if !errors.Is(s.lastErr, ErrInvalidTransition) {
		return fmt.Errorf("err = %v, want ErrInvalidTransition", s.lastErr)
	}
	return nil
}

func (s *assessmentScenarioState) thenActiveUnanswered(question int) error {
	snap := s.session.Snapshot()
	if snap.Phase != PhaseActive || snap.CurrentIndex != question-1 || snap.Answered || snap.HasSelection() {
		return fmt.Errorf("snapshot = %+v, want ACTIVE on question %d unanswered", snap, question)
	}
	return nil
}

func (s *assessmentScenarioState) thenStillSelected(k int) error {
	if got := s.session.Snapshot().Selected; got != k {
		return fmt.Errorf("selected = %d, want %d", got, k)
	}
	return nil
}
