package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studydeck/internal/content"
)

// Session drives one assessment attempt. It is not safe for concurrent use;
// exactly one caller owns and drives it.
type Session struct {
	state  State
	policy scoringPolicy
	exited bool

	listeners  []func(Snapshot)
	onFinished []func(score, total int)

	now func() time.Time
}

// New creates a session in the LOADING phase. Call Load with the resolved
// question set to begin.
func New(mode Mode) *Session {
	return &Session{
		state:  newState(uuid.NewString(), mode),
		policy: policyFor(mode),
		now:    time.Now,
	}
}

// Start resolves the question set for loc and returns a loaded session.
// A locator with no questions yields a NO_CONTENT session, not an error;
// only storage failures are returned.
func Start(ctx context.Context, r content.Resolver, loc content.Locator, mode Mode) (*Session, error) {
	loc.Mode = mode
	s := New(mode)
	qs, err := r.ResolveQuestionSet(ctx, loc)
	if err != nil && !errors.Is(err, content.ErrNotFound) {
		return nil, fmt.Errorf("resolve %s: %w", loc, err)
	}
	if err := s.Load(qs); err != nil {
		return nil, err
	}
	return s, nil
}

// Load moves a LOADING session to ACTIVE, or to NO_CONTENT for an empty set.
func (s *Session) Load(qs content.QuestionSet) error {
	if s.exited || s.state.Phase != PhaseLoading {
		return ErrInvalidTransition
	}
	if len(qs) == 0 {
		s.state.Phase = PhaseNoContent
		s.emit()
		return nil
	}

	s.state.Questions = qs
	s.state.answers = make([]int, len(qs))
	for i := range s.state.answers {
		s.state.answers[i] = NoSelection
	}
	s.state.CurrentIndex = 0
	s.state.Score = 0
	s.state.Selected = NoSelection
	s.state.Answered = false
	s.state.StartedAt = s.now()
	s.state.Phase = PhaseActive
	s.emit()
	return nil
}

// SelectOption picks option k for the current question. Only the first pick
// counts; later calls return ErrInvalidTransition.
func (s *Session) SelectOption(k int) error {
	if !s.accepting() || s.state.Answered {
		return ErrInvalidTransition
	}
	q := s.state.current()
	if !q.ValidOption(k) {
		return ErrOptionOutOfRange
	}

	s.state.Selected = k
	s.state.Answered = true
	s.state.answers[s.state.CurrentIndex] = k
	if s.policy.judgeOnSelect && q.IsCorrect(k) {
		s.state.Score++
	}
	s.emit()
	return nil
}

// Advance leaves an answered question, moving to the next one or to FINISHED
// after the last.
func (s *Session) Advance() error {
	if !s.accepting() || !s.state.Answered {
		return ErrInvalidTransition
	}
	if !s.policy.judgeOnSelect && s.state.current().IsCorrect(s.state.Selected) {
		s.state.Score++
	}

	if s.state.CurrentIndex < len(s.state.Questions)-1 {
		s.state.CurrentIndex++
		s.state.Selected = NoSelection
		s.state.Answered = false
		s.emit()
		return nil
	}

	s.state.Phase = PhaseFinished
	s.state.FinishedAt = s.now()
	s.emit()
	for _, fn := range s.onFinished {
		fn(s.state.Score, len(s.state.Questions))
	}
	return nil
}

// Exit discards the session from any phase. Listeners receive a final
// snapshot with Exited set; every later operation is rejected.
func (s *Session) Exit() {
	if s.exited {
		return
	}
	s.exited = true
	s.emit()
}

// Exited reports whether Exit has been called.
func (s *Session) Exited() bool {
	return s.exited
}

// OnFinished registers fn to receive the final score. It runs once, when the
// session reaches FINISHED, or immediately if it already has. It never runs
// for NO_CONTENT or exited sessions.
func (s *Session) OnFinished(fn func(score, total int)) {
	if s.exited {
		return
	}
	if s.state.Phase == PhaseFinished {
		fn(s.state.Score, len(s.state.Questions))
		return
	}
	s.onFinished = append(s.onFinished, fn)
}

// Result returns the outcome of a finished attempt. The second value is
// false until the session reaches FINISHED.
func (s *Session) Result() (Result, bool) {
	if s.state.Phase != PhaseFinished {
		return Result{}, false
	}
	return Result{
		AttemptID: s.state.ID,
		Mode:      s.state.Mode,
		Score:     s.state.Score,
		Total:     len(s.state.Questions),
	}, true
}

// OnChange registers fn to receive a snapshot after every transition.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.listeners = append(s.listeners, fn)
}

// Mode returns the session's assessment mode.
func (s *Session) Mode() Mode {
	return s.state.Mode
}

// ID returns the attempt ID. Every session, including a retry on the same
// chapter, gets a fresh one.
func (s *Session) ID() string {
	return s.state.ID
}

// accepting reports whether select and advance may run.
func (s *Session) accepting() bool {
	return !s.exited && s.state.Phase != PhaseLoading && !s.state.Phase.Terminal()
}

func (s *Session) emit() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.listeners {
		fn(snap)
	}
}
