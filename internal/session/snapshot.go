package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/studydeck/internal/content"
)

// Snapshot is a read-only view of a session for presentation. Renderers read
// RevealCorrectness, ShowExplanation and ShowScore and never re-derive the
// mode's disclosure rule.
type Snapshot struct {
	ID           string
	Phase        Phase
	Mode         Mode
	CurrentIndex int
	Total        int

	// Question is the current question while ACTIVE, nil otherwise.
	Question *content.QuestionItem

	Selected int
	Answered bool

	// RevealCorrectness allows marking options correct or incorrect.
	RevealCorrectness bool

	// ShowExplanation allows showing the current question's explanation.
	ShowExplanation bool

	// ShowScore allows showing Score.
	ShowScore bool
	Score     int

	// Review lists every question with the learner's answer. Set only when
	// FINISHED.
	Review []ReviewItem

	Elapsed time.Duration
	Exited  bool
}

// Result is the outcome of one finished attempt.
type Result struct {
	AttemptID string
	Mode      Mode
	Score     int
	Total     int
}

func (r Result) String() string {
	return fmt.Sprintf("%d/%d", r.Score, r.Total)
}

// Percent returns the score as a whole percentage of Total.
func (r Result) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return r.Score * 100 / r.Total
}

// ShortID returns the first block of the attempt ID for display.
func (r Result) ShortID() string {
	return shortID(r.AttemptID)
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// ReviewItem is one answered question in the finished review.
type ReviewItem struct {
	Question content.QuestionItem
	Selected int
	Correct  bool
}

// IsLast reports whether the current question is the last one.
func (s Snapshot) IsLast() bool {
	return s.Total > 0 && s.CurrentIndex == s.Total-1
}

// Done returns how many questions have an answer: every question before the
// current one, plus the current one once answered.
func (s Snapshot) Done() int {
	switch s.Phase {
	case PhaseActive:
		if s.Answered {
			return s.CurrentIndex + 1
		}
		return s.CurrentIndex
	case PhaseFinished:
		return s.Total
	}
	return 0
}

// ShortID returns the first block of the attempt ID for display.
func (s Snapshot) ShortID() string {
	return shortID(s.ID)
}

// HasSelection reports whether an option is picked for the current question.
func (s Snapshot) HasSelection() bool {
	return s.Selected != NoSelection
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	st := &s.state
	snap := Snapshot{
		ID:           st.ID,
		Phase:        st.Phase,
		Mode:         st.Mode,
		CurrentIndex: st.CurrentIndex,
		Total:        len(st.Questions),
		Selected:     st.Selected,
		Answered:     st.Answered,
		Score:        st.Score,
		Exited:       s.exited,
	}

	switch st.Phase {
	case PhaseActive:
		q := st.current()
		snap.Question = &q
		snap.RevealCorrectness = st.Answered && s.policy.revealWhileAnswered
		snap.ShowExplanation = snap.RevealCorrectness && q.Explanation != ""
		snap.ShowScore = s.policy.runningScore
		snap.Elapsed = s.now().Sub(st.StartedAt)
	case PhaseFinished:
		snap.RevealCorrectness = true
		snap.ShowScore = true
		snap.Elapsed = st.FinishedAt.Sub(st.StartedAt)
		snap.Review = make([]ReviewItem, len(st.Questions))
		for i, q := range st.Questions {
			snap.Review[i] = ReviewItem{
				Question: q,
				Selected: st.answers[i],
				Correct:  q.IsCorrect(st.answers[i]),
			}
		}
	}
	return snap
}
