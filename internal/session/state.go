package session

import (
	"errors"
	"time"

	"github.com/abhisek/studydeck/internal/content"
)

// Mode is the assessment mode, fixed for the lifetime of a session.
type Mode = content.Mode

const (
	ModePractice = content.ModePractice
	ModeTest     = content.ModeTest
)

// NoSelection marks a question with no option picked yet.
const NoSelection = -1

var (
	// ErrInvalidTransition is returned when an operation is not legal in the
	// session's current phase. The session is unchanged.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrOptionOutOfRange is returned when SelectOption is given an index
	// outside the current question's options. The session is unchanged.
	ErrOptionOutOfRange = errors.New("option index out of range")
)

// Phase represents the lifecycle stage of a session.
type Phase int

const (
	PhaseLoading   Phase = iota // Waiting for the question set
	PhaseActive                 // Serving questions
	PhaseNoContent              // No questions exist for the locator
	PhaseFinished               // Past the last question
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "LOADING"
	case PhaseActive:
		return "ACTIVE"
	case PhaseNoContent:
		return "NO_CONTENT"
	case PhaseFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further select or advance is possible.
func (p Phase) Terminal() bool {
	return p == PhaseNoContent || p == PhaseFinished
}

// State tracks the runtime state of one assessment attempt.
type State struct {
	// ID is the UUID for this attempt.
	ID string

	// Mode is PRACTICE or TEST.
	Mode Mode

	// Phase is the current lifecycle stage.
	Phase Phase

	// Questions is the resolved question set. Never mutated.
	Questions content.QuestionSet

	// CurrentIndex is the index of the question on screen.
	CurrentIndex int

	// Selected is the option picked for the current question, or NoSelection.
	Selected int

	// Answered is true once an option has been picked for the current question.
	Answered bool

	// Score counts correct answers judged so far.
	Score int

	// answers holds the final selection per question for the review list.
	answers []int

	StartedAt  time.Time
	FinishedAt time.Time
}

func newState(id string, mode Mode) State {
	return State{
		ID:       id,
		Mode:     mode,
		Phase:    PhaseLoading,
		Selected: NoSelection,
	}
}

// current returns the question at CurrentIndex. Only valid while ACTIVE.
func (st *State) current() content.QuestionItem {
	return st.Questions[st.CurrentIndex]
}
