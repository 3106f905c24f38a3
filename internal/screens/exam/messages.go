package exam

import "github.com/abhisek/studydeck/internal/content"

// questionsLoadedMsg is sent when the question set has been resolved.
type questionsLoadedMsg struct {
	Questions content.QuestionSet
	Err       error
}
