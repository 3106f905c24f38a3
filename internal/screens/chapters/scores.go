package chapters

import (
	"fmt"

	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/session"
)

// Scores keeps the finished attempts per chapter and mode for the running
// app, oldest first. A locator without a mode holds the lesson quiz.
type Scores map[string][]session.Result

func scoreKey(loc content.Locator) string {
	return loc.ContentKey() + "|" + string(loc.Mode)
}

// Record stores r under the chapter and mode in loc. Recording the same
// attempt again replaces it.
func (s Scores) Record(loc content.Locator, r session.Result) {
	key := scoreKey(loc)
	for i, prev := range s[key] {
		if prev.AttemptID == r.AttemptID {
			s[key][i] = r
			return
		}
	}
	s[key] = append(s[key], r)
}

// Last returns the latest attempt for loc, if any.
func (s Scores) Last(loc content.Locator) (session.Result, bool) {
	attempts := s[scoreKey(loc)]
	if len(attempts) == 0 {
		return session.Result{}, false
	}
	return attempts[len(attempts)-1], true
}

// Attempts returns how many attempts were finished for loc.
func (s Scores) Attempts(loc content.Locator) int {
	return len(s[scoreKey(loc)])
}

// summary describes the latest attempt and the attempt count.
func (s Scores) summary(loc content.Locator) string {
	r, ok := s.Last(loc)
	if !ok {
		return ""
	}
	if n := s.Attempts(loc); n > 1 {
		return fmt.Sprintf("last score %s · %d attempts", r, n)
	}
	return "last score " + r.String()
}
