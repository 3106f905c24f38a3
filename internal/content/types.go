package content

import (
	"fmt"
	"strings"
)

// Mode selects which question list of a chapter is served and how it is scored.
type Mode string

const (
	ModePractice Mode = "PRACTICE"
	ModeTest     Mode = "TEST"
)

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModePractice:
		return ModePractice, nil
	case ModeTest:
		return ModeTest, nil
	}
	return "", fmt.Errorf("unknown mode %q (want practice or test)", s)
}

// QuestionItem is a single multiple-choice question. It is never mutated once
// resolved.
type QuestionItem struct {
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// IsCorrect reports whether option k is the correct answer.
func (q QuestionItem) IsCorrect(k int) bool {
	return k == q.CorrectAnswer
}

// ValidOption reports whether k addresses one of the question's options.
func (q QuestionItem) ValidOption(k int) bool {
	return k >= 0 && k < len(q.Options)
}

// QuestionSet is the ordered list of questions for one session.
type QuestionSet []QuestionItem

// DocType identifies how a chapter's lesson body is rendered.
type DocType string

const (
	DocNotes       DocType = "NOTES"
	DocPDF         DocType = "PDF"
	DocMCQSimple   DocType = "MCQ_SIMPLE"
	DocMCQAnalysis DocType = "MCQ_ANALYSIS"
)

// IsMCQ reports whether the lesson body is a question set rather than prose.
func (t DocType) IsMCQ() bool {
	return t == DocMCQSimple || t == DocMCQAnalysis
}

// Document is the stored record for one chapter: its lesson body plus the
// practice and weekly test question sets. An MCQ lesson carries its own
// question set in LessonMCQ.
type Document struct {
	Type         DocType        `json:"type,omitempty"`
	Content      string         `json:"content,omitempty"`
	IsComingSoon bool           `json:"isComingSoon,omitempty"`
	LessonMCQ    []QuestionItem `json:"mcqData,omitempty"`
	PracticeMCQ  []QuestionItem `json:"manualMcqData,omitempty"`
	TestMCQ      []QuestionItem `json:"weeklyTestMcqData,omitempty"`
}

// Questions returns the question list served for mode.
func (d Document) Questions(mode Mode) QuestionSet {
	if mode == ModeTest {
		return d.TestMCQ
	}
	return d.PracticeMCQ
}

// Chapter is an entry in a subject's chapter index.
type Chapter struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}
