package content

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a content bundle.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("content bundle validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeBundle trims whitespace and validates a content bundle.
func NormalizeBundle(b Bundle) (Bundle, error) {
	collector := &issueCollector{}
	if b.Version == 0 {
		collector.add("version", "is required")
	} else if b.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", b.Version))
	}

	b.Board = strings.TrimSpace(b.Board)
	b.Class = strings.TrimSpace(b.Class)
	b.Stream = strings.TrimSpace(b.Stream)
	if b.Board == "" {
		collector.add("board", "is required")
	}
	if b.Class == "" {
		collector.add("class", "is required")
	}
	if IsSeniorClass(b.Class) && b.Stream == "" {
		collector.add("stream", fmt.Sprintf("is required for class %s", b.Class))
	}
	if len(b.Subjects) == 0 {
		collector.add("subjects", "must include at least one entry")
	}

	seenSubjects := map[string]struct{}{}
	for i, subject := range b.Subjects {
		prefix := fmt.Sprintf("subjects[%d]", i)
		subject.Name = strings.TrimSpace(subject.Name)
		if subject.Name == "" {
			collector.add(prefix+".name", "is required")
		} else if _, exists := seenSubjects[subject.Name]; exists {
			collector.add(prefix+".name", fmt.Sprintf("duplicate subject %q", subject.Name))
		} else {
			seenSubjects[subject.Name] = struct{}{}
		}

		seenChapters := map[string]struct{}{}
		for j, ch := range subject.Chapters {
			chPrefix := fmt.Sprintf("%s.chapters[%d]", prefix, j)
			ch.ID = strings.TrimSpace(ch.ID)
			ch.Title = strings.TrimSpace(ch.Title)
			ch.PDF = strings.TrimSpace(ch.PDF)
			if ch.ID == "" {
				collector.add(chPrefix+".id", "is required")
			} else if _, exists := seenChapters[ch.ID]; exists {
				collector.add(chPrefix+".id", fmt.Sprintf("duplicate id %q", ch.ID))
			} else {
				seenChapters[ch.ID] = struct{}{}
			}
			if ch.Title == "" {
				collector.add(chPrefix+".title", "is required")
			}
			bodies := 0
			for _, set := range []bool{strings.TrimSpace(ch.Notes) != "", ch.PDF != "", len(ch.MCQ) > 0} {
				if set {
					bodies++
				}
			}
			if bodies > 1 {
				collector.add(chPrefix, "notes, pdf and mcq are mutually exclusive")
			}
			ch.MCQ = normalizeQuestions(collector, chPrefix+".mcq", ch.MCQ)
			ch.Practice = normalizeQuestions(collector, chPrefix+".practice", ch.Practice)
			ch.Test = normalizeQuestions(collector, chPrefix+".test", ch.Test)
			subject.Chapters[j] = ch
		}
		b.Subjects[i] = subject
	}

	if err := collector.result(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

func normalizeQuestions(collector *issueCollector, prefix string, qs []QuestionItem) []QuestionItem {
	for i, q := range qs {
		qPrefix := fmt.Sprintf("%s[%d]", prefix, i)
		q.Question = strings.TrimSpace(q.Question)
		q.Explanation = strings.TrimSpace(q.Explanation)
		if q.Question == "" {
			collector.add(qPrefix+".question", "is required")
		}
		if len(q.Options) < 2 {
			collector.add(qPrefix+".options", "must include at least two entries")
		}
		for k, opt := range q.Options {
			q.Options[k] = strings.TrimSpace(opt)
			if q.Options[k] == "" {
				collector.add(fmt.Sprintf("%s.options[%d]", qPrefix, k), "is required")
			}
		}
		if len(q.Options) >= 2 && !q.ValidOption(q.CorrectAnswer) {
			collector.add(qPrefix+".correctAnswer", fmt.Sprintf("%d is out of range for %d options", q.CorrectAnswer, len(q.Options)))
		}
		qs[i] = q
	}
	return qs
}
