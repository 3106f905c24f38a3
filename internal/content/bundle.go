package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studydeck/internal/store"
)

// Bundle is an importable content file: every chapter of one board/class/stream.
type Bundle struct {
	Version  int             `json:"version" yaml:"version"`
	Board    string          `json:"board" yaml:"board"`
	Class    string          `json:"class" yaml:"class"`
	Stream   string          `json:"stream,omitempty" yaml:"stream,omitempty"`
	Subjects []BundleSubject `json:"subjects" yaml:"subjects"`
}

// BundleSubject groups the chapters of one subject.
type BundleSubject struct {
	Name     string          `json:"name" yaml:"name"`
	Chapters []BundleChapter `json:"chapters" yaml:"chapters"`
}

// BundleChapter is one chapter's lesson body and question sets.
type BundleChapter struct {
	ID         string         `json:"id" yaml:"id"`
	Title      string         `json:"title" yaml:"title"`
	Notes      string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	PDF        string         `json:"pdf,omitempty" yaml:"pdf,omitempty"`
	ComingSoon bool           `json:"comingSoon,omitempty" yaml:"comingSoon,omitempty"`
	MCQ        []QuestionItem `json:"mcq,omitempty" yaml:"mcq,omitempty"`
	Practice   []QuestionItem `json:"practice,omitempty" yaml:"practice,omitempty"`
	Test       []QuestionItem `json:"test,omitempty" yaml:"test,omitempty"`
}

// Entry is a single key/body pair produced from a bundle.
type Entry struct {
	Key  string
	Body []byte
}

func (b Bundle) locator(subject, chapterID string) Locator {
	return Locator{
		Board:     b.Board,
		Class:     b.Class,
		Stream:    b.Stream,
		Subject:   subject,
		ChapterID: chapterID,
	}
}

// Document builds the stored document for a chapter. The lesson body is
// the notes, the PDF link or the lesson MCQ set, in that order. A chapter
// with no body and no questions is coming soon.
func (c BundleChapter) Document() Document {
	doc := Document{
		IsComingSoon: c.ComingSoon,
		PracticeMCQ:  c.Practice,
		TestMCQ:      c.Test,
	}
	switch {
	case c.Notes != "":
		doc.Type = DocNotes
		doc.Content = c.Notes
	case c.PDF != "":
		doc.Type = DocPDF
		doc.Content = c.PDF
	case len(c.MCQ) > 0:
		doc.Type = DocMCQSimple
		doc.LessonMCQ = c.MCQ
	case len(c.Practice) == 0 && len(c.Test) == 0:
		doc.IsComingSoon = true
	}
	return doc
}

// Entries renders the bundle into store entries: one document per chapter
// and one chapter index per subject.
func (b Bundle) Entries() ([]Entry, error) {
	var entries []Entry
	for _, subject := range b.Subjects {
		index := make([]Chapter, 0, len(subject.Chapters))
		for _, ch := range subject.Chapters {
			body, err := json.Marshal(ch.Document())
			if err != nil {
				return nil, fmt.Errorf("marshal chapter %s/%s: %w", subject.Name, ch.ID, err)
			}
			entries = append(entries, Entry{Key: b.locator(subject.Name, ch.ID).ContentKey(), Body: body})
			index = append(index, Chapter{ID: ch.ID, Title: ch.Title})
		}
		body, err := json.Marshal(index)
		if err != nil {
			return nil, fmt.Errorf("marshal chapter index %s: %w", subject.Name, err)
		}
		entries = append(entries, Entry{Key: b.locator(subject.Name, "").ChapterIndexKey(), Body: body})
	}
	return entries, nil
}

// Import writes every entry of b to repo and returns the number written.
func Import(ctx context.Context, repo store.ContentRepo, b Bundle) (int, error) {
	entries, err := b.Entries()
	if err != nil {
		return 0, err
	}
	for i, e := range entries {
		if err := repo.Put(ctx, e.Key, e.Body); err != nil {
			return i, fmt.Errorf("import %s: %w", e.Key, err)
		}
	}
	return len(entries), nil
}
