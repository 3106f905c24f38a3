// Package catalog lists the subjects a learner studies and the chapters
// published for each subject.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/store"
)

// Subject is a subject offered to a class.
type Subject struct {
	Name string
	Icon string
}

var (
	juniorSubjects = []Subject{
		{Name: "Mathematics", Icon: "∑"},
		{Name: "Science", Icon: "⚗"},
		{Name: "Social Science", Icon: "⌂"},
		{Name: "English", Icon: "Aa"},
		{Name: "Hindi", Icon: "अ"},
	}

	streamSubjects = map[string][]Subject{
		"Science": {
			{Name: "Physics", Icon: "⚛"},
			{Name: "Chemistry", Icon: "⚗"},
			{Name: "Mathematics", Icon: "∑"},
			{Name: "Biology", Icon: "✿"},
			{Name: "English", Icon: "Aa"},
		},
		"Commerce": {
			{Name: "Accountancy", Icon: "₹"},
			{Name: "Business Studies", Icon: "▤"},
			{Name: "Economics", Icon: "↗"},
			{Name: "English", Icon: "Aa"},
		},
		"Arts": {
			{Name: "History", Icon: "⌛"},
			{Name: "Geography", Icon: "◍"},
			{Name: "Political Science", Icon: "⚖"},
			{Name: "English", Icon: "Aa"},
		},
	}
)

// SubjectsFor returns the subjects for a class and stream. Senior classes
// with an unknown stream fall back to the junior list.
func SubjectsFor(class, stream string) []Subject {
	if content.IsSeniorClass(class) {
		if subjects, ok := streamSubjects[stream]; ok {
			return subjects
		}
	}
	return juniorSubjects
}

// Catalog reads chapter indexes from the content store.
type Catalog struct {
	repo store.ContentRepo
}

// New creates a catalog over repo.
func New(repo store.ContentRepo) *Catalog {
	return &Catalog{repo: repo}
}

// Chapters returns the published chapters of loc's subject. A subject with no
// index has no chapters; that is not an error.
func (c *Catalog) Chapters(ctx context.Context, loc content.Locator) ([]content.Chapter, error) {
	for _, key := range loc.ChapterIndexKeys() {
		raw, err := c.repo.Get(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load chapters for %s: %w", loc.Subject, err)
		}
		var chapters []content.Chapter
		if err := json.Unmarshal(raw, &chapters); err != nil {
			return nil, fmt.Errorf("decode chapter index %q: %w", key, err)
		}
		return chapters, nil
	}
	return nil, nil
}
