package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/studydeck/internal/store"
)

// ErrNotFound is returned when no question set exists for a locator.
var ErrNotFound = errors.New("content not found")

// Resolver resolves the question set a session is played with.
type Resolver interface {
	// ResolveQuestionSet returns the non-empty question set for loc, or
	// ErrNotFound. Which stored key matched is not observable.
	ResolveQuestionSet(ctx context.Context, loc Locator) (QuestionSet, error)
}

// StoreResolver reads chapter documents from the content store.
type StoreResolver struct {
	repo store.ContentRepo
}

var _ Resolver = (*StoreResolver)(nil)

// NewStoreResolver creates a resolver over repo.
func NewStoreResolver(repo store.ContentRepo) *StoreResolver {
	return &StoreResolver{repo: repo}
}

// Document returns the first stored document among loc's candidate keys.
func (r *StoreResolver) Document(ctx context.Context, loc Locator) (Document, error) {
	for _, key := range loc.CandidateKeys() {
		raw, err := r.repo.Get(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return Document{}, fmt.Errorf("load %s: %w", loc, err)
		}
		return DecodeDocument(key, raw)
	}
	return Document{}, ErrNotFound
}

func (r *StoreResolver) ResolveQuestionSet(ctx context.Context, loc Locator) (QuestionSet, error) {
	doc, err := r.Document(ctx, loc)
	if err != nil {
		return nil, err
	}
	qs := doc.Questions(loc.Mode)
	if len(qs) == 0 {
		return nil, ErrNotFound
	}
	return qs, nil
}

// StaticResolver serves a fixed question set regardless of locator. An empty
// set resolves to ErrNotFound.
type StaticResolver QuestionSet

func (r StaticResolver) ResolveQuestionSet(_ context.Context, _ Locator) (QuestionSet, error) {
	if len(r) == 0 {
		return nil, ErrNotFound
	}
	return QuestionSet(r), nil
}
