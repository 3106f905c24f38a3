package content

import (
	"context"
	"strings"
)

// DocumentSource loads the stored document for a chapter.
type DocumentSource interface {
	// Document returns the chapter document, or ErrNotFound.
	Document(ctx context.Context, loc Locator) (Document, error)
}

var _ DocumentSource = (*StoreResolver)(nil)

// Available reports whether the document has a lesson body to show. An MCQ
// lesson needs at least one question.
func (d Document) Available() bool {
	if d.IsComingSoon {
		return false
	}
	if d.Type.IsMCQ() {
		return len(d.LessonMCQ) > 0
	}
	return d.Content != ""
}

// PreviewURL rewrites a shared document link to its embeddable preview form:
// the first "/view" and the first "/edit" become "/preview".
func PreviewURL(url string) string {
	url = strings.Replace(url, "/view", "/preview", 1)
	return strings.Replace(url, "/edit", "/preview", 1)
}
