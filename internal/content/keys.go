package content

import "fmt"

const (
	contentKeyPrefix = "nst_content_"
	chapterKeyPrefix = "nst_custom_chapters_"

	// chapterIndexLanguage is the only language chapter indexes are published in.
	chapterIndexLanguage = "English"
)

// Locator identifies one chapter's question set for a learner.
type Locator struct {
	Board     string
	Class     string
	Stream    string
	Subject   string
	ChapterID string
	Mode      Mode
}

// String renders the locator for error messages.
func (l Locator) String() string {
	return fmt.Sprintf("%s/%s%s/%s/%s [%s]", l.Board, l.Class, l.streamSuffix(), l.Subject, l.ChapterID, l.Mode)
}

// IsSeniorClass reports whether the class level is split into streams.
func IsSeniorClass(class string) bool {
	return class == "11" || class == "12"
}

func (l Locator) streamSuffix() string {
	if IsSeniorClass(l.Class) && l.Stream != "" {
		return "-" + l.Stream
	}
	return ""
}

// CandidateKeys returns the content keys to try for the locator, most
// specific first. Senior classes are published under a stream-qualified key;
// the unqualified key is the fallback for classes without streams.
func (l Locator) CandidateKeys() []string {
	plain := fmt.Sprintf("%s%s_%s_%s_%s", contentKeyPrefix, l.Board, l.Class, l.Subject, l.ChapterID)
	suffix := l.streamSuffix()
	if suffix == "" {
		return []string{plain}
	}
	qualified := fmt.Sprintf("%s%s_%s%s_%s_%s", contentKeyPrefix, l.Board, l.Class, suffix, l.Subject, l.ChapterID)
	return []string{qualified, plain}
}

// ChapterIndexKeys returns the keys under which the chapter list for the
// locator's subject may be stored, most specific first.
func (l Locator) ChapterIndexKeys() []string {
	plain := fmt.Sprintf("%s%s-%s-%s-%s", chapterKeyPrefix, l.Board, l.Class, l.Subject, chapterIndexLanguage)
	suffix := l.streamSuffix()
	if suffix == "" {
		return []string{plain}
	}
	qualified := fmt.Sprintf("%s%s-%s%s-%s-%s", chapterKeyPrefix, l.Board, l.Class, suffix, l.Subject, chapterIndexLanguage)
	return []string{qualified, plain}
}

// ContentKey is the key a chapter document is written under on import.
func (l Locator) ContentKey() string {
	return l.CandidateKeys()[0]
}

// ChapterIndexKey is the key a subject's chapter list is written under on import.
func (l Locator) ChapterIndexKey() string {
	return l.ChapterIndexKeys()[0]
}
