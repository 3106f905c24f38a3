package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/studydeck/internal/content"
)

// Streams lists the streams offered for classes 11 and 12.
var Streams = []string{"Science", "Commerce", "Arts"}

// Issue captures a validation problem in a profile.
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
	return fmt.Sprintf("profile validation failed: %s", strings.Join(parts, "; "))
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

// Validate checks a normalized profile.
func Validate(p Profile) error {
	collector := &issueCollector{}
	if p.Board == "" {
		collector.add("board", "is required")
	}
	if p.Class == "" {
		collector.add("class", "is required")
	} else if n, err := strconv.Atoi(p.Class); err != nil || n < 1 || n > 12 {
		collector.add("class", fmt.Sprintf("%q is not a class between 1 and 12", p.Class))
	}
	if content.IsSeniorClass(p.Class) {
		switch {
		case p.Stream == "":
			collector.add("stream", fmt.Sprintf("is required for class %s", p.Class))
		case !isStream(p.Stream):
			collector.add("stream", fmt.Sprintf("unknown stream %q (want one of %s)", p.Stream, strings.Join(Streams, ", ")))
		}
	}
	return collector.result()
}

func isStream(s string) bool {
	for _, stream := range Streams {
		if stream == s {
			return true
		}
	}
	return false
}
