package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studydeck/internal/content"
)

// Profile is the learner's board, class and stream. It selects which content
// keys are read.
type Profile struct {
	Name   string `yaml:"name"`
	Board  string `yaml:"board"`
	Class  string `yaml:"class"`
	Stream string `yaml:"stream,omitempty"`
}

// Locator builds the content locator for one chapter of the profile.
func (p Profile) Locator(subject, chapterID string, mode content.Mode) content.Locator {
	return content.Locator{
		Board:     p.Board,
		Class:     p.Class,
		Stream:    p.Stream,
		Subject:   subject,
		ChapterID: chapterID,
		Mode:      mode,
	}
}

// DisplayName returns the learner's name or a generic fallback.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return "Student"
	}
	return p.Name
}

// ClassLabel renders the class with its stream, e.g. "Class 12 (Science)".
func (p Profile) ClassLabel() string {
	if content.IsSeniorClass(p.Class) && p.Stream != "" {
		return fmt.Sprintf("Class %s (%s)", p.Class, p.Stream)
	}
	return "Class " + p.Class
}

// Load reads, parses, and validates a profile file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, err
	}
	Normalize(&p)
	if err := Validate(p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Parse decodes a single YAML profile document, rejecting unknown fields.
func Parse(data []byte) (Profile, error) {
	var p Profile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		if err == io.EOF {
			return Profile{}, fmt.Errorf("parse profile: empty document")
		}
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Profile{}, fmt.Errorf("parse profile: multiple documents are not supported")
		}
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// Save validates p and writes it to path, creating parent directories.
func Save(path string, p Profile) error {
	Normalize(&p)
	if err := Validate(p); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Normalize trims fields and drops a stream on classes that have none.
func Normalize(p *Profile) {
	p.Name = strings.TrimSpace(p.Name)
	p.Board = strings.ToUpper(strings.TrimSpace(p.Board))
	p.Class = strings.TrimSpace(p.Class)
	p.Stream = strings.TrimSpace(p.Stream)
	if !content.IsSeniorClass(p.Class) {
		p.Stream = ""
	}
}
