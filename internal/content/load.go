package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadBundle reads, parses, and normalizes a content bundle file. Files
// ending in .json are parsed as JSON; everything else as YAML.
func LoadBundle(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("read bundle: %w", err)
	}
	return ParseBundle(data, path)
}

// ParseBundle parses and normalizes a bundle already in memory. name picks
// the format the same way LoadBundle does.
func ParseBundle(data []byte, name string) (Bundle, error) {
	b, err := parseBundle(data, name)
	if err != nil {
		return Bundle{}, err
	}
	return NormalizeBundle(b)
}

func parseBundle(data []byte, path string) (Bundle, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSONBundle(data)
	}
	return parseYAMLBundle(data)
}

func parseJSONBundle(data []byte) (Bundle, error) {
	var b Bundle
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Bundle{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Bundle{}, fmt.Errorf("parse json: %w", err)
	}
	return b, nil
}

func parseYAMLBundle(data []byte) (Bundle, error) {
	var b Bundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Bundle{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Bundle{}, fmt.Errorf("parse yaml: %w", err)
	}
	return b, nil
}
