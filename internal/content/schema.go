package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://studydeck/document.json"

// documentSchema describes a stored chapter document. Bounds that JSON Schema
// cannot express (correctAnswer < len(options)) are checked in checkQuestions.
var documentSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"type":              map[string]any{"type": "string"},
		"content":           map[string]any{"type": "string"},
		"isComingSoon":      map[string]any{"type": "boolean"},
		"mcqData":           map[string]any{"$ref": "#/$defs/mcqList"},
		"manualMcqData":     map[string]any{"$ref": "#/$defs/mcqList"},
		"weeklyTestMcqData": map[string]any{"$ref": "#/$defs/mcqList"},
	},
	"$defs": map[string]any{
		"mcqList": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/mcq"},
		},
		"mcq": map[string]any{
			"type":     "object",
			"required": []any{"question", "options", "correctAnswer"},
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
				"correctAnswer": map[string]any{"type": "integer", "minimum": 0},
				"explanation":   map[string]any{"type": "string"},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func getDocumentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, documentSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(documentSchemaURL)
	})
	return compiledSchema, compileErr
}

// InvalidDocumentError reports a stored document that fails validation.
type InvalidDocumentError struct {
	Key string
	Err error
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid document %q: %v", e.Key, e.Err)
}

func (e *InvalidDocumentError) Unwrap() error {
	return e.Err
}

// DecodeDocument validates raw against the document schema and decodes it.
func DecodeDocument(key string, raw []byte) (Document, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Document{}, &InvalidDocumentError{Key: key, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := getDocumentSchema()
	if err != nil {
		return Document{}, fmt.Errorf("compile document schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return Document{}, &InvalidDocumentError{Key: key, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, &InvalidDocumentError{Key: key, Err: err}
	}
	if err := checkQuestions("mcqData", doc.LessonMCQ); err != nil {
		return Document{}, &InvalidDocumentError{Key: key, Err: err}
	}
	if err := checkQuestions("manualMcqData", doc.PracticeMCQ); err != nil {
		return Document{}, &InvalidDocumentError{Key: key, Err: err}
	}
	if err := checkQuestions("weeklyTestMcqData", doc.TestMCQ); err != nil {
		return Document{}, &InvalidDocumentError{Key: key, Err: err}
	}
	return doc, nil
}

func checkQuestions(field string, qs []QuestionItem) error {
	for i, q := range qs {
		if !q.ValidOption(q.CorrectAnswer) {
			return fmt.Errorf("%s[%d].correctAnswer: %d out of range for %d options", field, i, q.CorrectAnswer, len(q.Options))
		}
	}
	return nil
}
