package content

import "testing"

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"notes", `{"type": "NOTES", "content": "# Motion"}`, false},
		{"coming soon", `{"isComingSoon": true}`, false},
		{"mcq", `{"manualMcqData": [{"question": "q", "options": ["a", "b"], "correctAnswer": 0}]}`, false},
		{"lesson mcq", `{"type": "MCQ_SIMPLE", "mcqData": [{"question": "q", "options": ["a", "b"], "correctAnswer": 1}]}`, false},
		{"lesson mcq past options", `{"type": "MCQ_SIMPLE", "mcqData": [{"question": "q", "options": ["a", "b"], "correctAnswer": 2}]}`, true},
		{"not json", `{"type":`, true},
		{"wrong type", `{"isComingSoon": "yes"}`, true},
		{"one option", `{"manualMcqData": [{"question": "q", "options": ["a"], "correctAnswer": 0}]}`, true},
		{"missing correct answer", `{"weeklyTestMcqData": [{"question": "q", "options": ["a", "b"]}]}`, true},
		{"negative correct answer", `{"weeklyTestMcqData": [{"question": "q", "options": ["a", "b"], "correctAnswer": -1}]}`, true},
		{"correct answer past options", `{"weeklyTestMcqData": [{"question": "q", "options": ["a", "b"], "correctAnswer": 5}]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument("k", []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeDocument err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDocumentQuestions(t *testing.T) {
	doc := Document{
		PracticeMCQ: []QuestionItem{{Question: "p"}},
		TestMCQ:     []QuestionItem{{Question: "t1"}, {Question: "t2"}},
	}
	if got := len(doc.Questions(ModePractice)); got != 1 {
		t.Errorf("practice questions = %d, want 1", got)
	}
	if got := len(doc.Questions(ModeTest)); got != 2 {
		t.Errorf("test questions = %d, want 2", got)
	}
}

func TestPreviewURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://drive.google.com/file/d/abc/view?usp=sharing", "https://drive.google.com/file/d/abc/preview?usp=sharing"},
		{"https://docs.google.com/document/d/abc/edit", "https://docs.google.com/document/d/abc/preview"},
		{"https://example.com/notes.pdf", "https://example.com/notes.pdf"},
	}
	for _, tt := range tests {
		if got := PreviewURL(tt.in); got != tt.want {
			t.Errorf("PreviewURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDocumentAvailable(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want bool
	}{
		{"notes", Document{Type: DocNotes, Content: "# Light"}, true},
		{"coming soon", Document{Type: DocNotes, Content: "# Light", IsComingSoon: true}, false},
		{"empty", Document{}, false},
		{"mcq lesson", Document{Type: DocMCQSimple, LessonMCQ: []QuestionItem{{Question: "q", Options: []string{"a", "b"}}}}, true},
		{"mcq lesson without questions", Document{Type: DocMCQAnalysis}, false},
	}
	for _, tt := range tests {
		if got := tt.doc.Available(); got != tt.want {
			t.Errorf("%s: Available() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
