package latex

import (
	"strings"
	"testing"
)

func TestExtractDocumentClass(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain class",
			input:    `\documentclass{article}`,
			expected: "article",
		},
		{
			name:     "class with options",
			input:    `\documentclass[letterpaper,11pt]{article}`,
			expected: "article",
		},
		{
			name:     "no declaration",
			input:    `\section{Experience}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := ExtractDocumentClass(tt.input)
			if class != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, class)
			}
		})
	}
}

func TestCheckConformanceMatching(t *testing.T) {
	sample := `\documentclass[11pt]{article}` + "\n" + BeginDocument + "\nbody\n" + EndDocument
	generated := `\documentclass{article}` + "\n" + BeginDocument + "\nnew body\n" + EndDocument

	isValid, issues := CheckConformance(sample, generated)
	if !isValid {
		t.Errorf("Expected conforming document, got issues: %v", issues)
	}
}

func TestCheckConformanceClassMismatch(t *testing.T) {
	sample := `\documentclass{article}` + "\n" + BeginDocument + "\nbody\n" + EndDocument
	generated := `\documentclass{report}` + "\n" + BeginDocument + "\nbody\n" + EndDocument

	isValid, issues := CheckConformance(sample, generated)
	if isValid {
		t.Error("Expected non-conforming document")
	}
	if len(issues) != 1 {
		t.Fatalf("Expected exactly 1 issue, got %d: %v", len(issues), issues)
	}
	if issues[0] != "Document class mismatch: expected 'article', got 'report'" {
		t.Errorf("Unexpected issue text: '%s'", issues[0])
	}
}

func TestCheckConformanceClassCheckSkipped(t *testing.T) {
	// Class comparison is skipped when either side lacks a declaration.
	sample := BeginDocument + "\nbody\n" + EndDocument
	generated := `\documentclass{report}` + "\n" + BeginDocument + "\nbody\n" + EndDocument

	isValid, issues := CheckConformance(sample, generated)
	if !isValid {
		t.Errorf("Expected conforming document, got issues: %v", issues)
	}
}

func TestCheckConformanceMissingMarkers(t *testing.T) {
	sample := `\documentclass{article}` + "\n" + BeginDocument + "\nbody\n" + EndDocument

	tests := []struct {
		name      string
		generated string
		expected  []string
	}{
		{
			name:      "missing begin",
			generated: `\documentclass{article}` + "\nbody\n" + EndDocument,
			expected:  []string{`Missing \begin{document}`},
		},
		{
			name:      "missing end",
			generated: `\documentclass{article}` + "\n" + BeginDocument + "\nbody",
			expected:  []string{`Missing \end{document}`},
		},
		{
			name:      "missing both",
			generated: `\documentclass{article}` + "\nbody",
			expected:  []string{`Missing \begin{document}`, `Missing \end{document}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isValid, issues := CheckConformance(sample, tt.generated)
			if isValid {
				t.Error("Expected non-conforming document")
			}
			if len(issues) != len(tt.expected) {
				t.Fatalf("Expected %d issues, got %d: %v", len(tt.expected), len(issues), issues)
			}
			for i, want := range tt.expected {
				if issues[i] != want {
					t.Errorf("Issue %d: expected '%s', got '%s'", i, want, issues[i])
				}
			}
		})
	}
}

func TestCheckConformanceReassembledOutput(t *testing.T) {
	parts := SplitTemplate(`\documentclass{article}` + "\n" + BeginDocument + "\nold body\n" + EndDocument)
	document := Reassemble(parts.Preamble, `\section{New}`)

	isValid, issues := CheckConformance(`\documentclass{article}`+"\n"+BeginDocument+"\nold body\n"+EndDocument, document)
	if !isValid {
		t.Errorf("Expected reassembled output to conform, got issues: %v", issues)
	}

	if !strings.Contains(document, `\section{New}`) {
		t.Error("Expected reassembled document to carry the new body")
	}
}
