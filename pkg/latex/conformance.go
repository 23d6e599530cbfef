package latex

import (
	"fmt"
	"regexp"
	"strings"
)

var documentClassPattern = regexp.MustCompile(`\\documentclass(?:\[.*?\])?\{([^}]+)\}`)

// ExtractDocumentClass returns the class name from a \documentclass
// declaration, ignoring any bracketed options. Empty when no declaration
// exists.
func ExtractDocumentClass(latexCode string) (class string) {
	match := documentClassPattern.FindStringSubmatch(latexCode)
	if match != nil {
		class = match[1]
	}
	return class
}

// CheckConformance verifies that a generated document preserves the
// scaffold of its template: same document class and both document markers
// present. This is a cheap structural proxy, not a compiler-level check.
// The class comparison is skipped when either side lacks a declaration.
func CheckConformance(sample, generated string) (isValid bool, issues []string) {
	issues = []string{}

	sampleClass := ExtractDocumentClass(sample)
	generatedClass := ExtractDocumentClass(generated)
	if sampleClass != "" && generatedClass != "" && sampleClass != generatedClass {
		issues = append(issues, fmt.Sprintf("Document class mismatch: expected '%s', got '%s'", sampleClass, generatedClass))
	}

	if !strings.Contains(generated, BeginDocument) {
		issues = append(issues, `Missing \begin{document}`)
	}

	if !strings.Contains(generated, EndDocument) {
		issues = append(issues, `Missing \end{document}`)
	}

	isValid = len(issues) == 0
	return isValid, issues
}
