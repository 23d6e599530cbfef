package latex

import (
	"strings"
	"testing"
)

func TestValidateCleanDocument(t *testing.T) {
	doc := `\begin{document}
\section{Experience}
\begin{itemize}
\item Built things
\end{itemize}
\end{document}`

	isValid, issues := Validate(doc)
	if !isValid {
		t.Errorf("Expected valid document, got issues: %v", issues)
	}
	if len(issues) != 0 {
		t.Errorf("Expected no issues, got %d: %v", len(issues), issues)
	}
}

func TestValidateEmptyDocument(t *testing.T) {
	isValid, issues := Validate("")
	if !isValid {
		t.Errorf("Expected empty document to be valid, got issues: %v", issues)
	}
}

func TestValidateMismatchedBraces(t *testing.T) {
	isValid, issues := Validate(`\textbf{unclosed`)
	if isValid {
		t.Error("Expected invalid document")
	}
	if len(issues) != 1 {
		t.Fatalf("Expected exactly 1 issue, got %d: %v", len(issues), issues)
	}
	if issues[0] != "Mismatched braces: found 1 open '{' and 0 close '}'" {
		t.Errorf("Unexpected issue text: '%s'", issues[0])
	}
}

func TestValidateMismatchedEnvironmentCounts(t *testing.T) {
	doc := `\begin{itemize}\item a\end{itemize}\begin{center}text`

	isValid, issues := Validate(doc)
	if isValid {
		t.Error("Expected invalid document")
	}
	if len(issues) != 1 {
		t.Fatalf("Expected exactly 1 issue, got %d: %v", len(issues), issues)
	}
	if !strings.Contains(issues[0], `found 2 \begin vs 1 \end tags`) {
		t.Errorf("Unexpected issue text: '%s'", issues[0])
	}
}

func TestValidateMismatchedEnvironmentTypes(t *testing.T) {
	// Equal counts but misnamed environments.
	doc := `\begin{itemize}\item a\end{enumerate}`

	isValid, issues := Validate(doc)
	if isValid {
		t.Error("Expected invalid document")
	}
	if len(issues) != 1 {
		t.Fatalf("Expected exactly 1 issue, got %d: %v", len(issues), issues)
	}
	if !strings.Contains(issues[0], "Started but never ended: [itemize]") {
		t.Errorf("Expected itemize in started list, got '%s'", issues[0])
	}
	if !strings.Contains(issues[0], "Ended but never started: [enumerate]") {
		t.Errorf("Expected enumerate in ended list, got '%s'", issues[0])
	}
}

func TestValidateMarkdownFences(t *testing.T) {
	doc := "```latex\n\\section{Test}\n```"

	isValid, issues := Validate(doc)
	if isValid {
		t.Error("Expected invalid document")
	}
	// Fences only; braces and environments are balanced.
	if len(issues) != 1 {
		t.Fatalf("Expected exactly 1 issue, got %d: %v", len(issues), issues)
	}
	if issues[0] != "Markdown code fences (```) found in output. Please remove them." {
		t.Errorf("Unexpected issue text: '%s'", issues[0])
	}
}

func TestValidateMultipleIssues(t *testing.T) {
	// Unbalanced brace, unbalanced environment, and a fence all at once.
	doc := "\\textbf{oops\n\\begin{itemize}\n```"

	isValid, issues := Validate(doc)
	if isValid {
		t.Error("Expected invalid document")
	}
	if len(issues) != 3 {
		t.Fatalf("Expected exactly 3 issues, got %d: %v", len(issues), issues)
	}
}

func TestValidateNestedEnvironments(t *testing.T) {
	doc := `\begin{itemize}\begin{itemize}\item nested\end{itemize}\end{itemize}`

	isValid, issues := Validate(doc)
	if !isValid {
		t.Errorf("Expected valid document, got issues: %v", issues)
	}
}

func TestMultisetDiffOrder(t *testing.T) {
	onlyBegun, onlyEnded := multisetDiff(
		[]string{"tabular", "itemize", "tabular"},
		[]string{"itemize", "center", "center"},
	)

	if len(onlyBegun) != 1 || onlyBegun[0] != "tabular" {
		t.Errorf("Expected onlyBegun [tabular], got %v", onlyBegun)
	}
	if len(onlyEnded) != 1 || onlyEnded[0] != "center" {
		t.Errorf("Expected onlyEnded [center], got %v", onlyEnded)
	}
}
