package agent

import (
	"strings"

	"github.com/nikogura/resume-agent/pkg/latex"
)

// contentMarkers are searched in priority order when scaffold commands leak
// into a generated body.
//
//nolint:gochecknoglobals // Fixed marker priority table
var contentMarkers = []string{`\section`, `\subsection`, `\begin{center}`}

// CleanBody strips generation artifacts from raw Drafter output: markdown
// code fences, any leaked preamble/scaffold, and a trailing document-end
// marker. Reassembly owns the scaffold, so only body content survives.
func CleanBody(raw string) (body string) {
	body = strings.ReplaceAll(raw, "```latex", "")
	body = strings.ReplaceAll(body, "```", "")
	body = strings.TrimSpace(body)

	// Models sometimes ignore the body-only instruction and emit a whole
	// document. Slice away everything before the first real content.
	if strings.Contains(body, `\documentclass`) || strings.Contains(body, latex.BeginDocument) {
		body = sliceToContent(body)
	}

	body = strings.ReplaceAll(body, latex.EndDocument, "")
	body = strings.TrimSpace(body)

	return body
}

// sliceToContent discards leaked scaffold by finding where body content
// actually starts.
func sliceToContent(text string) (content string) {
	content = text

	// Everything after \begin{document} is body by definition.
	if idx := strings.Index(content, latex.BeginDocument); idx != -1 {
		content = strings.TrimSpace(content[idx+len(latex.BeginDocument):])
		return content
	}

	// No document marker - fall back to the first section-like construct.
	for _, marker := range contentMarkers {
		if idx := strings.Index(content, marker); idx != -1 {
			content = content[idx:]
			return content
		}
	}

	// Last resort: the first LaTeX command starts the content.
	if idx := strings.Index(content, `\`); idx > 0 {
		content = content[idx:]
	}

	return content
}
