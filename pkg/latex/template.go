package latex

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// BeginDocument is the literal marker separating preamble from body.
	BeginDocument = `\begin{document}`
	// EndDocument is the literal marker closing the document body.
	EndDocument = `\end{document}`
	// NoCustomCommands is returned when the preamble declares no custom commands.
	NoCustomCommands = "No custom commands found in the template preamble."
)

// commandPattern matches \newcommand{\name}[N]{...} and \renewcommand{\name}{...}.
var commandPattern = regexp.MustCompile(`\\(?:new|renew)command\{\\([^}]+)\}(?:\[(\d+)\])?`)

// TemplateParts holds the structural pieces of a style template.
type TemplateParts struct {
	// Preamble is everything up through and including \begin{document}.
	Preamble string
	// Body is the content strictly between the document markers.
	Body string
	// CommandCheatsheet is a human-readable summary of the custom commands
	// declared in the preamble, for embedding in drafting prompts.
	CommandCheatsheet string
}

// SplitTemplate separates a style template into an immutable preamble and a
// replaceable body, and derives the command cheatsheet from the preamble.
// Templates lacking either document marker degrade to an empty preamble with
// the entire input as body.
func SplitTemplate(sample string) (parts TemplateParts) {
	beginIdx := strings.Index(sample, BeginDocument)
	if beginIdx == -1 {
		// No document boundaries to preserve - the whole input is body.
		parts = TemplateParts{
			Preamble:          "",
			Body:              sample,
			CommandCheatsheet: BuildCommandCheatsheet(""),
		}
		return parts
	}

	// The end marker only counts when it follows the begin marker; a stray
	// one earlier (say, in a preamble comment) is not a boundary.
	bodyStart := beginIdx + len(BeginDocument)
	endOffset := strings.Index(sample[bodyStart:], EndDocument)
	if endOffset == -1 {
		parts = TemplateParts{
			Preamble:          "",
			Body:              sample,
			CommandCheatsheet: BuildCommandCheatsheet(""),
		}
		return parts
	}

	preamble := sample[:bodyStart]
	body := strings.TrimSpace(sample[bodyStart : bodyStart+endOffset])

	parts = TemplateParts{
		Preamble:          preamble,
		Body:              body,
		CommandCheatsheet: BuildCommandCheatsheet(preamble),
	}

	return parts
}

// Reassemble combines a preamble and a generated body into a complete
// document. It is a pure concatenation and never invokes generation.
func Reassemble(preamble, body string) (document string) {
	document = preamble + "\n\n" + body + "\n\n" + EndDocument
	return document
}

// ExtractCommandSignatures extracts custom command declarations from the
// preamble and renders each as a call signature with placeholder arguments,
// e.g. \resumeSubheading{arg1}{arg2}{arg3}{arg4}.
func ExtractCommandSignatures(preamble string) (signatures []string) {
	matches := commandPattern.FindAllStringSubmatch(preamble, -1)

	for _, match := range matches {
		name := match[1]
		args := ""
		if match[2] != "" {
			// The [N] group only ever captures digits, so this cannot fail.
			var argCount int
			_, _ = fmt.Sscanf(match[2], "%d", &argCount)
			for i := 1; i <= argCount; i++ {
				args += fmt.Sprintf("{arg%d}", i)
			}
		}
		signatures = append(signatures, fmt.Sprintf(`\%s%s`, name, args))
	}

	return signatures
}

// BuildCommandCheatsheet builds a human-readable cheatsheet of the custom
// commands available in a preamble. An explicit message is returned when no
// commands are declared so downstream prompts are never silently starved.
func BuildCommandCheatsheet(preamble string) (cheatsheet string) {
	signatures := ExtractCommandSignatures(preamble)

	if len(signatures) == 0 {
		cheatsheet = NoCustomCommands
		return cheatsheet
	}

	lines := []string{"Available custom commands from the template:"}
	for _, sig := range signatures {
		lines = append(lines, "  - "+sig)
	}

	cheatsheet = strings.Join(lines, "\n")
	return cheatsheet
}
