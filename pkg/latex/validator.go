package latex

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	beginEnvPattern = regexp.MustCompile(`\\begin\{([^}]+)\}`)
	endEnvPattern   = regexp.MustCompile(`\\end\{([^}]+)\}`)
)

// Validate checks a document for structural well-formedness and generation
// artifacts. All checks run independently so the caller sees every problem
// from a single pass. It never fails; an empty issue list is the only
// success signal.
func Validate(latexCode string) (isValid bool, issues []string) {
	issues = []string{}

	// Brace balance.
	openBraces := strings.Count(latexCode, "{")
	closeBraces := strings.Count(latexCode, "}")
	if openBraces != closeBraces {
		issues = append(issues, fmt.Sprintf("Mismatched braces: found %d open '{' and %d close '}'", openBraces, closeBraces))
	}

	// Environment balance. Counts only - nesting order is the compiler's
	// problem, not this validator's.
	beginTags := extractEnvNames(beginEnvPattern, latexCode)
	endTags := extractEnvNames(endEnvPattern, latexCode)

	if len(beginTags) != len(endTags) {
		issues = append(issues, fmt.Sprintf(`Mismatched environments: found %d \begin vs %d \end tags`, len(beginTags), len(endTags)))
	} else {
		onlyBegun, onlyEnded := multisetDiff(beginTags, endTags)
		if len(onlyBegun) > 0 || len(onlyEnded) > 0 {
			issues = append(issues, fmt.Sprintf("Environment types do not match. Started but never ended: [%s]. Ended but never started: [%s]",
				strings.Join(onlyBegun, ", "), strings.Join(onlyEnded, ", ")))
		}
	}

	// Markdown fences are a model hallucination and must never survive.
	if strings.Contains(latexCode, "```") {
		issues = append(issues, "Markdown code fences (```) found in output. Please remove them.")
	}

	isValid = len(issues) == 0
	return isValid, issues
}

// extractEnvNames returns the environment names matched by pattern, in order
// of appearance.
func extractEnvNames(pattern *regexp.Regexp, latexCode string) (names []string) {
	matches := pattern.FindAllStringSubmatch(latexCode, -1)
	for _, match := range matches {
		names = append(names, match[1])
	}
	return names
}

// multisetDiff compares two name multisets and returns the names that appear
// more often on one side than the other, in first-appearance order.
func multisetDiff(begun, ended []string) (onlyBegun, onlyEnded []string) {
	counts := make(map[string]int)
	for _, name := range begun {
		counts[name]++
	}
	for _, name := range ended {
		counts[name]--
	}

	seen := make(map[string]bool)
	for _, name := range begun {
		if counts[name] > 0 && !seen[name] {
			onlyBegun = append(onlyBegun, name)
			seen[name] = true
		}
	}
	for _, name := range ended {
		if counts[name] < 0 && !seen[name] {
			onlyEnded = append(onlyEnded, name)
			seen[name] = true
		}
	}

	return onlyBegun, onlyEnded
}
