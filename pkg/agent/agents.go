// Package agent holds the three generation agents. Each is a stateless
// prompt-construction wrapper around one backend reference.
package agent

import (
	"context"

	"github.com/nikogura/resume-agent/pkg/latex"
	"github.com/nikogura/resume-agent/pkg/provider"
	"github.com/pkg/errors"
)

// draftMaxTokens leaves room for long LaTeX bodies.
const draftMaxTokens = 8192

// Analyzer turns a job description into a structured analysis.
type Analyzer struct {
	backend provider.Provider
}

// NewAnalyzer creates an Analyzer using the given backend.
func NewAnalyzer(backend provider.Provider) (a *Analyzer) {
	a = &Analyzer{backend: backend}
	return a
}

// Analyze extracts core skills, ATS keywords, hidden needs, and culture
// signal from a job description. The raw model text is passed through
// unparsed.
func (a *Analyzer) Analyze(ctx context.Context, jobDescription string) (analysis string, err error) {
	prompt := buildAnalysisPrompt(jobDescription)

	analysis, err = a.backend.Generate(ctx, prompt, provider.Options{})
	if err != nil {
		err = errors.Wrap(err, "analysis request failed")
		return analysis, err
	}

	return analysis, err
}

// Strategist turns an analysis plus raw experience into a content strategy.
type Strategist struct {
	backend provider.Provider
}

// NewStrategist creates a Strategist using the given backend.
func NewStrategist(backend provider.Provider) (s *Strategist) {
	s = &Strategist{backend: backend}
	return s
}

// Plan produces a tactical content-selection plan. It never writes final
// prose; the prompt explicitly demands a plan only.
func (s *Strategist) Plan(ctx context.Context, analysis, experience, customInstructions string) (strategy string, err error) {
	prompt := buildStrategyPrompt(analysis, experience, customInstructions)

	strategy, err = s.backend.Generate(ctx, prompt, provider.Options{})
	if err != nil {
		err = errors.Wrap(err, "strategy request failed")
		return strategy, err
	}

	return strategy, err
}

// DraftRequest carries everything the Drafter needs for one attempt.
type DraftRequest struct {
	Analysis          string
	Strategy          string
	Preamble          string
	TemplateBody      string
	CommandCheatsheet string
	Experience        string
	// PreviousErrors, when non-empty, are listed verbatim in the prompt so
	// the model can fix its prior draft.
	PreviousErrors []string
	// Creativity selects the drafting temperature (1-5, default balanced).
	Creativity int
}

// Drafter writes the document body and reassembles the full document.
type Drafter struct {
	backend provider.Provider
}

// NewDrafter creates a Drafter using the given backend.
func NewDrafter(backend provider.Provider) (d *Drafter) {
	d = &Drafter{backend: backend}
	return d
}

// BuildResume generates a new body, cleans generation artifacts out of it,
// and returns the complete reassembled document. Callers never reassemble
// themselves.
func (d *Drafter) BuildResume(ctx context.Context, req DraftRequest) (document string, err error) {
	prompt := buildDraftPrompt(req)

	var raw string
	raw, err = d.backend.Generate(ctx, prompt, provider.Options{
		Temperature: Creativity(req.Creativity).Temperature,
		MaxTokens:   draftMaxTokens,
	})
	if err != nil {
		err = errors.Wrap(err, "draft request failed")
		return document, err
	}

	body := CleanBody(raw)
	document = latex.Reassemble(req.Preamble, body)

	return document, err
}
