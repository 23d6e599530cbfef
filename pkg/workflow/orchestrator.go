package workflow

import (
	"context"

	"github.com/nikogura/resume-agent/pkg/agent"
	"github.com/nikogura/resume-agent/pkg/latex"
	"github.com/nikogura/resume-agent/pkg/provider"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// The agent contracts the orchestrator drives. Satisfied by pkg/agent;
// narrow so tests can stub them.
type analyzer interface {
	Analyze(ctx context.Context, jobDescription string) (analysis string, err error)
}

type strategist interface {
	Plan(ctx context.Context, analysis, experience, customInstructions string) (strategy string, err error)
}

type drafter interface {
	BuildResume(ctx context.Context, req agent.DraftRequest) (document string, err error)
}

// Backends selects one provider per agent role. The three fields may share
// a single provider instance or differ per role.
type Backends struct {
	Analyzer   provider.Provider
	Strategist provider.Provider
	Drafter    provider.Provider
}

// Orchestrator runs the parse, analyze, strategize, draft, validate
// pipeline with one feedback edge from validation back to drafting. It is
// strictly sequential within a job; concurrency happens across jobs, each
// with its own state.
type Orchestrator struct {
	analyzer   analyzer
	strategist strategist
	drafter    drafter
	logger     *logrus.Logger
}

// New creates an orchestrator with one backend per agent role.
func New(backends Backends, logger *logrus.Logger) (o *Orchestrator) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	o = &Orchestrator{
		analyzer:   agent.NewAnalyzer(backends.Analyzer),
		strategist: agent.NewStrategist(backends.Strategist),
		drafter:    agent.NewDrafter(backends.Drafter),
		logger:     logger,
	}
	return o
}

// Run executes one complete generation job. Backend failures abort the job
// immediately; validation failures feed the retry loop instead. Exhausting
// the retry ceiling is not an error: the result carries IsValid=false and
// the surviving issue list.
func (o *Orchestrator) Run(ctx context.Context, inputs Inputs) (result Result, err error) {
	state := &State{Inputs: inputs}

	// PARSE: split the template once, before any agent runs.
	parts := latex.SplitTemplate(inputs.SampleLaTeX)
	state.Preamble = parts.Preamble
	state.Body = parts.Body
	state.CommandCheatsheet = parts.CommandCheatsheet

	// ANALYZE
	o.logger.WithField("step", "analyze").Info("analyzing job description")
	state.JobAnalysis, err = o.analyzer.Analyze(ctx, inputs.JobDescription)
	if err != nil {
		err = errors.Wrap(err, "analyze step failed")
		return result, err
	}

	// STRATEGIZE
	o.logger.WithField("step", "strategize").Info("formulating resume strategy")
	state.StrategyPlan, err = o.strategist.Plan(ctx, state.JobAnalysis, inputs.RawExperience, inputs.CustomInstructions)
	if err != nil {
		err = errors.Wrap(err, "strategize step failed")
		return result, err
	}

	// DRAFT / VALIDATE with the bounded feedback edge.
	for {
		o.logger.WithFields(logrus.Fields{
			"step":     "draft",
			"revision": state.RevisionCount + 1,
		}).Info("drafting resume")

		var document string
		document, err = o.drafter.BuildResume(ctx, agent.DraftRequest{
			Analysis:          state.JobAnalysis,
			Strategy:          state.StrategyPlan,
			Preamble:          state.Preamble,
			TemplateBody:      state.Body,
			CommandCheatsheet: state.CommandCheatsheet,
			Experience:        inputs.RawExperience,
			PreviousErrors:    state.StructuralIssues,
			Creativity:        inputs.Creativity,
		})
		if err != nil {
			err = errors.Wrap(err, "draft step failed")
			return result, err
		}

		state.LaTeXCode = document
		state.RevisionCount++

		// VALIDATE: both checkers run on every pass, and the issue list is
		// replaced so it never reflects a stale draft.
		structValid, structIssues := latex.Validate(state.LaTeXCode)
		confValid, confIssues := latex.CheckConformance(inputs.SampleLaTeX, state.LaTeXCode)
		state.IsValidLaTeX = structValid && confValid
		state.StructuralIssues = append(structIssues, confIssues...)

		if state.IsValidLaTeX {
			o.logger.WithField("revisions", state.RevisionCount).Info("draft validated")
			break
		}

		if state.RevisionCount >= MaxRevisions {
			o.logger.WithFields(logrus.Fields{
				"revisions": state.RevisionCount,
				"issues":    len(state.StructuralIssues),
			}).Warn("retry budget exhausted, returning last draft")
			break
		}

		o.logger.WithFields(logrus.Fields{
			"revision": state.RevisionCount,
			"issues":   state.StructuralIssues,
		}).Info("draft invalid, retrying with feedback")
	}

	result = Result{
		FinalLaTeX:    state.LaTeXCode,
		Analysis:      state.JobAnalysis,
		Strategy:      state.StrategyPlan,
		IsValid:       state.IsValidLaTeX,
		Issues:        state.StructuralIssues,
		RevisionCount: state.RevisionCount,
	}

	return result, err
}
