// Package workflow wires the template splitter, the generation agents, and
// the structural validators into a bounded draft-validate-retry loop.
package workflow

// MaxRevisions caps Drafter invocations per job. Once reached, the job
// terminates normally with whatever the last draft looked like.
const MaxRevisions = 3

// Inputs are the immutable per-job inputs.
type Inputs struct {
	JobDescription     string
	RawExperience      string
	SampleLaTeX        string
	CustomInstructions string
	// Creativity selects the drafting temperature (1-5, default balanced).
	Creativity int
}

// State is the working memory of one generation job. It exists only for
// the job's duration and is owned exclusively by the orchestrator; jobs
// never share state.
type State struct {
	Inputs

	// Template parts, written once by the split step before any agent runs.
	Preamble          string
	Body              string
	CommandCheatsheet string

	// Agent outputs, written once per job and only consumed afterwards.
	JobAnalysis  string
	StrategyPlan string

	// Current draft, rewritten on every Drafter invocation.
	LaTeXCode string

	// Feedback loop. StructuralIssues is replaced wholesale on each
	// validation pass so it always describes the current draft.
	StructuralIssues []string
	RevisionCount    int
	IsValidLaTeX     bool
}

// Result is what a finished job surfaces to the caller, regardless of
// whether it terminated valid or at the retry ceiling.
type Result struct {
	FinalLaTeX    string
	Analysis      string
	Strategy      string
	IsValid       bool
	Issues        []string
	RevisionCount int
}
