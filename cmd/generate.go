package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nikogura/resume-agent/pkg/config"
	"github.com/nikogura/resume-agent/pkg/jd"
	"github.com/nikogura/resume-agent/pkg/provider"
	"github.com/nikogura/resume-agent/pkg/workflow"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var experienceFile string

//nolint:gochecknoglobals // Cobra boilerplate
var templateFile string

//nolint:gochecknoglobals // Cobra boilerplate
var outputFile string

//nolint:gochecknoglobals // Cobra boilerplate
var providerFlag string

//nolint:gochecknoglobals // Cobra boilerplate
var modelFlag string

//nolint:gochecknoglobals // Cobra boilerplate
var creativityFlag int

//nolint:gochecknoglobals // Cobra boilerplate
var instructionsFlag string

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate <jd-file-or-url>",
	Short: "Generate a tailored LaTeX resume",
	Long: `Generate a tailored LaTeX resume from a job description, your raw
experience notes, and a sample LaTeX resume template.

The job description can be provided as:
- A file path (e.g., jd.txt)
- A URL (e.g., https://example.com/jobs/123)

The template's preamble is preserved byte for byte; only the document body
is rewritten to target the job.

Example:
  resume-agent generate jd.txt --experience experience.md --template resume.tex
  resume-agent generate https://example.com/jobs/123 -e experience.md -t resume.tex -o tailored.tex`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&experienceFile, "experience", "e", "", "File containing your raw career experience (required)")
	generateCmd.Flags().StringVarP(&templateFile, "template", "t", "", "Sample LaTeX resume to use as the template (required)")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .tex path (default tailored-resume.tex in the configured output dir)")
	generateCmd.Flags().StringVar(&providerFlag, "provider", "", "LLM provider for all agents (overrides config)")
	generateCmd.Flags().StringVar(&modelFlag, "model", "", "Model name (overrides config, requires --provider)")
	generateCmd.Flags().IntVar(&creativityFlag, "creativity", 0, "Drafting creativity level 1-5 (overrides config)")
	generateCmd.Flags().StringVar(&instructionsFlag, "instructions", "", "Extra instructions for the tailoring strategy")
	_ = generateCmd.MarkFlagRequired("experience")
	_ = generateCmd.MarkFlagRequired("template")
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var jobDescription string
	jobDescription, err = fetchAndLogJD(ctx, args[0])
	if err != nil {
		return err
	}

	var experience string
	experience, err = readInputFile(experienceFile, "experience")
	if err != nil {
		return err
	}

	var sample string
	sample, err = readInputFile(templateFile, "template")
	if err != nil {
		return err
	}

	var backends workflow.Backends
	backends, err = buildBackends(cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to configure LLM backends")
		return err
	}

	creativity := creativityFlag
	if creativity == 0 {
		creativity = cfg.Creativity
	}

	logger := logrus.New()
	if getVerbose() {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	// Show spinner during the run unless in verbose mode
	var runSpinner *spinner
	if !getVerbose() {
		runSpinner = newSpinner("Tailoring resume...")
		runSpinner.start()
	} else {
		fmt.Println("Tailoring resume...")
	}

	var result workflow.Result
	result, err = workflow.New(backends, logger).Run(ctx, workflow.Inputs{
		JobDescription:     jobDescription,
		RawExperience:      experience,
		SampleLaTeX:        sample,
		CustomInstructions: instructionsFlag,
		Creativity:         creativity,
	})

	if runSpinner != nil {
		runSpinner.finish()
	}

	if err != nil {
		err = errors.Wrap(err, "generation failed")
		return err
	}

	outPath := resolveOutputPath(cfg)
	err = os.WriteFile(outPath, []byte(result.FinalLaTeX), 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to write output file: %s", outPath)
		return err
	}

	reportResult(result, outPath)

	return err
}

func reportResult(result workflow.Result, outPath string) {
	if result.IsValid {
		fmt.Printf("✓ Resume generated (%d revision(s))\n", result.RevisionCount)
	} else {
		fmt.Printf("⚠ Resume generated but failed structural validation after %d revision(s)\n", result.RevisionCount)
		for _, issue := range result.Issues {
			fmt.Printf("  - %s\n", issue)
		}
		fmt.Println("The output may need manual LaTeX fixes before it compiles.")
	}

	fmt.Printf("Resume saved at: %s\n", outPath)

	if getVerbose() {
		fmt.Println("\nJob analysis:")
		fmt.Println(result.Analysis)
		fmt.Println("\nTailoring strategy:")
		fmt.Println(result.Strategy)
	}
}

// buildBackends resolves one provider per agent role. The --provider and
// --model flags override both the global and the per-role config choices.
func buildBackends(cfg config.Config) (backends workflow.Backends, err error) {
	backends.Analyzer, err = newBackend(cfg, cfg.Agents.Analyzer)
	if err != nil {
		return backends, err
	}

	backends.Strategist, err = newBackend(cfg, cfg.Agents.Strategist)
	if err != nil {
		return backends, err
	}

	backends.Drafter, err = newBackend(cfg, cfg.Agents.Developer)
	if err != nil {
		return backends, err
	}

	return backends, err
}

func newBackend(cfg config.Config, agentCfg config.AgentConfig) (p provider.Provider, err error) {
	sel := cfg.Selection(agentCfg)

	if providerFlag != "" {
		sel.Provider = providerFlag
		sel.Model = modelFlag
		sel.APIKey = cfg.APIKeys[providerFlag]
	}

	p, err = provider.New(sel)
	return p, err
}

func resolveOutputPath(cfg config.Config) (outPath string) {
	outPath = outputFile
	if outPath == "" {
		outPath = filepath.Join(cfg.Defaults.OutputDir, "tailored-resume.tex")
	}
	return outPath
}

func readInputFile(path, kind string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s file: %s", kind, path)
		return content, err
	}

	content = string(data)
	if strings.TrimSpace(content) == "" {
		err = errors.Errorf("%s file is empty: %s", kind, path)
		return content, err
	}

	return content, err
}

func fetchAndLogJD(ctx context.Context, jdInput string) (jobDescription string, err error) {
	if getVerbose() {
		fmt.Printf("Loading job description from: %s\n", jdInput)
	}

	jobDescription, err = jd.Fetch(ctx, jdInput)
	if err != nil {
		// If fetching failed, offer to accept manual input
		fmt.Printf("\nWarning: Failed to fetch job description: %v\n", err)
		fmt.Println("This often happens with JavaScript-rendered pages (Lever, Workable, etc.)")
		fmt.Println("\nPlease paste the job description text below.")
		fmt.Println("When finished, press Ctrl+D (Unix/Mac) or Ctrl+Z then Enter (Windows):")
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}

		if scanner.Err() != nil {
			err = errors.Wrap(scanner.Err(), "failed to read job description from stdin")
			return jobDescription, err
		}

		jobDescription = strings.Join(lines, "\n")
		jobDescription = strings.TrimSpace(jobDescription)

		if jobDescription == "" {
			err = errors.New("no job description provided")
			return jobDescription, err
		}

		fmt.Printf("\nJob description received (%d characters)\n", len(jobDescription))
		err = nil
		return jobDescription, err
	}

	if getVerbose() {
		fmt.Printf("Job description loaded (%d characters)\n", len(jobDescription))
	}

	return jobDescription, err
}

// spinner keeps the terminal alive during the multi-minute LLM pipeline.
type spinner struct {
	message string
	quit    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	active  bool
}

//nolint:gochecknoglobals // Fixed animation frames
var spinnerFrames = []string{"|", "/", "-", "\\"}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for frame := 0; ; frame++ {
			select {
			case <-s.quit:
				// Blank the whole line before the next print lands on it.
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				close(s.done)
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, spinnerFrames[frame%len(spinnerFrames)])
			}
		}
	}()
}

func (s *spinner) finish() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	close(s.quit)
	<-s.done
}
