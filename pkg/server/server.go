// Package server exposes the generation workflow over HTTP. It owns no
// persistence and no wire format beyond the request/response JSON below.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nikogura/resume-agent/pkg/config"
	"github.com/nikogura/resume-agent/pkg/provider"
	"github.com/nikogura/resume-agent/pkg/workflow"
	"github.com/sirupsen/logrus"
)

// DefaultJobTimeout bounds one whole generation job. A timeout abandons
// every outstanding backend call via context cancellation.
const DefaultJobTimeout = 5 * time.Minute

// runFunc executes one job. Swappable so handler tests need no backends.
type runFunc func(ctx context.Context, backends workflow.Backends, inputs workflow.Inputs) (result workflow.Result, err error)

// Server handles generation requests.
type Server struct {
	cfg     config.Config
	logger  *logrus.Logger
	timeout time.Duration
	run     runFunc
}

// New creates a server around the given configuration.
func New(cfg config.Config, logger *logrus.Logger) (s *Server) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s = &Server{
		cfg:     cfg,
		logger:  logger,
		timeout: DefaultJobTimeout,
	}
	s.run = func(ctx context.Context, backends workflow.Backends, inputs workflow.Inputs) (result workflow.Result, err error) {
		result, err = workflow.New(backends, s.logger).Run(ctx, inputs)
		return result, err
	}

	return s
}

// Routes returns the HTTP handler tree.
func (s *Server) Routes() (handler http.Handler) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/health", s.handleHealth)
	handler = s.logMiddleware(mux)
	return handler
}

// ListenAndServe runs the server on the configured address.
func (s *Server) ListenAndServe() (err error) {
	s.logger.WithField("listen", s.cfg.Listen).Info("starting server")

	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	err = srv.ListenAndServe()
	return err
}

// ModelConfig selects a backend for one agent role.
type ModelConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

type generateRequest struct {
	JobDescription     string `json:"job_description"`
	RawExperience      string `json:"raw_experience"`
	SampleLaTeX        string `json:"sample_latex"`
	CustomInstructions string `json:"custom_instructions,omitempty"`
	CreativityLevel    int    `json:"creativity_level,omitempty"`

	// Per-agent backend selections.
	AnalyzerConfig   *ModelConfig `json:"analyzer_config,omitempty"`
	StrategistConfig *ModelConfig `json:"strategist_config,omitempty"`
	DeveloperConfig  *ModelConfig `json:"developer_config,omitempty"`

	// Legacy single selection, applied to any role without its own config.
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

type generateResponse struct {
	FinalLaTeX    string   `json:"final_latex"`
	Analysis      string   `json:"analysis"`
	Strategy      string   `json:"strategy"`
	IsValid       bool     `json:"is_valid"`
	Errors        []string `json:"errors"`
	RevisionCount int      `json:"revision_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if req.JobDescription == "" || req.RawExperience == "" || req.SampleLaTeX == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "job_description, raw_experience, and sample_latex are required"})
		return
	}

	// Resolve all three backends before any generation step runs, so
	// configuration errors fail fast and cheap.
	backends, err := s.resolveBackends(req)
	if err != nil {
		status := http.StatusInternalServerError
		var confErr *provider.ConfigError
		if errors.As(err, &confErr) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	creativity := req.CreativityLevel
	if creativity == 0 {
		creativity = s.cfg.Creativity
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.run(ctx, backends, workflow.Inputs{
		JobDescription:     req.JobDescription,
		RawExperience:      req.RawExperience,
		SampleLaTeX:        req.SampleLaTeX,
		CustomInstructions: req.CustomInstructions,
		Creativity:         creativity,
	})
	if err != nil {
		// No partial state leaks; the job failed as a unit.
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		FinalLaTeX:    result.FinalLaTeX,
		Analysis:      result.Analysis,
		Strategy:      result.Strategy,
		IsValid:       result.IsValid,
		Errors:        result.Issues,
		RevisionCount: result.RevisionCount,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveBackends builds the per-role providers: request role config first,
// then the request's legacy single config, then the server configuration
// with its own per-role overrides.
func (s *Server) resolveBackends(req generateRequest) (backends workflow.Backends, err error) {
	backends.Analyzer, err = s.buildProvider(req.AnalyzerConfig, req, s.cfg.Agents.Analyzer)
	if err != nil {
		return backends, err
	}

	backends.Strategist, err = s.buildProvider(req.StrategistConfig, req, s.cfg.Agents.Strategist)
	if err != nil {
		return backends, err
	}

	backends.Drafter, err = s.buildProvider(req.DeveloperConfig, req, s.cfg.Agents.Developer)
	if err != nil {
		return backends, err
	}

	return backends, err
}

func (s *Server) buildProvider(roleCfg *ModelConfig, req generateRequest, agentCfg config.AgentConfig) (p provider.Provider, err error) {
	var sel provider.Selection

	switch {
	case roleCfg != nil:
		sel = provider.Selection{
			Provider: roleCfg.Provider,
			Model:    roleCfg.Model,
			APIKey:   roleCfg.APIKey,
		}
	case req.Provider != "":
		sel = provider.Selection{
			Provider: req.Provider,
			Model:    req.Model,
			APIKey:   req.APIKey,
		}
	default:
		sel = s.cfg.Selection(agentCfg)
	}

	if sel.APIKey == "" {
		sel.APIKey = s.cfg.APIKeys[sel.Provider]
	}
	sel.OllamaEndpoint = s.cfg.OllamaEndpoint

	p, err = provider.New(sel)
	return p, err
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) (handler http.Handler) {
	handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobID := uuid.NewString()
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.WithFields(logrus.Fields{
			"job_id":   jobID,
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request handled")
	})
	return handler
}
