package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// DefaultOllamaEndpoint is where a local Ollama daemon listens.
const DefaultOllamaEndpoint = "http://localhost:11434"

// ollamaProbeTimeout caps the connectivity and discovery calls so status
// checks stay snappy even with no daemon running.
const ollamaProbeTimeout = 5 * time.Second

// Ollama is the local on-device adapter. Free, private, no credential.
type Ollama struct {
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewOllama creates an Ollama adapter against the given endpoint.
func NewOllama(model, endpoint string) (p *Ollama) {
	p = &Ollama{
		model:    model,
		endpoint: endpoint,
		httpClient: &http.Client{
			// Local models can be slow to produce long completions.
			Timeout: 300 * time.Second,
		},
	}
	return p
}

// Name identifies the provider.
func (p *Ollama) Name() (name string) {
	name = IDOllama
	return name
}

// ollamaRequest is the /api/generate request format.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

// ollamaOptions holds per-request sampling options.
type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// Generate runs one non-streaming completion against the local daemon.
func (p *Ollama) Generate(ctx context.Context, prompt string, opts Options) (text string, err error) {
	opts = opts.withDefaults()

	ollamaReq := ollamaRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	}

	var reqBody []byte
	reqBody, err = json.Marshal(ollamaReq)
	if err != nil {
		err = &BackendError{Provider: p.Name(), Err: errors.Wrap(err, "failed to marshal request")}
		return text, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		err = &BackendError{Provider: p.Name(), Err: errors.Wrap(err, "failed to create HTTP request")}
		return text, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp *http.Response
	resp, err = p.httpClient.Do(httpReq)
	if err != nil {
		err = &BackendError{Provider: p.Name(), Err: errors.Wrap(err, "cannot reach Ollama (is 'ollama serve' running?)")}
		return text, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = &BackendError{Provider: p.Name(), Err: errors.Wrap(err, "failed to read response body")}
		return text, err
	}

	if resp.StatusCode != http.StatusOK {
		err = &BackendError{Provider: p.Name(), Err: errors.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))}
		return text, err
	}

	text = gjson.GetBytes(respBody, "response").String()
	if text == "" {
		err = &BackendError{Provider: p.Name(), Err: errors.New("empty response")}
		return text, err
	}

	return text, err
}

// CheckConnectivity probes the daemon's tag listing and reports success.
func (p *Ollama) CheckConnectivity(ctx context.Context) (ok bool) {
	respBody, err := p.getTags(ctx)
	ok = err == nil && respBody != nil
	return ok
}

// ListInstalledModels returns the names of locally installed models. An
// unreachable daemon yields an empty list, not an error.
func (p *Ollama) ListInstalledModels(ctx context.Context) (names []string) {
	respBody, err := p.getTags(ctx)
	if err != nil {
		return names
	}

	for _, name := range gjson.GetBytes(respBody, "models.#.name").Array() {
		names = append(names, name.String())
	}

	return names
}

// getTags fetches the daemon's installed model listing.
func (p *Ollama) getTags(ctx context.Context) (respBody []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, ollamaProbeTimeout)
	defer cancel()

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/api/tags", nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return respBody, err
	}

	var resp *http.Response
	resp, err = p.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return respBody, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("request failed with status %d", resp.StatusCode)
		return respBody, err
	}

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return respBody, err
	}

	return respBody, err
}
