package provider

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// Gemini is the Google Gemini API adapter.
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini creates a Gemini adapter for the given model.
func NewGemini(apiKey, model string) (p *Gemini) {
	p = &Gemini{
		apiKey: apiKey,
		model:  model,
	}
	return p
}

// Name identifies the provider.
func (p *Gemini) Name() (name string) {
	name = IDGemini
	return name
}

// newClient builds an SDK client bound to ctx; the adapter itself holds no
// connection state.
func (p *Gemini) newClient(ctx context.Context) (client *genai.Client, err error) {
	client, err = genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	return client, err
}

// Generate runs one content generation call.
func (p *Gemini) Generate(ctx context.Context, prompt string, opts Options) (text string, err error) {
	opts = opts.withDefaults()

	var client *genai.Client
	client, err = p.newClient(ctx)
	if err != nil {
		err = &BackendError{Provider: p.Name(), Err: err}
		return text, err
	}

	var resp *genai.GenerateContentResponse
	resp, err = client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(opts.Temperature)),
		MaxOutputTokens: int32(opts.MaxTokens),
	})
	if err != nil {
		err = &BackendError{Provider: p.Name(), Err: err}
		return text, err
	}

	text = resp.Text()
	if text == "" {
		err = &BackendError{Provider: p.Name(), Err: errors.New("empty response")}
		return text, err
	}

	return text, err
}

// CheckConnectivity issues a minimal generation and reports success.
func (p *Gemini) CheckConnectivity(ctx context.Context) (ok bool) {
	client, err := p.newClient(ctx)
	if err != nil {
		return false
	}

	_, err = client.Models.GenerateContent(ctx, p.model, genai.Text("Hi"), &genai.GenerateContentConfig{
		MaxOutputTokens: 10,
	})
	ok = err == nil
	return ok
}
