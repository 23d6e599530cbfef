package provider

import (
	"context"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"
)

// GroqBaseURL is Groq's OpenAI-compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// OpenAI is the chat-completions adapter. It also backs the Groq provider,
// which speaks the same protocol against a different base URL.
type OpenAI struct {
	opts  []option.RequestOption
	model string
	name  string
}

// NewOpenAI creates an OpenAI adapter for the given model.
func NewOpenAI(apiKey, model string) (p *OpenAI) {
	p = &OpenAI{
		opts:  []option.RequestOption{option.WithAPIKey(apiKey)},
		model: model,
		name:  IDOpenAI,
	}
	return p
}

// NewGroq creates a Groq adapter. Same SDK, Groq's base URL.
func NewGroq(apiKey, model string) (p *OpenAI) {
	p = &OpenAI{
		opts: []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithBaseURL(GroqBaseURL),
		},
		model: model,
		name:  IDGroq,
	}
	return p
}

// Name identifies the provider.
func (p *OpenAI) Name() (name string) {
	name = p.name
	return name
}

// Generate runs one chat completion and returns the first choice.
func (p *OpenAI) Generate(ctx context.Context, prompt string, opts Options) (text string, err error) {
	opts = opts.withDefaults()
	client := openai.NewClient(p.opts...)

	var resp *openai.ChatCompletion
	resp, err = client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature:         openai.Float(opts.Temperature),
		MaxCompletionTokens: openai.Int(int64(opts.MaxTokens)),
	})
	if err != nil {
		err = &BackendError{Provider: p.name, Err: err}
		return text, err
	}

	if len(resp.Choices) == 0 {
		err = &BackendError{Provider: p.name, Err: errors.New("empty choices in response")}
		return text, err
	}

	text = resp.Choices[0].Message.Content
	return text, err
}

// CheckConnectivity lists models and reports success.
func (p *OpenAI) CheckConnectivity(ctx context.Context) (ok bool) {
	client := openai.NewClient(p.opts...)
	_, err := client.Models.List(ctx)
	ok = err == nil
	return ok
}
