package provider

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

// Anthropic is the Claude API adapter.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic adapter for the given model.
func NewAnthropic(apiKey, model string) (p *Anthropic) {
	p = &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
	return p
}

// Name identifies the provider.
func (p *Anthropic) Name() (name string) {
	name = IDAnthropic
	return name
}

// Generate runs one message call and returns the first text block.
func (p *Anthropic) Generate(ctx context.Context, prompt string, opts Options) (text string, err error) {
	opts = opts.withDefaults()

	var resp *anthropic.Message
	resp, err = p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(opts.MaxTokens),
		Temperature: anthropic.Float(opts.Temperature),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		err = &BackendError{Provider: p.Name(), Err: err}
		return text, err
	}

	for _, block := range resp.Content {
		text = block.AsText().Text
		break
	}

	if text == "" {
		err = &BackendError{Provider: p.Name(), Err: errors.New("no text content in response")}
		return text, err
	}

	return text, err
}

// CheckConnectivity issues a minimal message request and reports success.
func (p *Anthropic) CheckConnectivity(ctx context.Context) (ok bool) {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hi"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	ok = err == nil
	return ok
}
