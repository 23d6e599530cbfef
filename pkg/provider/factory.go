package provider

import (
	"fmt"
	"os"
)

// Supported provider ids. Construction-time selection happens through this
// closed set, not open-ended subclassing.
const (
	IDAnthropic = "anthropic"
	IDOpenAI    = "openai"
	IDGroq      = "groq"
	IDGemini    = "gemini"
	IDOllama    = "ollama"
)

//nolint:gochecknoglobals // Closed enumeration tables for the factory
var (
	// defaultModels maps each provider id to the model used when a
	// selection omits one.
	defaultModels = map[string]string{
		IDAnthropic: "claude-sonnet-4-20250514",
		IDOpenAI:    "gpt-4o-mini",
		IDGroq:      "llama-3.3-70b-versatile",
		IDGemini:    "gemini-2.0-flash-exp",
		IDOllama:    "llama3.3",
	}

	// envKeys maps each paid provider id to its credential fallback
	// environment variable.
	envKeys = map[string]string{
		IDAnthropic: "ANTHROPIC_API_KEY",
		IDOpenAI:    "OPENAI_API_KEY",
		IDGroq:      "GROQ_API_KEY",
		IDGemini:    "GEMINI_API_KEY",
	}
)

// IDs returns the supported provider ids in display order.
func IDs() (ids []string) {
	ids = []string{IDAnthropic, IDOpenAI, IDGroq, IDGemini, IDOllama}
	return ids
}

// DefaultModel returns the default model for a provider id, empty for an
// unknown id.
func DefaultModel(providerID string) (model string) {
	model = defaultModels[providerID]
	return model
}

// Selection describes one backend choice for a job.
type Selection struct {
	Provider string
	Model    string
	// APIKey is the explicit credential. When empty, the provider's
	// environment variable is consulted. Ollama never needs one.
	APIKey string
	// OllamaEndpoint overrides the local daemon address; only meaningful
	// for the ollama provider.
	OllamaEndpoint string
}

// New constructs the adapter for a selection. Unknown ids and unresolvable
// credentials return a *ConfigError before any generation step can run.
func New(sel Selection) (p Provider, err error) {
	model := sel.Model
	if model == "" {
		model = defaultModels[sel.Provider]
	}

	switch sel.Provider {
	case IDOllama:
		// Local provider - no credential required.
		endpoint := sel.OllamaEndpoint
		if endpoint == "" {
			endpoint = DefaultOllamaEndpoint
		}
		p = NewOllama(model, endpoint)
		return p, err

	case IDAnthropic, IDOpenAI, IDGroq, IDGemini:
		apiKey := sel.APIKey
		if apiKey == "" {
			apiKey = os.Getenv(envKeys[sel.Provider])
		}
		if apiKey == "" {
			err = &ConfigError{Reason: fmt.Sprintf("%s requires an API key (supply one or set %s)", sel.Provider, envKeys[sel.Provider])}
			return p, err
		}

		switch sel.Provider {
		case IDAnthropic:
			p = NewAnthropic(apiKey, model)
		case IDOpenAI:
			p = NewOpenAI(apiKey, model)
		case IDGroq:
			p = NewGroq(apiKey, model)
		case IDGemini:
			p = NewGemini(apiKey, model)
		}
		return p, err

	default:
		err = &ConfigError{Reason: fmt.Sprintf("unknown provider: %q", sel.Provider)}
		return p, err
	}
}
