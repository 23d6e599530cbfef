package provider

import (
	"errors"
	"strings"
	"testing"
)

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(Selection{Provider: "skynet"})
	if err == nil {
		t.Fatal("Expected error for unknown provider, got nil")
	}

	var confErr *ConfigError
	if !errors.As(err, &confErr) {
		t.Fatalf("Expected *ConfigError, got %T: %v", err, err)
	}

	if !strings.Contains(err.Error(), `unknown provider: "skynet"`) {
		t.Errorf("Unexpected error text: '%v'", err)
	}
}

func TestNewMissingCredential(t *testing.T) {
	for _, id := range []string{IDAnthropic, IDOpenAI, IDGroq, IDGemini} {
		t.Run(id, func(t *testing.T) {
			t.Setenv(envKeys[id], "")

			_, err := New(Selection{Provider: id})
			if err == nil {
				t.Fatal("Expected error for missing credential, got nil")
			}

			var confErr *ConfigError
			if !errors.As(err, &confErr) {
				t.Fatalf("Expected *ConfigError, got %T: %v", err, err)
			}

			if !strings.Contains(err.Error(), envKeys[id]) {
				t.Errorf("Expected error to name the env var %s, got '%v'", envKeys[id], err)
			}
		})
	}
}

func TestNewCredentialFromEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	p, err := New(Selection{Provider: IDAnthropic})
	if err != nil {
		t.Fatalf("Expected env credential to satisfy the factory, got error: %v", err)
	}

	if p.Name() != IDAnthropic {
		t.Errorf("Expected provider name '%s', got '%s'", IDAnthropic, p.Name())
	}
}

func TestNewOllamaNeedsNoCredential(t *testing.T) {
	p, err := New(Selection{Provider: IDOllama})
	if err != nil {
		t.Fatalf("Expected ollama to construct without a credential, got error: %v", err)
	}

	ollama, ok := p.(*Ollama)
	if !ok {
		t.Fatalf("Expected *Ollama, got %T", p)
	}

	if ollama.endpoint != DefaultOllamaEndpoint {
		t.Errorf("Expected default endpoint '%s', got '%s'", DefaultOllamaEndpoint, ollama.endpoint)
	}
	if ollama.model != defaultModels[IDOllama] {
		t.Errorf("Expected default model '%s', got '%s'", defaultModels[IDOllama], ollama.model)
	}
}

func TestNewOllamaEndpointOverride(t *testing.T) {
	p, err := New(Selection{Provider: IDOllama, OllamaEndpoint: "http://gpu-box:11434"})
	if err != nil {
		t.Fatalf("Failed to construct ollama provider: %v", err)
	}

	ollama := p.(*Ollama)
	if ollama.endpoint != "http://gpu-box:11434" {
		t.Errorf("Expected endpoint override, got '%s'", ollama.endpoint)
	}
}

func TestNewGroqUsesGroqName(t *testing.T) {
	p, err := New(Selection{Provider: IDGroq, APIKey: "gsk-test"})
	if err != nil {
		t.Fatalf("Failed to construct groq provider: %v", err)
	}

	if p.Name() != IDGroq {
		t.Errorf("Expected provider name '%s', got '%s'", IDGroq, p.Name())
	}
}

func TestDefaultModel(t *testing.T) {
	for _, id := range IDs() {
		if DefaultModel(id) == "" {
			t.Errorf("Expected a default model for provider '%s'", id)
		}
	}

	if DefaultModel("skynet") != "" {
		t.Error("Expected empty default model for unknown provider")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.Temperature != DefaultTemperature {
		t.Errorf("Expected default temperature %v, got %v", DefaultTemperature, opts.Temperature)
	}
	if opts.MaxTokens != DefaultMaxTokens {
		t.Errorf("Expected default max tokens %d, got %d", DefaultMaxTokens, opts.MaxTokens)
	}

	opts = Options{Temperature: 0.9, MaxTokens: 8192}.withDefaults()
	if opts.Temperature != 0.9 || opts.MaxTokens != 8192 {
		t.Errorf("Expected explicit options preserved, got %+v", opts)
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Reason: "something is off"}
	if err.Error() != "provider configuration error: something is off" {
		t.Errorf("Unexpected message: '%s'", err.Error())
	}
}

func TestBackendErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &BackendError{Provider: "anthropic", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected BackendError to unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "anthropic generation failed") {
		t.Errorf("Unexpected message: '%s'", err.Error())
	}
}
