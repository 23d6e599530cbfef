package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/nikogura/resume-agent/pkg/provider"
	"github.com/pkg/errors"
)

// DefaultListen is the server bind address when none is configured.
const DefaultListen = ":8080"

// Config represents the application configuration.
type Config struct {
	// Provider and Model are the default backend applied to every agent
	// role that has no override of its own.
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	// APIKeys maps provider id to credential. Credentials resolve in
	// order: explicit request value, this map, provider env var.
	APIKeys        map[string]string `json:"api_keys,omitempty"`
	OllamaEndpoint string            `json:"ollama_endpoint,omitempty"`
	// Creativity is the default drafting level (1-5).
	Creativity int           `json:"creativity,omitempty"`
	Listen     string        `json:"listen,omitempty"`
	Agents     AgentsConfig  `json:"agents,omitempty"`
	Defaults   DefaultConfig `json:"defaults"`
}

// AgentConfig selects a backend for one agent role.
type AgentConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// AgentsConfig holds per-role backend overrides.
type AgentsConfig struct {
	Analyzer   AgentConfig `json:"analyzer,omitempty"`
	Strategist AgentConfig `json:"strategist,omitempty"`
	Developer  AgentConfig `json:"developer,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
}

// Selection builds the provider selection for one agent role, applying the
// role override on top of the global choice.
func (c *Config) Selection(agentCfg AgentConfig) (sel provider.Selection) {
	sel = provider.Selection{
		Provider:       c.Provider,
		Model:          c.Model,
		OllamaEndpoint: c.OllamaEndpoint,
	}

	if agentCfg.Provider != "" {
		sel.Provider = agentCfg.Provider
		// A per-role provider switch invalidates the global model choice.
		sel.Model = ""
	}
	if agentCfg.Model != "" {
		sel.Model = agentCfg.Model
	}

	sel.APIKey = c.APIKeys[sel.Provider]

	return sel
}

// Load reads configuration from file. A missing path falls back to
// ~/.resume-agent/config.json.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".resume-agent", "config.json")
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'resume-agent init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks the configuration and fills defaults. Credentials are not
// checked here; they resolve per job, and the local provider never needs
// one.
func (c *Config) Validate() (err error) {
	if c.Provider == "" {
		c.Provider = provider.IDAnthropic
	}

	known := false
	for _, id := range provider.IDs() {
		if c.Provider == id {
			known = true
			break
		}
	}
	if !known {
		err = errors.Errorf("unknown provider in config: %q", c.Provider)
		return err
	}

	if c.Creativity < 0 || c.Creativity > 5 {
		err = errors.Errorf("creativity must be 1-5, got %d", c.Creativity)
		return err
	}

	if c.Listen == "" {
		c.Listen = DefaultListen
	}

	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "."
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".resume-agent", "config.json")
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		Provider: provider.IDAnthropic,
		Model:    provider.DefaultModel(provider.IDAnthropic),
		APIKeys: map[string]string{
			provider.IDAnthropic: "sk-ant-api03-...",
		},
		OllamaEndpoint: provider.DefaultOllamaEndpoint,
		Creativity:     3,
		Listen:         DefaultListen,
		Defaults: DefaultConfig{
			OutputDir: ".",
		},
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
