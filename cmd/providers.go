package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/resume-agent/pkg/config"
	"github.com/nikogura/resume-agent/pkg/provider"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var checkProviders bool

//nolint:gochecknoglobals // Cobra boilerplate
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported LLM providers",
	Long: `List the supported LLM providers and their default models.

With --check, each configured provider is probed for connectivity, and the
local Ollama server is asked for its installed models.

Example:
  resume-agent providers
  resume-agent providers --check`,
	RunE: runProviders,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(providersCmd)
	providersCmd.Flags().BoolVar(&checkProviders, "check", false, "Probe each configured provider for connectivity")
}

func runProviders(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, id := range provider.IDs() {
		marker := " "
		if id == cfg.Provider {
			marker = "*"
		}
		fmt.Printf("%s %-10s default model: %s\n", marker, id, provider.DefaultModel(id))

		if !checkProviders {
			continue
		}

		p, newErr := provider.New(provider.Selection{
			Provider:       id,
			APIKey:         cfg.APIKeys[id],
			OllamaEndpoint: cfg.OllamaEndpoint,
		})
		if newErr != nil {
			fmt.Printf("             not configured: %v\n", newErr)
			continue
		}

		if !p.CheckConnectivity(ctx) {
			fmt.Println("             unreachable")
			continue
		}
		fmt.Println("             reachable")

		if ollama, ok := p.(*provider.Ollama); ok {
			models := ollama.ListInstalledModels(ctx)
			if len(models) > 0 {
				fmt.Println("             installed models:")
				for _, m := range models {
					fmt.Printf("               - %s\n", m)
				}
			}
		}
	}

	return err
}
