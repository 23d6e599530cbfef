package cmd

import (
	"github.com/nikogura/resume-agent/pkg/config"
	"github.com/nikogura/resume-agent/pkg/server"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listenFlag string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the generation API server",
	Long: `Run an HTTP server exposing resume generation at POST /api/generate.

Each request carries its own job description, experience, and template, and
may select LLM backends per agent role. The server configuration provides
the defaults for anything a request leaves out.

Example:
  resume-agent serve
  resume-agent serve --listen :9000`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenFlag, "listen", "", "Bind address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	if listenFlag != "" {
		cfg.Listen = listenFlag
	}

	logger := logrus.New()
	if getVerbose() {
		logger.SetLevel(logrus.DebugLevel)
	}

	err = server.New(cfg, logger).ListenAndServe()
	if err != nil {
		err = errors.Wrap(err, "server failed")
		return err
	}

	return err
}
