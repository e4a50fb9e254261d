package cli

import (
	"errors"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Belphemur/FetchOnce/internal/client"
	"github.com/Belphemur/FetchOnce/internal/config"
	"github.com/Belphemur/FetchOnce/internal/metrics"
	"github.com/Belphemur/FetchOnce/internal/reporting"
	"github.com/Belphemur/FetchOnce/internal/services"
	"github.com/Belphemur/FetchOnce/internal/storage"
)

// ErrFetchFailed is returned by a command when at least one fetch did not produce its file.
var ErrFetchFailed = errors.New("one or more downloads failed")

// app carries what every subcommand needs
type app struct {
	cfg     *config.Config
	fs      afero.Fs
	fetcher services.FileFetcher
}

func newApp(cfg *config.Config, fsys afero.Fs) *app {
	return &app{
		cfg:     cfg,
		fs:      fsys,
		fetcher: services.NewFileFetcher(client.NewClient(cfg), storage.NewStore(fsys)),
	}
}

// NewRootCommand builds the fetchonce command tree around cfg, writing through fsys.
func NewRootCommand(cfg *config.Config, fsys afero.Fs) *cobra.Command {
	a := newApp(cfg, fsys)

	root := &cobra.Command{
		Use:   "fetchonce",
		Short: "Download files over HTTP(S) only when they are not already on disk",
		Long: `fetchonce downloads a URL into memory and writes it to a destination path,
unless something already exists at that path. Failures are logged and never retried.

Settings come from config.yaml (in . or ./config) and APP_-prefixed environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGetCommand(a))
	root.AddCommand(newSyncCommand(a))
	root.AddCommand(newWatchCommand(a))
	return root
}

// Execute runs the CLI with the global configuration and the OS filesystem.
func Execute(version string) error {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	if err := reporting.Init(cfg.Sentry.DSN, cfg.Sentry.Environment, version); err != nil {
		logger.Warn().Err(err).Msg("Failed to initialise Sentry, continuing without error reporting")
	}
	defer reporting.Flush(2 * time.Second)

	root := NewRootCommand(cfg, afero.NewOsFs())
	root.Version = version
	return root.Execute()
}

// pushMetrics sends the run's metrics to the Pushgateway when one is configured.
func (a *app) pushMetrics() {
	if a.cfg.Metrics.PushGatewayURL == "" {
		return
	}
	logger := config.GetLogger()
	if err := metrics.Push(a.cfg.Metrics.PushGatewayURL, a.cfg.Metrics.Job); err != nil {
		logger.Error().Err(err).Str("gateway", a.cfg.Metrics.PushGatewayURL).Msg("Failed to push metrics")
		return
	}
	logger.Debug().Str("gateway", a.cfg.Metrics.PushGatewayURL).Msg("Metrics pushed")
}
