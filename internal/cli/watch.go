package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Belphemur/FetchOnce/internal/config"
	"github.com/Belphemur/FetchOnce/internal/manifest"
	"github.com/Belphemur/FetchOnce/internal/metrics"
)

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <manifest>",
		Short: "Fetch missing manifest entries now and again every watch.interval",
		Long: `watch runs the same pass as sync, then repeats it every watch.interval until
interrupted. Entries that failed are simply tried again on the next pass.
The manifest is re-read on every pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := config.GetLogger()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// Handle graceful shutdown
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)
			go func() {
				select {
				case sig := <-sigChan:
					logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
					cancel()
				case <-ctx.Done():
				}
			}()

			if a.cfg.Metrics.Enabled {
				metricsServer := metrics.NewHTTPServer(a.cfg.Metrics.Address, a.cfg.Metrics.Port)
				go func() {
					logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
					if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error().Err(err).Msg("Failed to serve metrics")
					}
				}()
				defer func() {
					if err := metricsServer.Shutdown(context.Background()); err != nil {
						logger.Error().Err(err).Msg("Failed to shutdown metrics server")
					}
				}()
			}

			interval := a.cfg.WatchInterval()
			logger.Info().Str("manifest", args[0]).Dur("interval", interval).Msg("Watching manifest")

			watchLoop(ctx, interval, func(ctx context.Context) {
				m, err := manifest.Load(a.fs, args[0])
				if err != nil {
					logger.Error().Err(err).Str("manifest", args[0]).Msg("Failed to load manifest, retrying next pass")
					return
				}
				manifest.Run(ctx, a.fetcher, m)
			})

			logger.Info().Msg("Watch stopped")
			return nil
		},
	}
}

// watchLoop calls pass immediately and then on every tick until ctx is done.
func watchLoop(ctx context.Context, interval time.Duration, pass func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		pass(ctx)
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
