package cli

import (
	"github.com/spf13/cobra"

	"github.com/Belphemur/FetchOnce/internal/manifest"
)

func newSyncCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <manifest>",
		Short: "Fetch every missing entry of a manifest once",
		Long: `sync reads a YAML manifest of the form

  entries:
    - url: https://example.com/report.pdf
      path: reports/report.pdf

and fetches each entry in order. Relative paths are resolved against the manifest's directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(a.fs, args[0])
			if err != nil {
				return err
			}

			_, summary := manifest.Run(cmd.Context(), a.fetcher, m)
			a.pushMetrics()

			if summary.Failures() {
				return ErrFetchFailed
			}
			return nil
		},
	}
}
