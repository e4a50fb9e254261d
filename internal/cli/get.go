package cli

import (
	"github.com/spf13/cobra"
)

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <url> <path>",
		Short: "Download url to path unless path already exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := a.fetcher.FetchIfAbsent(cmd.Context(), args[0], args[1])
			a.pushMetrics()

			if result.Failed() {
				return ErrFetchFailed
			}
			return nil
		},
	}
}
