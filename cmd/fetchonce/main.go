package main

import (
	"errors"
	"os"

	"github.com/Belphemur/FetchOnce/internal/cli"
	"github.com/Belphemur/FetchOnce/internal/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	logger := config.GetLogger()

	if err := cli.Execute(version); err != nil {
		if !errors.Is(err, cli.ErrFetchFailed) {
			logger.Error().Err(err).Msg("Command failed")
		}
		os.Exit(1)
	}
}
