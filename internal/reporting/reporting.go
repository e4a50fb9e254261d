// Package reporting forwards absorbed failures to Sentry.
//
// Failures in this program never reach the caller as errors; they are logged
// and, when a DSN is configured, captured here so they stay visible.
package reporting

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/FetchOnce/internal/config"
)

// Init configures the Sentry client. It is a no-op when dsn is empty.
func Init(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return err
	}

	logger := config.GetLogger()
	logger.Info().Str("environment", environment).Msg("Sentry error reporting enabled")
	return nil
}

// CaptureFailure reports err with the given tags. Without an initialised client it does nothing.
func CaptureFailure(err error, tags map[string]string) {
	if err == nil {
		return
	}
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}

// Flush waits for buffered events to be delivered.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
