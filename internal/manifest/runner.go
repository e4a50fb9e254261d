package manifest

import (
	"context"
	"time"

	"github.com/Belphemur/FetchOnce/internal/config"
	"github.com/Belphemur/FetchOnce/internal/metrics"
	"github.com/Belphemur/FetchOnce/internal/models"
	"github.com/Belphemur/FetchOnce/internal/services"
)

// Summary counts the outcomes of one pass over a manifest
type Summary struct {
	Downloaded int
	Skipped    int
	Failed     int
	Remaining  int // Entries not attempted because the context was cancelled
}

// Failures reports whether any entry failed
func (s Summary) Failures() bool {
	return s.Failed > 0
}

// Run processes the entries one after another. It stops before the next entry once ctx is done.
func Run(ctx context.Context, fetcher services.FileFetcher, m *Manifest) ([]models.FetchResult, Summary) {
	logger := config.GetLogger()
	results := make([]models.FetchResult, 0, len(m.Entries))
	var summary Summary

	for i, entry := range m.Entries {
		if ctx.Err() != nil {
			summary.Remaining = len(m.Entries) - i
			logger.Warn().Int("remaining", summary.Remaining).Msg("Manifest pass interrupted")
			break
		}

		result := fetcher.FetchIfAbsent(ctx, entry.URL, entry.Path)
		results = append(results, result)

		switch result.Status {
		case models.FetchStatusDownloaded:
			summary.Downloaded++
		case models.FetchStatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}

	metrics.LastPassTimestamp.Set(float64(time.Now().Unix()))
	logger.Info().
		Int("downloaded", summary.Downloaded).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("Manifest pass completed")

	return results, summary
}
