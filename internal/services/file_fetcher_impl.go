package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Belphemur/FetchOnce/internal/client"
	"github.com/Belphemur/FetchOnce/internal/config"
	"github.com/Belphemur/FetchOnce/internal/metrics"
	"github.com/Belphemur/FetchOnce/internal/models"
	"github.com/Belphemur/FetchOnce/internal/reporting"
	"github.com/Belphemur/FetchOnce/internal/storage"
)

// DefaultFileFetcher implements FileFetcher on top of a retrieval client and a store
type DefaultFileFetcher struct {
	client client.Client
	store  storage.Store
	logger zerolog.Logger
}

// NewFileFetcher creates a new file fetcher
func NewFileFetcher(c client.Client, s storage.Store) FileFetcher {
	return &DefaultFileFetcher{
		client: c,
		store:  s,
		logger: config.GetLogger(),
	}
}

// FetchIfAbsent checks the destination first, then downloads and writes only when nothing is there
func (f *DefaultFileFetcher) FetchIfAbsent(ctx context.Context, url, path string) models.FetchResult {
	start := time.Now()
	fetchID := uuid.NewString()
	logger := f.logger.With().
		Str("fetch_id", fetchID).
		Str("url", url).
		Str("path", path).
		Logger()

	result := models.FetchResult{URL: url, Path: path}
	finish := func(status models.FetchStatus, size int) models.FetchResult {
		result.Status = status
		result.Size = size
		result.Duration = time.Since(start)
		metrics.ObserveFetch(string(status), size, result.Duration)
		return result
	}

	exists, err := f.store.Exists(path)
	if err != nil {
		f.fail(logger, err, fetchID, url, path, "Could not check destination")
		return finish(models.FetchStatusFailed, 0)
	}
	if exists {
		logger.Info().Msg("File already downloaded")
		return finish(models.FetchStatusSkipped, 0)
	}

	logger.Info().Msg("Downloading file")
	payload := f.client.Retrieve(ctx, url)
	if payload == nil {
		// Retrieve has already logged and reported the reason
		return finish(models.FetchStatusFailed, 0)
	}

	size := payload.Size()
	written, err := f.store.WriteIfAbsent(path, payload.Content)
	if err != nil {
		f.fail(logger, err, fetchID, url, path, "Error writing file")
		return finish(models.FetchStatusFailed, 0)
	}
	if !written {
		// Something appeared at path while the body was downloading
		logger.Info().Msg("File already downloaded")
		return finish(models.FetchStatusSkipped, 0)
	}

	logger.Info().
		Int("size", size).
		Str("contentType", payload.ContentType).
		Msg("File downloaded")
	return finish(models.FetchStatusDownloaded, size)
}

func (f *DefaultFileFetcher) fail(logger zerolog.Logger, err error, fetchID, url, path, msg string) {
	logger.Error().Err(err).Msg(msg)
	reporting.CaptureFailure(err, map[string]string{
		"fetch_id": fetchID,
		"url":      url,
		"path":     path,
	})
}
