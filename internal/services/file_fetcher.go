package services

import (
	"context"

	"github.com/Belphemur/FetchOnce/internal/models"
)

// FileFetcher downloads a URL to a local path unless the path is already occupied
type FileFetcher interface {
	// FetchIfAbsent never returns an error: failures are logged and reported
	// through the result's Status.
	FetchIfAbsent(ctx context.Context, url, path string) models.FetchResult
}
