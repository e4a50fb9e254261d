package models

import "time"

// FetchStatus is the outcome of a fetch-if-absent call
type FetchStatus string

const (
	FetchStatusDownloaded FetchStatus = "downloaded" // Content retrieved and written
	FetchStatusSkipped    FetchStatus = "skipped"    // Destination already present, no request made
	FetchStatusFailed     FetchStatus = "failed"     // Nothing written; the reason was logged
)

// FetchResult describes what a single fetch-if-absent call did
type FetchResult struct {
	URL      string
	Path     string
	Status   FetchStatus
	Size     int // Bytes written, 0 unless Status is downloaded
	Duration time.Duration
}

// Failed reports whether the fetch produced no file because of an error
func (r FetchResult) Failed() bool {
	return r.Status == FetchStatusFailed
}
