package models

import (
	"bytes"
	"time"
)

// Payload is the in-memory result of a successful retrieval
type Payload struct {
	URL         string        // URL the content was requested from
	Content     *bytes.Buffer // Fully buffered response body
	ContentType string        // MIME type reported by the server
	FetchedAt   time.Time     // When the body finished reading
}

// Size returns the number of buffered bytes
func (p *Payload) Size() int {
	if p == nil || p.Content == nil {
		return 0
	}
	return p.Content.Len()
}
