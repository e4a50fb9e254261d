package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/FetchOnce/internal/apperrors"
	"github.com/Belphemur/FetchOnce/internal/models"
	"github.com/Belphemur/FetchOnce/internal/reporting"
)

// Retrieve downloads rawURL into memory, logging any failure and returning nil instead of an error.
func (c *client) Retrieve(ctx context.Context, rawURL string) *models.Payload {
	payload, err := c.Download(ctx, rawURL)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			c.logger.Warn().Str("url", rawURL).Msg("Download cancelled")
			return nil
		}
		c.logger.Error().Err(err).Str("url", rawURL).Msg("Error downloading file")
		reporting.CaptureFailure(err, map[string]string{"url": rawURL})
		return nil
	}
	return payload
}

// Download fetches rawURL with a GET request and reads the body incrementally into a growable buffer.
func (c *client) Download(ctx context.Context, rawURL string) (*models.Payload, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().Str("url", rawURL).Msg("Requesting file")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewUnexpectedStatusError(rawURL, resp.StatusCode)
	}

	readTimeout := &apperrors.ErrReadTimeout{URL: rawURL, Timeout: c.timeout}
	body := newIdleTimeoutReader(resp.Body, c.timeout, func() { cancel(readTimeout) })
	content, err := c.readBody(rawURL, resp.ContentLength, body)
	body.stop()
	if err != nil {
		if errors.Is(context.Cause(reqCtx), readTimeout) {
			return nil, readTimeout
		}
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.logger.Debug().
		Str("url", rawURL).
		Str("contentType", contentType).
		Int("size", content.Len()).
		Msg("File downloaded into memory")

	return &models.Payload{
		URL:         rawURL,
		Content:     content,
		ContentType: contentType,
		FetchedAt:   time.Now(),
	}, nil
}

func (c *client) readBody(rawURL string, contentLength int64, body io.Reader) (*bytes.Buffer, error) {
	content := new(bytes.Buffer)
	if contentLength > 0 && (c.maxBodySize <= 0 || contentLength <= c.maxBodySize) {
		content.Grow(int(contentLength))
	}

	if c.maxBodySize <= 0 {
		if _, err := content.ReadFrom(body); err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return content, nil
	}

	// Read one byte past the limit so an exactly-sized body is still accepted
	n, err := content.ReadFrom(io.LimitReader(body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if n > c.maxBodySize {
		return nil, &apperrors.ErrBodyTooLarge{URL: rawURL, Limit: c.maxBodySize}
	}
	return content, nil
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &apperrors.ErrInvalidURL{URL: rawURL, Reason: err.Error()}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &apperrors.ErrInvalidURL{URL: rawURL, Reason: fmt.Sprintf("unsupported scheme %q", parsed.Scheme)}
	}
	if parsed.Host == "" {
		return &apperrors.ErrInvalidURL{URL: rawURL, Reason: "missing host"}
	}
	return nil
}

// idleTimeoutReader calls onIdle when no bytes arrive for timeout.
// The timer restarts after every read that returns data.
type idleTimeoutReader struct {
	r       io.Reader
	timeout time.Duration
	timer   *time.Timer
}

func newIdleTimeoutReader(r io.Reader, timeout time.Duration, onIdle func()) *idleTimeoutReader {
	return &idleTimeoutReader{
		r:       r,
		timeout: timeout,
		timer:   time.AfterFunc(timeout, onIdle),
	}
}

func (ir *idleTimeoutReader) Read(p []byte) (int, error) {
	n, err := ir.r.Read(p)
	if n > 0 {
		ir.timer.Reset(ir.timeout)
	}
	return n, err
}

func (ir *idleTimeoutReader) stop() {
	ir.timer.Stop()
}
