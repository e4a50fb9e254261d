package client

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/Belphemur/FetchOnce/internal/config"
	"github.com/Belphemur/FetchOnce/internal/models"
)

// Client retrieves remote resources into memory
type Client interface {
	// Download fetches rawURL and buffers the whole body.
	// It returns an error for invalid URLs, transport failures, non-2xx statuses
	// and bodies over the configured size limit.
	Download(ctx context.Context, rawURL string) (*models.Payload, error)

	// Retrieve is the best-effort variant of Download: failures are logged
	// and reported as a nil payload, never as an error.
	Retrieve(ctx context.Context, rawURL string) *models.Payload
}

// client implements the Client interface
type client struct {
	httpClient  *http.Client
	userAgent   string
	timeout     time.Duration
	maxBodySize int64
	logger      zerolog.Logger
}

// NewClient creates a new client instance with proxy configuration if provided.
// The configured timeout bounds connecting, the TLS handshake, waiting for headers
// and every gap between body reads; it never bounds the whole transfer.
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()
	timeout := cfg.Timeout()

	// Clone DefaultTransport to keep its connection pooling and HTTP/2 support
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	baseTransport.DialContext = (&net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	baseTransport.TLSHandshakeTimeout = timeout
	baseTransport.ResponseHeaderTimeout = timeout

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	return &client{
		httpClient: &http.Client{
			Transport: newDecodingTransport(baseTransport),
		},
		userAgent:   userAgent,
		timeout:     timeout,
		maxBodySize: cfg.MaxBodySize,
		logger:      logger,
	}
}
