package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding lists the content codings decodingTransport can undo.
const acceptEncoding = "gzip, br, zstd"

// bodyDecoder wraps a compressed body in a reader yielding the decoded bytes.
type bodyDecoder func(body io.Reader) (io.ReadCloser, error)

var bodyDecoders = map[string]bodyDecoder{
	"gzip": func(body io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(body)
	},
	"br": func(body io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(body)), nil
	},
	"zstd": func(body io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// decodingTransport advertises gzip, brotli and zstd support and hands back
// response bodies already decoded, so the buffered bytes are the resource itself.
type decodingTransport struct {
	base http.RoundTripper
}

func newDecodingTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &decodingTransport{base: base}
}

func (t *decodingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// HEAD, 204 and 304 responses carry nothing to decode
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	decode, ok := bodyDecoders[outermostEncoding(resp.Header.Get("Content-Encoding"))]
	if !ok {
		return resp, nil
	}

	decoded, err := decode(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Body = &decodedBody{ReadCloser: decoded, raw: resp.Body}
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

// decodedBody closes the decoder and then the underlying connection body.
type decodedBody struct {
	io.ReadCloser
	raw io.ReadCloser
}

func (b *decodedBody) Close() error {
	decoderErr := b.ReadCloser.Close()
	if err := b.raw.Close(); err != nil {
		return err
	}
	return decoderErr
}

// outermostEncoding returns the last coding of a Content-Encoding list, which is
// the one applied last and therefore the first to undo. Result is lowercased.
func outermostEncoding(header string) string {
	if i := strings.LastIndex(header, ","); i >= 0 {
		header = header[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(header))
}
