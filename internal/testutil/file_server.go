package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// FileServer is an httptest server serving fixed files by path and counting every request.
// This is a test helper and should not be used in production code.
type FileServer struct {
	*httptest.Server

	mu    sync.RWMutex
	files map[string]File
	hits  atomic.Int32
}

// File is a fixture served by FileServer. Status defaults to 200.
type File struct {
	Body        []byte
	ContentType string
	Status      int
}

// NewFileServer starts a FileServer that is closed when the test ends.
// Unknown paths answer 404.
func NewFileServer(t *testing.T, files map[string]File) *FileServer {
	t.Helper()
	fs := &FileServer{files: make(map[string]File, len(files))}
	for path, f := range files {
		fs.files[path] = f
	}

	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *FileServer) serve(w http.ResponseWriter, r *http.Request) {
	fs.hits.Add(1)

	fs.mu.RLock()
	f, ok := fs.files[r.URL.Path]
	fs.mu.RUnlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if f.ContentType != "" {
		w.Header().Set("Content-Type", f.ContentType)
	}
	status := f.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(f.Body)
}

// URLFor returns the absolute URL of path on this server.
func (fs *FileServer) URLFor(path string) string {
	return fs.URL + path
}

// Set adds or replaces a fixture.
func (fs *FileServer) Set(path string, f File) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = f
}

// Hits returns the number of requests served so far, including 404s.
func (fs *FileServer) Hits() int {
	return int(fs.hits.Load())
}

// UnreachableURL returns a URL on a port where nothing listens anymore.
func UnreachableURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	return url
}
