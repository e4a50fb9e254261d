package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/Belphemur/FetchOnce/internal/config"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Store persists downloaded content, never replacing something already on disk.
type Store interface {
	// Exists reports whether any filesystem entry is present at path.
	Exists(path string) (bool, error)

	// WriteIfAbsent writes content to path unless an entry already exists there.
	// written is false when the path was already present; that case is not an error.
	WriteIfAbsent(path string, content io.Reader) (written bool, err error)
}

type store struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// NewStore creates a Store backed by the given filesystem. A nil fs means the OS filesystem.
func NewStore(fsys afero.Fs) Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &store{
		fs:     fsys,
		logger: config.GetLogger(),
	}
}

func (s *store) Exists(path string) (bool, error) {
	_, err := s.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}

func (s *store) WriteIfAbsent(path string, content io.Reader) (bool, error) {
	exists, err := s.Exists(path)
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.Debug().Str("path", path).Msg("Destination already present, leaving it untouched")
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := io.Copy(file, content)
	if err != nil {
		_ = file.Close()
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("failed to close %s: %w", path, err)
	}

	s.logger.Debug().Str("path", path).Int64("size", n).Msg("File written")
	return true, nil
}
