package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Entry pairs a source URL with its destination path
type Entry struct {
	URL  string `yaml:"url"`
	Path string `yaml:"path"`
}

// Manifest is a list of files to keep present on disk
type Manifest struct {
	Entries []Entry `yaml:"entries"`
}

// Load reads and validates the manifest at path.
// Relative entry paths are resolved against the manifest's directory.
func Load(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Entries {
		if !filepath.IsAbs(m.Entries[i].Path) {
			m.Entries[i].Path = filepath.Join(base, m.Entries[i].Path)
		}
	}

	// Relative and absolute spellings of one destination only collide once resolved
	if err := checkDuplicatePaths(m.Entries); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest document, rejecting unknown fields, empty entries and duplicate paths.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, err
	}

	for i, entry := range m.Entries {
		entry.URL = strings.TrimSpace(entry.URL)
		entry.Path = strings.TrimSpace(entry.Path)
		if entry.URL == "" {
			return nil, fmt.Errorf("entry %d: url is required", i)
		}
		if entry.Path == "" {
			return nil, fmt.Errorf("entry %d: path is required", i)
		}

		entry.Path = filepath.Clean(entry.Path)
		m.Entries[i] = entry
	}

	if err := checkDuplicatePaths(m.Entries); err != nil {
		return nil, err
	}
	return &m, nil
}

func checkDuplicatePaths(entries []Entry) error {
	seen := make(map[string]int, len(entries))
	for i, entry := range entries {
		if first, dup := seen[entry.Path]; dup {
			return fmt.Errorf("entry %d: path %q already used by entry %d", i, entry.Path, first)
		}
		seen[entry.Path] = i
	}
	return nil
}
