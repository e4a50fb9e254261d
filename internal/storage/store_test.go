package storage

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/Belphemur/FetchOnce/internal/testutil"
)

func TestStore_Exists(t *testing.T) {
	memFs := afero.NewMemMapFs()
	_ = afero.WriteFile(memFs, "/data/present.pdf", []byte("pdf"), 0o644)
	_ = memFs.MkdirAll("/data/folder", 0o755)

	s := NewStore(memFs)

	tests := []struct {
		path     string
		expected bool
	}{
		{"/data/present.pdf", true},
		{"/data/folder", true},
		{"/data/absent.pdf", false},
		{"/nowhere/absent.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			exists, err := s.Exists(tt.path)
			if err != nil {
				t.Fatalf("Exists returned error: %v", err)
			}
			if exists != tt.expected {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, exists, tt.expected)
			}
		})
	}
}

func TestStore_Exists_StatError(t *testing.T) {
	s := NewStore(testutil.StatFailFs{Fs: afero.NewMemMapFs()})

	exists, err := s.Exists("/data/file.pdf")
	if err == nil {
		t.Fatal("Expected stat error to be returned")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Expected wrapped permission error, got %v", err)
	}
	if exists {
		t.Error("Expected exists=false on stat error")
	}
}

func TestStore_WriteIfAbsent_Writes(t *testing.T) {
	memFs := afero.NewMemMapFs()
	s := NewStore(memFs)
	content := []byte("%PDF-1.7 body")

	written, err := s.WriteIfAbsent("/downloads/nested/doc.pdf", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("WriteIfAbsent failed: %v", err)
	}
	if !written {
		t.Fatal("Expected file to be written")
	}

	got, err := afero.ReadFile(memFs, "/downloads/nested/doc.pdf")
	if err != nil {
		t.Fatalf("Failed to read back file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Expected %q, got %q", content, got)
	}

	info, err := memFs.Stat("/downloads/nested/doc.pdf")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != filePerm {
		t.Errorf("Expected mode %v, got %v", filePerm, info.Mode().Perm())
	}
}

func TestStore_WriteIfAbsent_ExistingFileUntouched(t *testing.T) {
	memFs := afero.NewMemMapFs()
	_ = afero.WriteFile(memFs, "/downloads/doc.pdf", []byte("original"), 0o600)
	s := NewStore(memFs)

	written, err := s.WriteIfAbsent("/downloads/doc.pdf", strings.NewReader("replacement"))
	if err != nil {
		t.Fatalf("Expected no error for existing file, got: %v", err)
	}
	if written {
		t.Error("Expected written=false for existing file")
	}

	got, _ := afero.ReadFile(memFs, "/downloads/doc.pdf")
	if string(got) != "original" {
		t.Errorf("Expected existing file to stay 'original', got %q", got)
	}
}

func TestStore_WriteIfAbsent_ExistingDirectory(t *testing.T) {
	memFs := afero.NewMemMapFs()
	_ = memFs.MkdirAll("/downloads/doc.pdf", 0o755)
	s := NewStore(memFs)

	written, err := s.WriteIfAbsent("/downloads/doc.pdf", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Expected no error for existing directory, got: %v", err)
	}
	if written {
		t.Error("Expected written=false when a directory occupies the path")
	}
}

func TestStore_WriteIfAbsent_EmptyContent(t *testing.T) {
	memFs := afero.NewMemMapFs()
	s := NewStore(memFs)

	written, err := s.WriteIfAbsent("empty.bin", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("WriteIfAbsent failed: %v", err)
	}
	if !written {
		t.Fatal("Expected empty file to be written")
	}
	if exists, _ := afero.Exists(memFs, "empty.bin"); !exists {
		t.Error("Expected empty file to exist")
	}
}

func TestStore_WriteIfAbsent_ReadOnlyFs(t *testing.T) {
	s := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	written, err := s.WriteIfAbsent("/downloads/doc.pdf", strings.NewReader("data"))
	if err == nil {
		t.Fatal("Expected error on read-only filesystem")
	}
	if written {
		t.Error("Expected written=false on failure")
	}
}

func TestStore_WriteIfAbsent_StatError(t *testing.T) {
	memFs := afero.NewMemMapFs()
	s := NewStore(testutil.StatFailFs{Fs: memFs})

	if _, err := s.WriteIfAbsent("/downloads/doc.pdf", strings.NewReader("data")); err == nil {
		t.Fatal("Expected stat error to abort the write")
	}
	if exists, _ := afero.Exists(memFs, "/downloads/doc.pdf"); exists {
		t.Error("Expected nothing to be written when the presence check fails")
	}
}

func TestStore_OsFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "file.txt")
	s := NewStore(nil)

	written, err := s.WriteIfAbsent(path, strings.NewReader("on disk"))
	if err != nil || !written {
		t.Fatalf("Expected write on OS filesystem, got written=%v err=%v", written, err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "on disk" {
		t.Errorf("Expected 'on disk', got %q", got)
	}

	written, err = s.WriteIfAbsent(path, strings.NewReader("second"))
	if err != nil || written {
		t.Fatalf("Expected second write to be skipped, got written=%v err=%v", written, err)
	}
}
