package testutil

import (
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// StatFailFs wraps an afero.Fs and fails every Stat call with a permission error.
// This is a test helper and should not be used in production code.
type StatFailFs struct {
	afero.Fs
}

// Stat always returns fs.ErrPermission wrapped in an *os.PathError.
func (StatFailFs) Stat(name string) (os.FileInfo, error) {
	return nil, &os.PathError{Op: "stat", Path: name, Err: fs.ErrPermission}
}
