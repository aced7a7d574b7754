package textio

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// WriteFile renders into a temp file next to path and renames it into place.
// The destination is fully replaced; a failed render leaves it untouched.
func WriteFile(path string, render func(w io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return &OpError{Op: OpCreate, Path: path, Err: err}
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := render(writer); err != nil {
		return &OpError{Op: OpWrite, Path: path, Err: err}
	}
	if err := writer.Flush(); err != nil {
		return &OpError{Op: OpWrite, Path: path, Err: err}
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		return &OpError{Op: OpCreate, Path: path, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &OpError{Op: OpWrite, Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &OpError{Op: OpCreate, Path: path, Err: err}
	}
	return nil
}
