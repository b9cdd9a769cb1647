package gen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chRyNaN/glimpse/internal/common"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes f into f.Dir, creating the directory if needed. The
// content goes to a temporary file that is renamed into place, so a failed
// write never leaves a partial file behind.
func WriteFile(f *GeneratedFile) error {
	if err := os.MkdirAll(f.Dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, "."+f.Filename+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", f.Filename, err)
	}

	tmpName := tmp.Name()

	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(f.Content); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("writing file %s: %w", f.Filename, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing file %s: %w", f.Filename, err)
	}

	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", f.Filename, err)
	}

	if err := os.Rename(tmpName, filepath.Join(f.Dir, f.Filename)); err != nil {
		return fmt.Errorf("writing file %s: %w", f.Filename, err)
	}

	tmpName = ""

	return nil
}

// RemoveStale deletes the binding left at dir/filename by an earlier run.
// Files without the generated header are never touched. It reports whether
// a file was removed.
func RemoveStale(dir, filename string) (bool, error) {
	p := filepath.Join(dir, filename)

	f, err := os.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("opening stale binding %s: %w", filename, err)
	}

	head := make([]byte, len(common.GeneratedHeader))
	_, err = io.ReadFull(f, head)
	_ = f.Close()

	if err != nil || string(head) != common.GeneratedHeader {
		return false, nil
	}

	if err := os.Remove(p); err != nil {
		return false, fmt.Errorf("removing stale binding %s: %w", filename, err)
	}

	return true, nil
}
