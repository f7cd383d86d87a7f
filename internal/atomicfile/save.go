// Package atomicfile writes files through a temp-and-rename so readers
// never observe a partial write.
package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save writes data to path atomically: the bytes land in a temp file in
// the target directory, are synced, and replace path with a rename.
// Missing parent directories are created. A perm of 0 defaults to 0600.
func Save(path string, data []byte, perm os.FileMode) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("save: empty path")
	}
	if perm == 0 {
		perm = 0o600
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	// Once the rename lands the temp name is gone and this is a no-op.
	defer os.Remove(tmp.Name())

	if err := writeAll(tmp, data, perm); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := replace(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// writeAll applies the final permissions to the open temp file, writes
// the payload and syncs before closing. The mode travels with the file
// through the rename.
func writeAll(f *os.File, data []byte, perm os.FileMode) error {
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// replace renames tmp over path. On platforms where rename cannot take
// the place of an existing file, the target is removed and the rename
// retried once.
func replace(tmp, path string) error {
	if err := os.Rename(tmp, path); err == nil {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmp, path)
}
