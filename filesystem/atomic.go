package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data next to path and renames it into place, so readers never observe
// a half-written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	fs := API()

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, data, perm); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}

	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}

	return nil
}
