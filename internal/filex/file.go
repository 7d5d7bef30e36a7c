// Package filex prepares the on-disk locations the vault writes to.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirPerm keeps vault directories private to the owner.
const DirPerm os.FileMode = 0o700

// EnsureDir creates dir (and parents) if needed and returns its absolute
// path. Relative paths are resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, DirPerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// EnsureParentDir makes sure the directory holding file exists. SQLite DSNs
// that are not plain paths (":memory:", "file:...") are returned unchanged.
func EnsureParentDir(file string) (string, error) {
	if file == "" || file == ":memory:" || strings.HasPrefix(file, "file:") {
		return file, nil
	}

	if _, err := EnsureDir(filepath.Dir(file)); err != nil {
		return "", err
	}
	return file, nil
}
