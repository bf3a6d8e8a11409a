// Package appdir locates the per-user directory of the dstring tools.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// EnvOverride names the variable that replaces the default location.
const EnvOverride = "DSTR_HOME"

var (
	once     sync.Once
	dirCache string
	dirErr   error
)

// AppDir returns $DSTR_HOME, or ~/.dstring-go when it is unset. The result
// is computed once.
func AppDir() (string, error) {
	once.Do(func() {
		if d := os.Getenv(EnvOverride); d != "" {
			dirCache = d
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			dirErr = fmt.Errorf("appdir: %w", err)
			return
		}
		dirCache = filepath.Join(home, ".dstring-go")
	})
	return dirCache, dirErr
}

// Ensure returns AppDir after creating it if needed.
func Ensure() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("appdir: create %s: %w", dir, err)
	}
	return dir, nil
}
