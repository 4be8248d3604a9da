package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// AppDirName is the per-user data directory moodflow keeps its files in.
	AppDirName = "moodflow"
	// DBFileName is the name of the local SQLite journal.
	DBFileName = AppDirName + ".db"
)

// DataDir returns the platform data directory for moodflow under home.
func DataDir(home string) string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", AppDirName)
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", AppDirName)
	default:
		return filepath.Join(home, ".local", "share", AppDirName)
	}
}

// GetDefaultDBPathOnly returns the default journal path without touching the
// filesystem. Without a home directory the file lives in the working directory.
func GetDefaultDBPathOnly() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DBFileName
	}
	return filepath.Join(DataDir(home), DBFileName)
}

// ResolveAndEnsureDBPath turns providedPath (or the default when empty) into
// an absolute path and creates its parent directory.
func ResolveAndEnsureDBPath(providedPath string) (string, error) {
	path := providedPath
	if path == "" {
		path = GetDefaultDBPathOnly()
	}

	path, err := expandHome(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", path, err)
	}

	if err := ensureDir(filepath.Dir(abs)); err != nil {
		return "", err
	}
	return abs, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", path, err)
	}
	return filepath.Join(home, path[2:]), nil
}

func ensureDir(dir string) error {
	_, err := os.Stat(dir)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s' for database: %w", dir, err)
		}
		return nil
	default:
		return fmt.Errorf("failed to stat directory '%s' for database: %w", dir, err)
	}
}
