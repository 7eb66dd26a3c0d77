package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/outputs
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// Resolve expands name and, when it is relative, joins it onto dir.
// An empty dir leaves relative names relative to the working directory.
func Resolve(dir, name string) (string, error) {
	p, err := ExpandHome(name)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	base, err := ExpandHome(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, p), nil
}
