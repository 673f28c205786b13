package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// homeDirName holds the per-user config file, scores database and SSH host key.
const homeDirName = ".gotris"

// UserFile returns the path of name inside ~/.gotris.
func UserFile(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return filepath.Join(home, homeDirName, name), nil
}

// ExpandHome resolves a leading "~" or "~/" against the home directory.
// Anything else, "~user" forms included, comes back unchanged.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && !os.IsPathSeparator(path[1]) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}
