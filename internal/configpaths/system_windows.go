//go:build windows

package configpaths

import (
	"errors"
	"os"
	"path/filepath"
)

// SystemConfigDir returns the machine-wide configuration directory.
func SystemConfigDir() (string, error) {
	base := os.Getenv("PROGRAMDATA")
	if base == "" {
		return "", errors.New("PROGRAMDATA not set")
	}
	return filepath.Join(base, "govigem"), nil
}
