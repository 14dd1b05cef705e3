//go:build !windows

package configpaths

import "path/filepath"

// SystemConfigDir returns the machine-wide configuration directory.
func SystemConfigDir() (string, error) {
	return filepath.Join(string(filepath.Separator), "etc", "govigem"), nil
}
