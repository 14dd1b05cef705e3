// Package configpaths resolves where configuration files are looked up.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "govigem"), nil
}

// ConfigCandidatePaths returns the configuration file candidates grouped by
// format, lowest priority first. An explicit user path is routed by its
// extension and takes highest priority.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	var dirs []string
	if sys, err := SystemConfigDir(); err == nil {
		dirs = append(dirs, sys)
	}
	if user, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, user)
	}
	dirs = append(dirs, ".")

	for _, dir := range dirs {
		name := "config"
		if dir == "." {
			name = "govigem"
		}
		jsonPaths = append(jsonPaths, filepath.Join(dir, name+".json"))
		yamlPaths = append(yamlPaths, filepath.Join(dir, name+".yaml"), filepath.Join(dir, name+".yml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, name+".toml"))
	}

	if userPath != "" {
		switch strings.ToLower(filepath.Ext(userPath)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}
