package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml"

	"github.com/openvpad/govigem/internal/configpaths"
)

// Config groups configuration management subcommands.
type Config struct {
	Init ConfigInit `cmd:"" help:"Write a default configuration file"`
}

// ConfigInit writes a commented default configuration to the user config
// directory, or to an explicit path.
type ConfigInit struct {
	Path  string `help:"Destination file (default: user config dir)" type:"path"`
	Force bool   `help:"Overwrite an existing file"`
}

type fileConfig struct {
	Log struct {
		Level string `toml:"level" comment:"trace, debug, info, warn or error"`
		File  string `toml:"file" comment:"log file path; empty logs to console"`
	} `toml:"log"`
	Device string `toml:"device" comment:"bus device node path; empty discovers"`
}

func (c *ConfigInit) Run(logger *slog.Logger) error {
	path := c.Path
	if path == "" {
		dir, err := configpaths.DefaultConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.toml")
	}

	if !c.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	cfg := fileConfig{}
	cfg.Log.Level = "info"
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Info("wrote default configuration", "path", path)
	return nil
}
