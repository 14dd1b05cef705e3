// Package config defines the CLI structure and configuration for govigem.
package config

import (
	"github.com/openvpad/govigem/internal/cmd"
)

type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"GOVIGEM_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to console)" env:"GOVIGEM_LOG_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	ConfigFile string `name:"config" help:"Explicit configuration file" env:"GOVIGEM_CONFIG"`

	Version cmd.Version `cmd:"" help:"Print the bus driver protocol version"`
	Status  cmd.Status  `cmd:"" help:"Check driver installation and bus reachability"`
	Plug    cmd.Plug    `cmd:"" help:"Plug in a virtual controller"`
	Monitor cmd.Monitor `cmd:"" help:"Plug in a virtual controller and print its feedback events"`
	Config  cmd.Config  `cmd:"" help:"Manage configuration files"`
}
