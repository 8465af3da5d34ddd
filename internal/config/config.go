// Package config defines the top-level CLI grammar.
package config

import "github.com/maus-dev/maus/internal/cmd"

// CLI is the root kong command structure.
type CLI struct {
	Config string `help:"Path to a config file (JSON/YAML/TOML)" env:"MAUS_CONFIG"`

	Log struct {
		Level     string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"MAUS_LOG_LEVEL"`
		File      string `help:"Also write logs to this file" env:"MAUS_LOG_FILE"`
		TraceFile string `help:"Write report/frame hex dumps to this file" env:"MAUS_LOG_TRACE_FILE"`
	} `embed:"" prefix:"log."`

	Bridge    cmd.Bridge        `cmd:"" default:"withargs" help:"Bridge a USB mouse to the strobe-clocked nibble port"`
	Devices   cmd.Devices       `cmd:"" help:"List candidate input devices"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
