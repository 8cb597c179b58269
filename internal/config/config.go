// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package config loads settings for the intcode command from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/derat/intcode/internal/log"
)

// Config holds the runner's settings. Command-line flags override it.
type Config struct {
	LogLevel     string `toml:"log_level"`
	DebugModules string `toml:"debug_modules"` // comma-separated, e.g. "vm"

	// MaxTicks stops a run after this many instructions. 0 means no limit.
	MaxTicks uint64 `toml:"max_ticks"`
	// MaxMemory caps the VM's memory in atoms. 0 means no limit.
	MaxMemory int `toml:"max_memory"`

	ASCII bool    `toml:"ascii"` // exchange text instead of numbers
	Input []int64 `toml:"input"` // fed to the program before it starts

	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	c := &Config{}
	c.fill()
	return c
}

func (c *Config) fill() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Prompt == "" {
		c.Prompt = "> "
	}
	if c.HistoryFile == "" {
		c.HistoryFile = filepath.Join(os.TempDir(), "intcode_history.txt")
	}
}

// Load parses the TOML file at path. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("unknown setting %q in %s", keys[0].String(), path)
	}
	c.fill()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Validate checks values that TOML's types can't.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxMemory < 0 {
		return fmt.Errorf("max_memory must not be negative (got %d)", c.MaxMemory)
	}
	return nil
}
