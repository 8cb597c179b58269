// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "intcode.toml")
	require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
	return p
}

func TestDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "> ", c.Prompt)
	assert.Zero(t, c.MaxTicks)
	assert.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	c, err := Load(writeFile(t, `
log_level = "trace"
debug_modules = "vm"
max_ticks = 100000
max_memory = 4096
ascii = true
input = [1, -2, 3]
history_file = "/tmp/h"
`))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		LogLevel:     "trace",
		DebugModules: "vm",
		MaxTicks:     100000,
		MaxMemory:    4096,
		ASCII:        true,
		Input:        []int64{1, -2, 3},
		Prompt:       "> ",
		HistoryFile:  "/tmp/h",
	}, c)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "cannot read")

	for _, contents := range []string{
		`log_level = `,
		`log_level = "shouty"`,
		`max_memory = -1`,
		`max_tick = 5`,
		`input = ["a"]`,
	} {
		_, err := Load(writeFile(t, contents))
		assert.Error(t, err, "contents %q", contents)
	}
}
