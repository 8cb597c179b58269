// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Command intcode runs and inspects Intcode programs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/derat/intcode/intcode"
	"github.com/derat/intcode/internal/config"
	"github.com/derat/intcode/internal/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds state shared by all subcommands.
type app struct {
	configPath   string
	logLevel     string
	debugModules string
	cfg          *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "intcode",
		Short: "Run and inspect Intcode programs",
		Long: `intcode executes programs for the Intcode virtual machine.

Programs are read as comma-separated decimal integers, e.g. "1,0,0,3,99".
A program path of "-" reads the program from stdin.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML settings file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.debugModules, "debug-modules", "", `comma-separated modules to trace, e.g. "vm"`)

	root.AddCommand(newRunCmd(a), newResumeCmd(a), newDumpCmd(), newDisasmCmd())
	return root
}

// init loads settings and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("debug-modules") {
		cfg.DebugModules = a.debugModules
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := log.InitLogger(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		return err
	}
	log.EnableModules(cfg.DebugModules)
	a.cfg = cfg
	return nil
}

// readProgram reads the program at path, or from stdin if path is "-".
func readProgram(cmd *cobra.Command, path string) ([]intcode.Atom, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed opening program: %w", err)
		}
		defer f.Close()
		r = f
	}
	prog, err := intcode.ParseProgram(r)
	if err != nil {
		return nil, fmt.Errorf("failed reading program %q: %w", path, err)
	}
	log.Debug(log.CLI, "Loaded program", "path", path, "atoms", len(prog))
	return prog, nil
}
