// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"fmt"

	"github.com/derat/intcode/intcode"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <prog>",
		Short: "Print a program's memory four atoms per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := readProgram(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), intcode.FormatMemory(prog))
			return nil
		},
	}
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <prog>",
		Short: "Print a program's instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := readProgram(cmd, args[0])
			if err != nil {
				return err
			}
			for _, ln := range intcode.Disassemble(prog) {
				fmt.Fprintln(cmd.OutOrStdout(), ln)
			}
			return nil
		},
	}
}
