// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/derat/intcode/intcode"
	"github.com/derat/intcode/internal/log"
	"github.com/spf13/cobra"
)

// runFlags are shared by the run and resume commands.
type runFlags struct {
	input       string
	ascii       bool
	interactive bool
	stdin       bool
	report      bool
	maxTicks    uint64
	maxMemory   int
	save        string
}

func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.input, "input", "", "comma-separated atoms to feed before running")
	fs.BoolVar(&f.ascii, "ascii", false, "exchange text: output atoms are characters, input lines end in newlines")
	fs.BoolVar(&f.interactive, "interactive", false, "prompt for input whenever the program waits for it")
	fs.BoolVar(&f.stdin, "stdin", false, "read input lines from stdin whenever the program waits for it")
	fs.BoolVar(&f.report, "report", false, "print the machine's state when it stops")
	fs.Uint64Var(&f.maxTicks, "max-ticks", 0, "stop after this many instructions (0 for no limit)")
	fs.IntVar(&f.maxMemory, "max-memory", 0, "maximum memory size in atoms (0 for no limit)")
	fs.StringVar(&f.save, "save", "", "write a snapshot to this file if the program waits for input")
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run <prog>",
		Short: "Run a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := readProgram(cmd, args[0])
			if err != nil {
				return err
			}
			r, err := a.newRunner(cmd, &f)
			if err != nil {
				return err
			}
			r.vm = intcode.New(prog, r.options()...)
			return r.start()
		},
	}
	f.register(cmd)
	return cmd
}

func newResumeCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "resume <snapshot>",
		Short: "Continue a program saved with run --save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			snap, err := intcode.UnmarshalSnapshot(data)
			if err != nil {
				return fmt.Errorf("failed reading snapshot %q: %w", args[0], err)
			}
			r, err := a.newRunner(cmd, &f)
			if err != nil {
				return err
			}
			r.vm = intcode.Restore(snap, r.options()...)
			log.Debug(log.CLI, "Restored snapshot", "path", args[0], "ip", snap.IP, "ticks", snap.Ticks)
			return r.start()
		},
	}
	f.register(cmd)
	return cmd
}

// runner drives a VM on behalf of the run and resume commands.
type runner struct {
	vm        *intcode.VM
	out       io.Writer
	ascii     bool
	input     []intcode.Atom
	maxTicks  uint64
	maxMemory int
	save      string
	report    bool
	tickBase  uint64 // VM ticks when this run began

	// readLine returns the next line of input, or io.EOF when there's no more.
	// nil if input can only come from flags and settings.
	readLine func() (string, error)
	close    func() error
}

// newRunner merges f over the loaded settings.
func (a *app) newRunner(cmd *cobra.Command, f *runFlags) (*runner, error) {
	cfg := a.cfg
	r := &runner{
		out:       cmd.OutOrStdout(),
		ascii:     cfg.ASCII,
		input:     append([]intcode.Atom(nil), cfg.Input...),
		maxTicks:  cfg.MaxTicks,
		maxMemory: cfg.MaxMemory,
		save:      f.save,
		report:    f.report,
	}
	fs := cmd.Flags()
	if fs.Changed("ascii") {
		r.ascii = f.ascii
	}
	if fs.Changed("max-ticks") {
		r.maxTicks = f.maxTicks
	}
	if fs.Changed("max-memory") {
		r.maxMemory = f.maxMemory
	}
	if f.input != "" {
		in, err := parseAtoms(f.input)
		if err != nil {
			return nil, fmt.Errorf("bad --input: %w", err)
		}
		r.input = append(r.input, in...)
	}

	switch {
	case f.interactive && f.stdin:
		return nil, errors.New("--interactive and --stdin are exclusive")
	case f.interactive:
		rl, err := readline.NewEx(&readline.Config{
			Prompt:      cfg.Prompt,
			HistoryFile: cfg.HistoryFile,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to start readline: %w", err)
		}
		r.readLine = func() (string, error) {
			ln, err := rl.Readline()
			if err == readline.ErrInterrupt {
				return "", io.EOF
			}
			return ln, err
		}
		r.close = rl.Close
	case f.stdin:
		br := bufio.NewReader(cmd.InOrStdin())
		r.readLine = func() (string, error) {
			ln, err := br.ReadString('\n')
			if err == io.EOF && ln != "" {
				err = nil
			}
			return strings.TrimSuffix(ln, "\n"), err
		}
	}
	return r, nil
}

func (r *runner) options() []intcode.Option {
	opts := []intcode.Option{intcode.WithMemoryLimit(r.maxMemory)}
	if log.ModuleEnabled(log.VM) {
		opts = append(opts, intcode.WithTracer(intcode.TraceFunc(traceInstruction)))
	}
	return opts
}

func traceInstruction(ip intcode.Atom, ins intcode.Instruction, params []intcode.Atom) {
	log.Trace(log.VM, intcode.Line{Addr: ip, Ins: ins, Params: params}.String())
}

// start feeds the initial input, runs the VM to a stop and reports the result.
func (r *runner) start() error {
	if r.close != nil {
		defer r.close()
	}
	r.vm.AddInput(r.input...)
	r.tickBase = r.vm.Ticks()

	why, err := r.loop()
	if r.report {
		fmt.Fprint(r.out, report(r.vm, why))
	}
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	log.Debug(log.CLI, "Stopped", "reason", why, "ticks", r.vm.Ticks())

	if why.Status == intcode.BlockedOnInput {
		if r.save != "" {
			return r.saveSnapshot()
		}
		return fmt.Errorf("program blocked on input at ip %d", why.IP)
	}
	return nil
}

// loop runs until the VM halts or faults, or blocks with no more input
// available.
func (r *runner) loop() (intcode.StopReason, error) {
	for {
		why, err := r.runBounded()
		r.flush()
		if err != nil || why.Status != intcode.BlockedOnInput || r.readLine == nil {
			return why, err
		}

		ln, err := r.readLine()
		if err == io.EOF {
			return why, nil
		} else if err != nil {
			return why, fmt.Errorf("input failed: %w", err)
		}
		atoms, err := r.encode(ln)
		if err != nil {
			log.Warn(log.CLI, "Ignoring bad input", "line", ln, "err", err)
			continue
		}
		r.vm.AddInput(atoms...)
	}
}

// runBounded is VM.Run with the tick limit applied. Ticks restored from a
// snapshot don't count against the limit.
func (r *runner) runBounded() (intcode.StopReason, error) {
	if r.maxTicks == 0 {
		return r.vm.Run()
	}
	for r.vm.Ticks()-r.tickBase < r.maxTicks {
		if st, err := r.vm.Step(); st != intcode.Ready {
			return intcode.StopReason{Status: st, IP: r.vm.IP()}, err
		}
	}
	return intcode.StopReason{Status: intcode.Ready, IP: r.vm.IP()},
		fmt.Errorf("tick limit %d reached at ip %d", r.maxTicks, r.vm.IP())
}

// flush writes and discards the VM's buffered output.
func (r *runner) flush() {
	for _, a := range r.vm.TakeOutput() {
		if r.ascii && a >= 0 && a <= unicode.MaxASCII {
			fmt.Fprint(r.out, string(rune(a)))
		} else {
			fmt.Fprintln(r.out, a)
		}
	}
}

// encode converts a line of user input to atoms.
func (r *runner) encode(ln string) ([]intcode.Atom, error) {
	if !r.ascii {
		return parseAtoms(ln)
	}
	atoms := make([]intcode.Atom, 0, len(ln)+1)
	for _, ch := range ln {
		atoms = append(atoms, intcode.Atom(ch))
	}
	return append(atoms, '\n'), nil
}

func (r *runner) saveSnapshot() error {
	data, err := intcode.MarshalSnapshot(r.vm.Snapshot())
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.save, data, 0644); err != nil {
		return err
	}
	log.Info(log.CLI, "Saved snapshot", "path", r.save, "ip", r.vm.IP())
	return nil
}

// parseAtoms parses atoms separated by commas and/or whitespace.
func parseAtoms(s string) ([]intcode.Atom, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	atoms := make([]intcode.Atom, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, err
		}
		atoms[i] = v
	}
	return atoms, nil
}
