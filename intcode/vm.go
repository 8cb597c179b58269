// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package intcode implements a virtual machine for Intcode programs.
//
// A program is a list of signed integers loaded into a growable memory tape.
// The VM is single-threaded: it only changes state inside Step and Run, and
// the only point where it suspends is an input instruction with no queued
// input.
package intcode

import (
	"errors"
	"fmt"
	"slices"
)

// Atom is a single memory cell.
type Atom = int64

// Status describes the VM's state after a call to Step or Run.
type Status int

const (
	Ready          Status = iota // another instruction can be executed
	Halted                       // a halt instruction was reached
	BlockedOnInput               // an input instruction is waiting for AddInput
	Faulted                      // an instruction failed; see the returned error
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Halted:
		return "halted"
	case BlockedOnInput:
		return "blocked on input"
	case Faulted:
		return "faulted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StopReason is returned by Run.
type StopReason struct {
	Status Status
	IP     Atom
}

func (r StopReason) String() string {
	return fmt.Sprintf("%v at %d", r.Status, r.IP)
}

// Tracer is notified of every instruction the VM retires.
// params holds the raw parameter words, not the resolved values.
type Tracer interface {
	Trace(ip Atom, ins Instruction, params []Atom)
}

// TraceFunc adapts a function to the Tracer interface.
type TraceFunc func(ip Atom, ins Instruction, params []Atom)

func (f TraceFunc) Trace(ip Atom, ins Instruction, params []Atom) { f(ip, ins, params) }

type nopTracer struct{}

func (nopTracer) Trace(Atom, Instruction, []Atom) {}

// Option configures a VM.
type Option func(*VM)

// WithTracer installs t to observe executed instructions.
func WithTracer(t Tracer) Option {
	return func(vm *VM) {
		if t == nil {
			t = nopTracer{}
		}
		vm.tracer = t
	}
}

// WithMemoryLimit stops memory from growing past n cells. Accesses that
// would need more fail with an *OutOfBoundsError. n <= 0 leaves only the
// built-in ceiling of 1<<28 cells.
func WithMemoryLimit(n int) Option {
	return func(vm *VM) { vm.mem.limit = Atom(max(n, 0)) }
}

// VM is an Intcode machine. The zero value is not usable; call New.
type VM struct {
	mem    memory
	ip     Atom // address of the next instruction word
	rb     Atom // relative base
	ticks  uint64
	in     []Atom
	out    []Atom
	halted bool
	err    error // set once an instruction fails
	tracer Tracer
}

// New returns a VM with a copy of prog loaded at address 0.
func New(prog []Atom, opts ...Option) *VM {
	vm := &VM{tracer: nopTracer{}}
	for _, o := range opts {
		o(vm)
	}
	vm.Reset(prog)
	return vm
}

// Reset reinitializes vm as if it had just been created with prog,
// reusing its existing allocations. Options are retained.
func (vm *VM) Reset(prog []Atom) {
	vm.mem.load(prog)
	vm.ip = 0
	vm.rb = 0
	vm.ticks = 0
	vm.in = vm.in[:0]
	vm.out = vm.out[:0]
	vm.halted = false
	vm.err = nil
}

// IP returns the address of the next instruction.
func (vm *VM) IP() Atom { return vm.ip }

// RelativeBase returns the relative base register.
func (vm *VM) RelativeBase() Atom { return vm.rb }

// Ticks returns the number of instructions executed so far.
func (vm *VM) Ticks() uint64 { return vm.ticks }

// Err returns the error that stopped the VM, if any.
func (vm *VM) Err() error { return vm.err }

// AddInput appends atoms to the input queue.
func (vm *VM) AddInput(atoms ...Atom) { vm.in = append(vm.in, atoms...) }

// PendingInput returns queued input that hasn't been consumed yet.
// The slice must not be modified.
func (vm *VM) PendingInput() []Atom { return vm.in }

// Output returns everything output so far and not yet taken, oldest first.
// The slice must not be modified and is only valid until the VM next runs.
func (vm *VM) Output() []Atom { return vm.out }

// TakeOutput returns and clears the buffered output.
func (vm *VM) TakeOutput() []Atom {
	out := vm.out
	vm.out = nil
	return out
}

// Memory returns a copy of the memory tape.
func (vm *VM) Memory() []Atom { return slices.Clone(vm.mem.cells) }

// Peek returns the atom at addr, growing memory if needed.
func (vm *VM) Peek(addr Atom) (Atom, error) { return vm.mem.read(addr) }

// Poke stores v at addr. It's meant for patching a program before running it.
func (vm *VM) Poke(addr, v Atom) error { return vm.mem.write(addr, v) }

// Run executes instructions until the VM halts, blocks on input or faults.
// Output is buffered; read it with Output or TakeOutput afterwards.
func (vm *VM) Run() (StopReason, error) {
	for {
		st, err := vm.Step()
		if st != Ready {
			return StopReason{Status: st, IP: vm.ip}, err
		}
	}
}

// Step executes a single instruction.
//
// Ready means the instruction completed. Halted and BlockedOnInput leave ip on
// the halt or input instruction so that stepping again repeats the check.
// Faulted is returned with a *StepError; the VM's ip and memory are left as
// they were before the instruction and every later call fails the same way.
func (vm *VM) Step() (Status, error) {
	if vm.err != nil {
		return Faulted, vm.err
	}
	if vm.halted {
		return Halted, nil
	}

	n := vm.mem.len()
	st, word, err := vm.exec()
	if err != nil {
		// Only reads can have grown memory before the failure.
		vm.mem.truncate(n)
		vm.err = &StepError{IP: vm.ip, Word: word, Err: err}
		return Faulted, vm.err
	}
	return st, nil
}

// exec decodes and executes the instruction at ip. On failure, ip, rb, the
// I/O queues and every cell below the tape's old length are unchanged.
func (vm *VM) exec() (st Status, word Atom, err error) {
	ip := vm.ip
	if word, err = vm.mem.read(ip); err != nil {
		return Faulted, 0, err
	}
	ins, err := Decode(word)
	if err != nil {
		return Faulted, word, err
	}

	var raw [3]Atom
	arity := ins.Op.Arity()
	for i := 0; i < arity; i++ {
		if raw[i], err = vm.mem.read(ip + 1 + Atom(i)); err != nil {
			return Faulted, word, err
		}
	}
	params := raw[:arity]

	// Returns the value of the 0-indexed parameter.
	get := func(i int) (Atom, error) {
		v, err := resolveRead(&vm.mem, raw[i], ins.Modes[i], vm.rb)
		return v, withParam(err, word, i)
	}
	// Resolves the 0-indexed parameter as a write address.
	dest := func(i int) (Atom, error) {
		addr, err := resolveWrite(raw[i], ins.Modes[i], vm.rb)
		return addr, withParam(err, word, i)
	}
	// Computes c from parameters 0 and 1 and stores it at parameter 2.
	binop := func(f func(a, b Atom) Atom) error {
		a, err := get(0)
		if err != nil {
			return err
		}
		b, err := get(1)
		if err != nil {
			return err
		}
		addr, err := dest(2)
		if err != nil {
			return err
		}
		return vm.mem.write(addr, f(a, b))
	}
	// Jumps to parameter 1 if parameter 0 satisfies pred.
	jump := func(pred func(v Atom) bool) (bool, error) {
		v, err := get(0)
		if err != nil {
			return false, err
		}
		target, err := get(1)
		if err != nil {
			return false, err
		}
		if pred(v) {
			vm.ip = target
			return true, nil
		}
		return false, nil
	}

	sz := Atom(1 + arity) // instruction size (including opcode)
	switch ins.Op {
	case OpAdd:
		err = binop(func(a, b Atom) Atom { return a + b })
	case OpMul:
		err = binop(func(a, b Atom) Atom { return a * b })
	case OpIn:
		var addr Atom
		if addr, err = dest(0); err != nil {
			break
		}
		if len(vm.in) == 0 {
			return BlockedOnInput, word, nil // don't consume the instruction
		}
		if err = vm.mem.write(addr, vm.in[0]); err == nil {
			vm.in = vm.in[1:]
		}
	case OpOut:
		var v Atom
		if v, err = get(0); err == nil {
			vm.out = append(vm.out, v)
		}
	case OpJumpIfTrue:
		var jumped bool
		if jumped, err = jump(func(v Atom) bool { return v != 0 }); jumped {
			sz = 0 // don't advance ip
		}
	case OpJumpIfFalse:
		var jumped bool
		if jumped, err = jump(func(v Atom) bool { return v == 0 }); jumped {
			sz = 0 // don't advance ip
		}
	case OpLessThan:
		err = binop(func(a, b Atom) Atom { return cond(a < b) })
	case OpEquals:
		err = binop(func(a, b Atom) Atom { return cond(a == b) })
	case OpAdjustBase:
		var v Atom
		if v, err = get(0); err == nil {
			vm.rb += v
		}
	case OpHalt:
		vm.halted = true
		vm.ticks++
		vm.tracer.Trace(ip, ins, params)
		return Halted, word, nil
	}
	if err != nil {
		return Faulted, word, err
	}

	vm.ip += sz
	vm.ticks++
	vm.tracer.Trace(ip, ins, params)
	return Ready, word, nil
}

// withParam fills in the instruction details of a resolver error.
func withParam(err error, word Atom, i int) error {
	var bad *BadParameterModeError
	if errors.As(err, &bad) {
		bad.Word, bad.Param = word, i
	}
	return err
}

// cond returns 1 if c is true and 0 otherwise.
func cond(c bool) Atom {
	if c {
		return 1
	}
	return 0
}
