// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package intcode

import "fmt"

// AccessKind describes the kind of memory access that failed.
type AccessKind int

const (
	Read AccessKind = iota
	Write
)

func (k AccessKind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("AccessKind(%d)", int(k))
	}
}

// OutOfBoundsError is returned for an access at a negative address, or past
// the limit set by WithMemoryLimit.
type OutOfBoundsError struct {
	Addr Atom
	Kind AccessKind
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("out-of-bounds %v at address %d", e.Kind, e.Addr)
}

// BadParameterModeError is returned when a mode digit is not 0, 1 or 2, or
// when a parameter that is written to uses immediate mode.
type BadParameterModeError struct {
	Word  Atom // packed instruction word
	Param int  // 0-indexed parameter
	Digit Atom
}

func (e *BadParameterModeError) Error() string {
	if e.Digit == Atom(Immediate) {
		return fmt.Sprintf("immediate mode on write parameter %d of %d", e.Param+1, e.Word)
	}
	return fmt.Sprintf("bad mode %d for parameter %d of %d", e.Digit, e.Param+1, e.Word)
}

// UnknownOpcodeError is returned when an instruction word's low two digits
// don't name an opcode.
type UnknownOpcodeError struct {
	Word Atom
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %d in %d", e.Word%100, e.Word)
}

// MalformedInstructionError is returned when an instruction word carries mode
// digits for parameters that its opcode doesn't take.
type MalformedInstructionError struct {
	Word Atom
	Op   Opcode
}

func (e *MalformedInstructionError) Error() string {
	return fmt.Sprintf("%d has modes past the %d parameter(s) of %v", e.Word, e.Op.Arity(), e.Op)
}

// StepError wraps the first error hit while executing an instruction.
// Use errors.As to get at the underlying error.
type StepError struct {
	IP   Atom
	Word Atom // zero if the instruction word itself couldn't be read
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("intcode: ip %d (word %d): %v", e.IP, e.Word, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
