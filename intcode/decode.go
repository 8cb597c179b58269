// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package intcode

import "fmt"

// Opcode identifies an instruction. Its value is the instruction word's low
// two decimal digits.
type Opcode int

const (
	OpUnknown     Opcode = 0
	OpAdd         Opcode = 1  // add a b c: c = a + b
	OpMul         Opcode = 2  // mul a b c: c = a * b
	OpIn          Opcode = 3  // in a: pop the next input into a
	OpOut         Opcode = 4  // out a: append a to the output
	OpJumpIfTrue  Opcode = 5  // jn a b: jump to b if a is nonzero
	OpJumpIfFalse Opcode = 6  // jz a b: jump to b if a is zero
	OpLessThan    Opcode = 7  // lt a b c: c = 1 if a < b, else 0
	OpEquals      Opcode = 8  // eq a b c: c = 1 if a == b, else 0
	OpAdjustBase  Opcode = 9  // arb a: rb += a
	OpHalt        Opcode = 99 // hlt
)

type opInfo struct {
	name  string
	arity int
	out   int // index of the written parameter, or -1
}

var opInfos = map[Opcode]opInfo{
	OpAdd:         {"Add", 3, 2},
	OpMul:         {"Mul", 3, 2},
	OpIn:          {"In", 1, 0},
	OpOut:         {"Out", 1, -1},
	OpJumpIfTrue:  {"Jn", 2, -1},
	OpJumpIfFalse: {"Jz", 2, -1},
	OpLessThan:    {"Lt", 3, 2},
	OpEquals:      {"Eq", 3, 2},
	OpAdjustBase:  {"Arb", 1, -1},
	OpHalt:        {"Hlt", 0, -1},
}

func (op Opcode) String() string {
	if info, ok := opInfos[op]; ok {
		return info.name
	}
	return "???"
}

// Arity returns the number of parameters that follow op's instruction word.
func (op Opcode) Arity() int { return opInfos[op].arity }

// Writes reports whether op's last parameter is a write target.
func (op Opcode) Writes() bool {
	info, ok := opInfos[op]
	return ok && info.out >= 0
}

// ParamMode selects how a parameter is interpreted.
type ParamMode int

const (
	Position  ParamMode = 0 // the parameter is an address
	Immediate ParamMode = 1 // the parameter is the value itself
	Relative  ParamMode = 2 // the parameter is an address relative to rb
)

func (m ParamMode) String() string {
	switch m {
	case Position:
		return "pos"
	case Immediate:
		return "imm"
	case Relative:
		return "rel"
	default:
		return fmt.Sprintf("ParamMode(%d)", int(m))
	}
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Word  Atom
	Op    Opcode
	Modes [3]ParamMode // modes beyond Op.Arity() are always Position
}

// Decode unpacks an instruction word: the low two digits select the opcode
// and each following digit, least significant first, selects the mode of the
// next parameter. Missing digits mean Position.
//
// An unknown opcode still yields an Instruction (with Op set to OpUnknown)
// alongside an *UnknownOpcodeError.
func Decode(word Atom) (Instruction, error) {
	ins := Instruction{Word: word, Op: Opcode(word % 100)}
	info, ok := opInfos[ins.Op]
	if !ok {
		ins.Op = OpUnknown
		return ins, &UnknownOpcodeError{Word: word}
	}

	rest := word / 100
	for i := 0; i < info.arity; i++ {
		d := rest % 10
		rest /= 10
		switch ParamMode(d) {
		case Position, Immediate, Relative:
			ins.Modes[i] = ParamMode(d)
		default:
			return ins, &BadParameterModeError{Word: word, Param: i, Digit: d}
		}
	}
	if rest != 0 {
		return ins, &MalformedInstructionError{Word: word, Op: ins.Op}
	}
	return ins, nil
}

// resolveRead returns the value named by a parameter.
func resolveRead(m *memory, raw Atom, mode ParamMode, rb Atom) (Atom, error) {
	switch mode {
	case Position:
		return m.read(raw)
	case Immediate:
		return raw, nil
	case Relative:
		return m.read(raw + rb)
	}
	return 0, &BadParameterModeError{Digit: Atom(mode)}
}

// resolveWrite returns the address named by a write parameter.
// Immediate mode can't name an address.
func resolveWrite(raw Atom, mode ParamMode, rb Atom) (Atom, error) {
	switch mode {
	case Position:
		return raw, nil
	case Relative:
		return raw + rb, nil
	}
	return 0, &BadParameterModeError{Digit: Atom(mode)}
}
