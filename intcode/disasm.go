// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package intcode

import (
	"fmt"
	"strings"
)

// Line is a single disassembled instruction, or a data word that didn't
// decode.
type Line struct {
	Addr   Atom
	Ins    Instruction
	Params []Atom // raw parameter words
	Data   bool
}

func (l Line) String() string {
	if l.Data {
		return fmt.Sprintf("[%4d] DATA %d", l.Addr, l.Ins.Word)
	}
	args := make([]string, len(l.Params))
	for i, p := range l.Params {
		args[i] = formatParam(p, l.Ins.Modes[i])
	}
	s := fmt.Sprintf("[%4d] %03d-%02d %s", l.Addr, l.Ins.Word/100, l.Ins.Word%100, l.Ins.Op)
	if len(args) > 0 {
		s += " " + strings.Join(args, ", ")
	}
	return s
}

func formatParam(p Atom, m ParamMode) string {
	switch m {
	case Immediate:
		return fmt.Sprint(p)
	case Relative:
		if p < 0 {
			return fmt.Sprintf("[rb%d]", p)
		}
		return fmt.Sprintf("[rb+%d]", p)
	default:
		return fmt.Sprintf("[%d]", p)
	}
}

// Disassemble decodes mem from address 0 in a single linear sweep.
// Intcode mixes code and data freely, so words that don't decode as a
// complete instruction are emitted as one-word data lines.
func Disassemble(mem []Atom) []Line {
	var lines []Line
	for addr := 0; addr < len(mem); {
		ins, err := Decode(mem[addr])
		n := ins.Op.Arity()
		if err != nil || addr+n >= len(mem) {
			lines = append(lines, Line{Addr: Atom(addr), Ins: Instruction{Word: mem[addr]}, Data: true})
			addr++
			continue
		}
		lines = append(lines, Line{Addr: Atom(addr), Ins: ins, Params: mem[addr+1 : addr+1+n]})
		addr += 1 + n
	}
	return lines
}
