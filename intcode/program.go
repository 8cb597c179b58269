// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package intcode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseProgram reads a program written as comma-separated decimal atoms,
// e.g. "1,0,0,3,99". Surrounding whitespace is ignored.
func ParseProgram(r io.Reader) ([]Atom, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return nil, errors.New("empty program")
	}
	fields := strings.Split(s, ",")
	prog := make([]Atom, len(fields))
	for i, f := range fields {
		if prog[i], err = strconv.ParseInt(strings.TrimSpace(f), 10, 64); err != nil {
			return nil, fmt.Errorf("atom %d: %w", i, err)
		}
	}
	return prog, nil
}

// FormatProgram is the inverse of ParseProgram.
func FormatProgram(prog []Atom) string {
	strs := make([]string, len(prog))
	for i, a := range prog {
		strs[i] = strconv.FormatInt(a, 10)
	}
	return strings.Join(strs, ",")
}

// FormatMemory returns a dump of mem with four atoms per line.
func FormatMemory(mem []Atom) string {
	var sb strings.Builder
	sb.WriteString("==== INTCODE MEMORY ====\n")
	for i, a := range mem {
		switch {
		case i%4 == 3 || i == len(mem)-1:
			fmt.Fprintf(&sb, "%4d\n", a)
		default:
			fmt.Fprintf(&sb, "%4d ", a)
		}
	}
	return sb.String()
}
