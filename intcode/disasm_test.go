// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package intcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	lines := Disassemble([]Atom{109, -1, 204, 1, 1002, 4, 3, 4, 77, 21101, 2, 3, 0, 99, 1, 2})
	var got []string
	for _, l := range lines {
		got = append(got, l.String())
	}
	assert.Equal(t, []string{
		"[   0] 001-09 Arb -1",
		"[   2] 002-04 Out [rb+1]",
		"[   4] 010-02 Mul [4], 3, [4]",
		"[   8] DATA 77",
		"[   9] 211-01 Add 2, 3, [rb+0]",
		"[  13] 000-99 Hlt",
		"[  14] DATA 1", // truncated add
		"[  15] DATA 2",
	}, got)

	assert.Equal(t, Atom(4), lines[2].Addr)
	assert.Equal(t, []Atom{4, 3, 4}, lines[2].Params)
	assert.True(t, lines[3].Data)
}

func TestFormatParam(t *testing.T) {
	assert.Equal(t, "[rb-3]", formatParam(-3, Relative))
	assert.Equal(t, "-3", formatParam(-3, Immediate))
	assert.Equal(t, "[12]", formatParam(12, Position))
}
