// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package intcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProgram(t *testing.T) {
	prog, err := ParseProgram(strings.NewReader("1,0, 0,3,\t-99\n"))
	require.NoError(t, err)
	assert.Equal(t, []Atom{1, 0, 0, 3, -99}, prog)
	assert.Equal(t, "1,0,0,3,-99", FormatProgram(prog))

	prog, err = ParseProgram(strings.NewReader("1219070632396864"))
	require.NoError(t, err)
	assert.Equal(t, []Atom{1219070632396864}, prog)
}

func TestParseProgramErrors(t *testing.T) {
	for _, in := range []string{"", " \n", "1,,2", "1,2,", "1,x", "99999999999999999999"} {
		_, err := ParseProgram(strings.NewReader(in))
		assert.Error(t, err, "ParseProgram(%q)", in)
	}

	_, err := ParseProgram(strings.NewReader("1,2,three"))
	assert.ErrorContains(t, err, "atom 2")
}

func TestFormatMemory(t *testing.T) {
	assert.Equal(t, "==== INTCODE MEMORY ====\n", FormatMemory(nil))
	assert.Equal(t,
		"==== INTCODE MEMORY ====\n"+
			"   1    0    0    0\n"+
			"  99\n",
		FormatMemory([]Atom{1, 0, 0, 0, 99}))
	assert.Equal(t,
		"==== INTCODE MEMORY ====\n"+
			"1002    4    3    4\n"+
			"  33   -1 12345    7\n",
		FormatMemory([]Atom{1002, 4, 3, 4, 33, -1, 12345, 7}))
}
