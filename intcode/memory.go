// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package intcode

import "slices"

// maxCells caps the tape's size even when no limit is set.
const maxCells Atom = 1 << 28

// memory is the VM's tape. Accesses past the end grow it, filling the new
// cells with zeros; negative addresses are always rejected.
type memory struct {
	cells []Atom
	limit Atom // maximum number of cells, or 0 for maxCells
}

// load replaces the tape's contents with prog, reusing the backing array.
func (m *memory) load(prog []Atom) {
	m.cells = append(m.cells[:0], prog...)
}

func (m *memory) len() int { return len(m.cells) }

// truncate shrinks the tape back to n cells. Only used to undo growth.
func (m *memory) truncate(n int) {
	if n < len(m.cells) {
		m.cells = m.cells[:n]
	}
}

// ceiling returns the number of cells the tape may grow to.
func (m *memory) ceiling() Atom {
	if m.limit > 0 && m.limit < maxCells {
		return m.limit
	}
	return maxCells
}

// ensure grows the tape to include addr.
func (m *memory) ensure(addr Atom, kind AccessKind) error {
	if addr < 0 {
		return &OutOfBoundsError{Addr: addr, Kind: kind}
	}
	if addr < Atom(len(m.cells)) {
		return nil
	}
	if addr >= m.ceiling() {
		return &OutOfBoundsError{Addr: addr, Kind: kind}
	}
	old, n := len(m.cells), int(addr)+1
	if n > cap(m.cells) {
		m.cells = slices.Grow(m.cells, n-old)
	}
	// The backing array may hold stale cells from an earlier program.
	m.cells = m.cells[:n]
	clear(m.cells[old:])
	return nil
}

func (m *memory) read(addr Atom) (Atom, error) {
	if err := m.ensure(addr, Read); err != nil {
		return 0, err
	}
	return m.cells[addr], nil
}

func (m *memory) write(addr, v Atom) error {
	if err := m.ensure(addr, Write); err != nil {
		return err
	}
	m.cells[addr] = v
	return nil
}
