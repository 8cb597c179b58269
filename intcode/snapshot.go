// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package intcode

import (
	"fmt"
	"slices"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is a copy of a VM's state. A VM that faulted is captured as it
// was before the failing instruction, so a restored copy fails the same way.
type Snapshot struct {
	IP     Atom   `cbor:"1,keyasint"`
	RB     Atom   `cbor:"2,keyasint"`
	Ticks  uint64 `cbor:"3,keyasint"`
	Halted bool   `cbor:"4,keyasint"`
	Memory []Atom `cbor:"5,keyasint"`
	Input  []Atom `cbor:"6,keyasint,omitempty"`
	Output []Atom `cbor:"7,keyasint,omitempty"`
}

// Snapshot returns a copy of vm's state.
func (vm *VM) Snapshot() *Snapshot {
	return &Snapshot{
		IP:     vm.ip,
		RB:     vm.rb,
		Ticks:  vm.ticks,
		Halted: vm.halted,
		Memory: slices.Clone(vm.mem.cells),
		Input:  slices.Clone(vm.in),
		Output: slices.Clone(vm.out),
	}
}

// Restore returns a new VM with the state in s.
func Restore(s *Snapshot, opts ...Option) *VM {
	vm := New(s.Memory, opts...)
	vm.ip = s.IP
	vm.rb = s.RB
	vm.ticks = s.Ticks
	vm.halted = s.Halted
	vm.in = append(vm.in, s.Input...)
	vm.out = append(vm.out, s.Output...)
	return vm
}

var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("intcode: failed to create CBOR enc mode: %v", err))
	}
	snapshotEncMode = em
}

// MarshalSnapshot encodes s as canonical CBOR.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	return snapshotEncMode.Marshal(s)
}

// UnmarshalSnapshot decodes a snapshot written by MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("intcode: unmarshal snapshot: %w", err)
	}
	if s.IP < 0 {
		return nil, fmt.Errorf("intcode: snapshot has negative ip %d", s.IP)
	}
	return &s, nil
}
