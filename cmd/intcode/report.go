// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package main

import (
	"fmt"

	"github.com/derat/intcode/intcode"
	"github.com/xlab/treeprint"
)

// report describes vm's state after it stopped for why.
func report(vm *intcode.VM, why intcode.StopReason) string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("intcode: %v", why))
	tree.AddMetaNode("ip", vm.IP())
	tree.AddMetaNode("rb", vm.RelativeBase())
	tree.AddMetaNode("ticks", vm.Ticks())

	mem := vm.Memory()
	var nonzero int
	for _, a := range mem {
		if a != 0 {
			nonzero++
		}
	}
	mb := tree.AddMetaBranch("memory", fmt.Sprintf("%d atoms", len(mem)))
	mb.AddMetaNode("nonzero", nonzero)

	if in := vm.PendingInput(); len(in) > 0 {
		tree.AddMetaNode("input", intcode.FormatProgram(in))
	}
	if err := vm.Err(); err != nil {
		tree.AddMetaNode("error", err.Error())
	}
	return tree.String()
}
