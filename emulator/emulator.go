// Copyright 2025, Cassitly

// Package emulator wires the CVERE machine to the standard host devices
// and provides the conveniences an embedder wants: hex image loading,
// verbose trace logging, and optional scripted syscalls.
package emulator

import (
	"io"
	"log"

	"github.com/cassitly/cvere-reality/hostcall"
	"github.com/cassitly/cvere-reality/vm"
)

// DEFAULT_CYCLES bounds a Run when the embedder gives no budget.
const DEFAULT_CYCLES = uint64(1 << 20)

// Machine is a VM with the full standard catalogue bound.
type Machine struct {
	Verbose bool // Set to log one line per executed instruction.

	*vm.VM

	Console hostcall.Console
	System  hostcall.System
	World   hostcall.World
	Reality hostcall.Reality
}

// NewMachine creates a machine with the standard devices bound. The
// privilege transition syscall is rebound to the user ring: the emulator is
// a development harness, and its programs are allowed to find their way
// down to the kernel.
func NewMachine() *Machine {
	m := &Machine{VM: vm.New()}

	m.Console.Bind(m.VM)
	m.System.Bind(m.VM)
	m.World.Bind(m.VM)
	m.Reality.Bind(m.VM)
	m.VM.Bind(hostcall.SYS_SWITCH_RING, vm.RING_USER, m.Reality.SwitchRing)

	return m
}

// LoadHex reads a hex text image and loads it at base.
func (m *Machine) LoadHex(r io.Reader, base uint16) error {
	words, err := vm.ParseHex(r)
	if err != nil {
		return err
	}
	return m.LoadProgram(words, base)
}

// LoadScript binds syscall handlers defined in a Starlark source.
func (m *Machine) LoadScript(filename string, src any) error {
	script, err := hostcall.LoadScript(filename, src)
	if err != nil {
		return err
	}
	script.Bind(m.VM)
	return nil
}

// Run executes until HALT, fault, or max cycles (DEFAULT_CYCLES when max is
// zero). With Verbose set, every step is logged.
func (m *Machine) Run(max uint64) (cycles uint64, err error) {
	if max == 0 {
		max = DEFAULT_CYCLES
	}

	if !m.Verbose {
		return m.VM.Run(max)
	}

	return m.VM.Trace(max, func(tr *vm.Trace) {
		log.Printf("%8d %04X: %04X  %v", tr.Cycle, tr.PC, tr.Word, tr.Instr)
	})
}
