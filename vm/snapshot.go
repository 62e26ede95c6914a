package vm

// Snapshot captures the complete architectural state of a machine:
// register file, memory image, and cycle counter.
type Snapshot struct {
	Regs   Registers
	Mem    []uint16
	Cycles uint64
}

// Snapshot copies out the current state. The returned value shares nothing
// with the machine.
func (v *VM) Snapshot() *Snapshot {
	mem := make([]uint16, MEMORY_SIZE)
	copy(mem, v.Mem.cells)

	return &Snapshot{
		Regs:   v.Regs,
		Mem:    mem,
		Cycles: v.Cycles,
	}
}

// Restore reinstates a captured state. Any halted flag or sticky fault is
// cleared: the machine resumes from the snapshot's PC.
func (v *VM) Restore(snap *Snapshot) {
	v.Regs = snap.Regs
	copy(v.Mem.cells, snap.Mem)
	v.Cycles = snap.Cycles
	v.Halted = false
	v.fault = nil
}
