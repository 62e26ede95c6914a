package vm

// MEMORY_SIZE is the number of 16-bit cells in the address space.
const MEMORY_SIZE = 0x10000

// LOAD_LIMIT bounds program images: base+len must stay below the stack.
const LOAD_LIMIT = 0xF000

// Region describes one protected span of the address space. End is
// inclusive. Ring is the least privileged ring granted access.
type Region struct {
	Name  string
	Base  uint16
	End   uint16
	Read  bool
	Write bool
	Exec  bool
	Ring  Ring
}

// The fixed region table. The reserved cells back the initial stack
// pointer and reject rings 1 and 2 unconditionally.
var regions = [...]Region{
	{"code", 0x0000, 0x00FF, true, false, true, RING_USER},
	{"data", 0x0100, 0xEFFF, true, true, false, RING_USER},
	{"stack", 0xF000, 0xFFFD, true, true, false, RING_USER},
	{"reserved", 0xFFFE, 0xFFFF, true, true, false, RING_KERNEL},
}

// RegionOf returns the region containing addr.
func RegionOf(addr uint16) *Region {
	for i := range regions {
		if addr >= regions[i].Base && addr <= regions[i].End {
			return &regions[i]
		}
	}
	// Unreachable: the table covers the full 16-bit space.
	return &regions[len(regions)-1]
}

type access int

const (
	accessRead access = iota
	accessWrite
	accessExec
)

// Memory is the word-addressed linear store with region protection.
type Memory struct {
	cells []uint16

	// Depth of the scoped code-write relaxation held by the gateway
	// around kernel handler calls.
	relaxed int
}

// NewMemory returns a zeroed 64K-cell memory.
func NewMemory() *Memory {
	return &Memory{cells: make([]uint16, MEMORY_SIZE)}
}

func (mem *Memory) check(addr uint16, ring Ring, ac access) error {
	rg := RegionOf(addr)

	if ring > rg.Ring {
		return ErrProtection{Addr: addr, Ring: ring}
	}

	switch ac {
	case accessRead:
		if !rg.Read {
			return ErrProtection{Addr: addr, Ring: ring}
		}
	case accessWrite:
		if !rg.Write && !(mem.relaxed > 0 && ring == RING_KERNEL) {
			return ErrProtection{Addr: addr, Ring: ring}
		}
	case accessExec:
		if !rg.Exec {
			return ErrProtection{Addr: addr, Ring: ring}
		}
	}

	return nil
}

// LoadWord reads the cell at addr on behalf of the given ring.
func (mem *Memory) LoadWord(addr uint16, ring Ring) (uint16, error) {
	if err := mem.check(addr, ring, accessRead); err != nil {
		return 0, err
	}
	return mem.cells[addr], nil
}

// StoreWord writes the cell at addr on behalf of the given ring.
func (mem *Memory) StoreWord(addr uint16, value uint16, ring Ring) error {
	if err := mem.check(addr, ring, accessWrite); err != nil {
		return err
	}
	mem.cells[addr] = value
	return nil
}

// Fetch reads the cell at addr as an instruction, requiring execute
// permission.
func (mem *Memory) Fetch(addr uint16, ring Ring) (uint16, error) {
	if err := mem.check(addr, ring, accessExec); err != nil {
		return 0, err
	}
	return mem.cells[addr], nil
}

// LoadImage copies a program image into memory with no permission checks.
// It refuses to run past the end of memory or into the reserved cells.
func (mem *Memory) LoadImage(words []uint16, base uint16) error {
	end := int(base) + len(words)
	if end > int(regions[len(regions)-1].Base) {
		return ErrInvalidAccess{Addr: base, Ring: RING_KERNEL}
	}

	copy(mem.cells[base:end], words)
	return nil
}

// unprotect raises the code-write relaxation and returns its release. The
// gateway holds it for exactly the duration of one kernel handler call.
func (mem *Memory) unprotect() (release func()) {
	mem.relaxed++
	return func() {
		mem.relaxed--
	}
}
