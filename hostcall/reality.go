package hostcall

import (
	"errors"

	"github.com/cassitly/cvere-reality/vm"
)

var ErrNoSnapshot = errors.New(f("no saved reality"))

// Reality services the ring-0 syscalls: direct stores anywhere in the
// address space (the gateway relaxes the code-region write protection for
// the duration of each call), whole-machine save and restore, and the
// explicit privilege transition.
type Reality struct {
	saved *vm.Snapshot
}

// Bind installs the reality handlers.
func (re *Reality) Bind(m *vm.VM) {
	m.Bind(SYS_SWITCH_RING, vm.RING_KERNEL, re.SwitchRing)
	m.Bind(SYS_REALITY_WRITE, vm.RING_KERNEL, re.write)
	m.Bind(SYS_REALITY_READ, vm.RING_KERNEL, re.read)
	m.Bind(SYS_REALITY_SAVE, vm.RING_KERNEL, re.save)
	m.Bind(SYS_REALITY_LOAD, vm.RING_KERNEL, re.load)
}

// Saved returns the last saved snapshot, or nil.
func (re *Reality) Saved() *vm.Snapshot {
	return re.saved
}

func (re *Reality) write(ctx *vm.Context) (uint16, error) {
	return 1, ctx.StoreWord(ctx.Arg(0), ctx.Arg(1))
}

func (re *Reality) read(ctx *vm.Context) (uint16, error) {
	return ctx.LoadWord(ctx.Arg(0))
}

func (re *Reality) save(ctx *vm.Context) (uint16, error) {
	re.saved = ctx.Snapshot()
	return 1, nil
}

// load restores the saved state; execution resumes just past the
// SYS_REALITY_SAVE that captured it, with R1 set to 1. SYS_REALITY_SAVE also
// returns 1, so R1 does not tell the restored path from the saving one.
func (re *Reality) load(ctx *vm.Context) (uint16, error) {
	if re.saved == nil {
		return 0, ErrNoSnapshot
	}
	ctx.Restore(re.saved)
	return 1, nil
}

// SwitchRing moves CPL to the ring named by R2. This is the only privilege
// transition in the standard catalogue; binding it at a less privileged
// MinRing is host policy.
func (re *Reality) SwitchRing(ctx *vm.Context) (uint16, error) {
	ctx.SetRing(vm.RingOf(ctx.Arg(0)))
	return uint16(ctx.Ring()), nil
}
