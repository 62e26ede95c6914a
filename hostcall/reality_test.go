package hostcall

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cassitly/cvere-reality/vm"
)

func kernelMachine(t *testing.T, re *Reality) *vm.VM {
	t.Helper()

	m := vm.New()
	re.Bind(m)

	m.Bind(SYS_SWITCH_RING, vm.RING_USER, re.SwitchRing)
	if _, err := invoke(t, m, SYS_SWITCH_RING, uint16(vm.RING_KERNEL)); err != nil {
		t.Fatalf("switch ring: %v", err)
	}

	return m
}

func TestRealityWriteCode(t *testing.T) {
	assert := assert.New(t)

	re := &Reality{}
	m := kernelMachine(t, re)

	// Patch an instruction cell; user code could never do this.
	_, err := invoke(t, m, SYS_REALITY_WRITE, 0x0040, 0xC107)
	assert.NoError(err)

	value, err := invoke(t, m, SYS_REALITY_READ, 0x0040)
	assert.NoError(err)
	assert.Equal(uint16(0xC107), value)

	// The relaxation is gone outside the handler call.
	assert.ErrorIs(m.Mem.StoreWord(0x0040, 0, vm.RING_KERNEL), vm.ErrProtection{})
}

func TestRealityReservedCells(t *testing.T) {
	assert := assert.New(t)

	re := &Reality{}
	m := kernelMachine(t, re)

	_, err := invoke(t, m, SYS_REALITY_WRITE, 0xFFFE, 0xCAFE)
	assert.NoError(err)

	value, err := invoke(t, m, SYS_REALITY_READ, 0xFFFE)
	assert.NoError(err)
	assert.Equal(uint16(0xCAFE), value)
}

func TestRealitySaveLoad(t *testing.T) {
	assert := assert.New(t)

	re := &Reality{}
	m := kernelMachine(t, re)

	assert.NoError(m.Mem.StoreWord(0x0200, 0x1111, vm.RING_USER))
	_, err := invoke(t, m, SYS_REALITY_SAVE)
	assert.NoError(err)
	assert.NotNil(re.Saved())

	assert.NoError(m.Mem.StoreWord(0x0200, 0x2222, vm.RING_USER))

	_, err = invoke(t, m, SYS_REALITY_LOAD)
	assert.NoError(err)

	value, err := m.Mem.LoadWord(0x0200, vm.RING_USER)
	assert.NoError(err)
	assert.Equal(uint16(0x1111), value)

	// The restored machine resumed past the saving SYSCALL with R1=1,
	// then ran on to the HALT behind it.
	assert.True(m.Halted)
	assert.Equal(uint16(2), m.Regs.PC)
	assert.Equal(uint16(1), m.Regs.Read(1))
}

func TestRealityLoadWithoutSave(t *testing.T) {
	assert := assert.New(t)

	re := &Reality{}
	m := kernelMachine(t, re)

	_, err := invoke(t, m, SYS_REALITY_LOAD)
	assert.ErrorIs(err, ErrNoSnapshot)
}

func TestRealityRingGate(t *testing.T) {
	assert := assert.New(t)

	re := &Reality{}

	for _, num := range []uint16{SYS_REALITY_WRITE, SYS_REALITY_READ, SYS_REALITY_SAVE, SYS_REALITY_LOAD, SYS_SWITCH_RING} {
		m := vm.New()
		re.Bind(m)
		_, err := invoke(t, m, num, 0)
		assert.ErrorIs(err, vm.ErrPrivilege{})
	}
}
