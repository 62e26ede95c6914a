package hostcall

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cassitly/cvere-reality/vm"
)

// supervisorMachine returns a machine whose CPL is the supervisor ring.
func supervisorMachine(t *testing.T, w *World) *vm.VM {
	t.Helper()

	m := vm.New()
	w.Bind(m)

	re := &Reality{}
	m.Bind(SYS_SWITCH_RING, vm.RING_USER, re.SwitchRing)
	if _, err := invoke(t, m, SYS_SWITCH_RING, uint16(vm.RING_SUPERVISOR)); err != nil {
		t.Fatalf("switch ring: %v", err)
	}

	return m
}

func TestWorldEntities(t *testing.T) {
	assert := assert.New(t)

	w := &World{}
	m := supervisorMachine(t, w)

	id, err := invoke(t, m, SYS_ENTITY_CREATE, 3, 10, 20)
	assert.NoError(err)
	assert.Equal(uint16(1), id)

	kind, err := invoke(t, m, SYS_ENTITY_GET, id, ENTITY_KIND)
	assert.NoError(err)
	assert.Equal(uint16(3), kind)

	_, err = invoke(t, m, SYS_ENTITY_MOVE, id, 5, 0xFFFF) // +5, -1
	assert.NoError(err)
	assert.Equal(uint16(15), w.Entity(id).X)
	assert.Equal(uint16(19), w.Entity(id).Y)

	_, err = invoke(t, m, SYS_ENTITY_SET, id, ENTITY_Y, 42)
	assert.NoError(err)
	assert.Equal(uint16(42), w.Entity(id).Y)

	ok, err := invoke(t, m, SYS_ENTITY_DESTROY, id)
	assert.NoError(err)
	assert.Equal(uint16(1), ok)
	assert.Nil(w.Entity(id))

	// Reading a destroyed entity faults.
	_, err = invoke(t, m, SYS_ENTITY_GET, id, ENTITY_KIND)
	assert.ErrorIs(err, ErrNoEntity)
}

func TestWorldTilesAndQuests(t *testing.T) {
	assert := assert.New(t)

	w := &World{}
	m := supervisorMachine(t, w)

	_, err := invoke(t, m, SYS_TILE_SET, 3, 4, 99)
	assert.NoError(err)
	tile, err := invoke(t, m, SYS_TILE_GET, 3, 4)
	assert.NoError(err)
	assert.Equal(uint16(99), tile)

	flag, err := invoke(t, m, SYS_QUEST_GET, 7)
	assert.NoError(err)
	assert.Equal(uint16(0), flag)

	_, err = invoke(t, m, SYS_QUEST_SET, 7, 1)
	assert.NoError(err)
	flag, err = invoke(t, m, SYS_QUEST_GET, 7)
	assert.NoError(err)
	assert.Equal(uint16(1), flag)
}

func TestWorldRingGate(t *testing.T) {
	assert := assert.New(t)

	w := &World{}
	m := vm.New()
	w.Bind(m)

	// A user-ring caller may not touch the world layer.
	_, err := invoke(t, m, SYS_ENTITY_CREATE, 1, 0, 0)
	assert.ErrorIs(err, vm.ErrPrivilege{})
}
