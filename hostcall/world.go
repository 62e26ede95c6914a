package hostcall

import (
	"errors"

	"github.com/cassitly/cvere-reality/translate"
	"github.com/cassitly/cvere-reality/vm"
)

var f = translate.From

var ErrNoEntity = errors.New(f("no such entity"))

// Entity property selectors for SYS_ENTITY_GET / SYS_ENTITY_SET.
const (
	ENTITY_KIND = uint16(0)
	ENTITY_X    = uint16(1)
	ENTITY_Y    = uint16(2)
)

// WORLD_SIZE is the side length of the square tile map.
const WORLD_SIZE = 256

// Entity is one object in the scripted world.
type Entity struct {
	ID   uint16
	Kind uint16
	X, Y uint16
}

// World services the ring-1 scripting syscalls: entities, tiles, and quest
// flags, all in memory.
type World struct {
	entities map[uint16]*Entity
	tiles    map[uint32]uint16
	quests   map[uint16]bool
	nextID   uint16
}

// Bind installs the world handlers.
func (w *World) Bind(m *vm.VM) {
	m.Bind(SYS_ENTITY_CREATE, vm.RING_SUPERVISOR, w.entityCreate)
	m.Bind(SYS_ENTITY_DESTROY, vm.RING_SUPERVISOR, w.entityDestroy)
	m.Bind(SYS_ENTITY_GET, vm.RING_SUPERVISOR, w.entityGet)
	m.Bind(SYS_ENTITY_SET, vm.RING_SUPERVISOR, w.entitySet)
	m.Bind(SYS_ENTITY_MOVE, vm.RING_SUPERVISOR, w.entityMove)
	m.Bind(SYS_TILE_GET, vm.RING_SUPERVISOR, w.tileGet)
	m.Bind(SYS_TILE_SET, vm.RING_SUPERVISOR, w.tileSet)
	m.Bind(SYS_QUEST_SET, vm.RING_SUPERVISOR, w.questSet)
	m.Bind(SYS_QUEST_GET, vm.RING_SUPERVISOR, w.questGet)
}

// Entity returns the entity with the given id, or nil.
func (w *World) Entity(id uint16) *Entity {
	return w.entities[id]
}

func (w *World) entityCreate(ctx *vm.Context) (uint16, error) {
	if w.entities == nil {
		w.entities = map[uint16]*Entity{}
	}

	w.nextID++
	ent := &Entity{
		ID:   w.nextID,
		Kind: ctx.Arg(0),
		X:    ctx.Arg(1),
		Y:    ctx.Arg(2),
	}
	w.entities[ent.ID] = ent

	return ent.ID, nil
}

func (w *World) entityDestroy(ctx *vm.Context) (uint16, error) {
	id := ctx.Arg(0)
	if w.entities[id] == nil {
		return 0, nil
	}
	delete(w.entities, id)
	return 1, nil
}

func (w *World) entityGet(ctx *vm.Context) (uint16, error) {
	ent := w.entities[ctx.Arg(0)]
	if ent == nil {
		return 0, ErrNoEntity
	}

	switch ctx.Arg(1) {
	case ENTITY_KIND:
		return ent.Kind, nil
	case ENTITY_X:
		return ent.X, nil
	case ENTITY_Y:
		return ent.Y, nil
	}
	return 0, nil
}

func (w *World) entitySet(ctx *vm.Context) (uint16, error) {
	ent := w.entities[ctx.Arg(0)]
	if ent == nil {
		return 0, ErrNoEntity
	}

	value := ctx.Arg(2)
	switch ctx.Arg(1) {
	case ENTITY_KIND:
		ent.Kind = value
	case ENTITY_X:
		ent.X = value
	case ENTITY_Y:
		ent.Y = value
	}
	return 1, nil
}

// entityMove applies signed deltas from R3/R4.
func (w *World) entityMove(ctx *vm.Context) (uint16, error) {
	ent := w.entities[ctx.Arg(0)]
	if ent == nil {
		return 0, ErrNoEntity
	}

	ent.X += ctx.Arg(1)
	ent.Y += ctx.Arg(2)
	return 1, nil
}

func tileKey(x, y uint16) uint32 {
	return uint32(y%WORLD_SIZE)<<16 | uint32(x%WORLD_SIZE)
}

func (w *World) tileGet(ctx *vm.Context) (uint16, error) {
	return w.tiles[tileKey(ctx.Arg(0), ctx.Arg(1))], nil
}

func (w *World) tileSet(ctx *vm.Context) (uint16, error) {
	if w.tiles == nil {
		w.tiles = map[uint32]uint16{}
	}
	w.tiles[tileKey(ctx.Arg(0), ctx.Arg(1))] = ctx.Arg(2)
	return 1, nil
}

func (w *World) questSet(ctx *vm.Context) (uint16, error) {
	if w.quests == nil {
		w.quests = map[uint16]bool{}
	}
	w.quests[ctx.Arg(0)] = ctx.Arg(1) != 0
	return 1, nil
}

func (w *World) questGet(ctx *vm.Context) (uint16, error) {
	if w.quests[ctx.Arg(0)] {
		return 1, nil
	}
	return 0, nil
}
