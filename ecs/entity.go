package ecs

import (
	"cmp"
	"fmt"
)

// Entity packs a slot id in the low 32 bits and a generation in the high 32.
// The zero Entity is never handed out, and a recycled slot gets a new
// generation so stale handles stop matching.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID         { return entityID(e) }
func (e Entity) generation() generation { return generation(e >> 32) }

// Compare orders entities by slot, which is creation order for a world that
// has not recycled any slot. Zone reports follow this order.
func (e Entity) Compare(o Entity) int {
	return cmp.Compare(e.id(), o.id())
}

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() != 0
}
