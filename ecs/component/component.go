// Package component holds the data attached to map entities: the car, the
// trigger zones and what draws them.
package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is the typed key a component is stored under. Each call to
// NewComponent yields a distinct kind, even for the same T.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }

// Name is the Go type the kind stores, for logs and errors.
func (k ComponentKind[T]) Name() string {
	if k.name == "" {
		return "component#" + fmt.Sprint(k.id)
	}
	return k.name
}

func (k ComponentKind[T]) String() string { return k.Name() }

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	var zero T
	return ComponentHandle[T]{kind: ComponentKind[T]{
		id:   ComponentID(nextComponentID.Add(1)),
		name: fmt.Sprintf("%T", zero),
	}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
