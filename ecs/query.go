package ecs

import (
	"slices"

	"github.com/milk9111/roadtrip/ecs/component"
)

// ForEach visits every entity carrying kind, in ascending entity order.
// Components added or removed during the visit are not reflected until the
// next call.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range snapshot(w.store(kind.ID(), false)) {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits every entity carrying both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	if sa == nil || sb == nil {
		return
	}
	if sb.Len() < sa.Len() {
		sa = sb
	}
	for _, e := range snapshot(sa) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// First returns the lowest entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	ents := snapshot(w.store(kind.ID(), false))
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func snapshot(s *SparseSet) []Entity {
	if s.Len() == 0 {
		return nil
	}
	out := slices.Clone(s.Entities())
	slices.SortFunc(out, Entity.Compare)
	return out
}
