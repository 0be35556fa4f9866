package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/roadtrip/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestRecycledSlotRejectsStaleHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh == old {
		t.Fatalf("recycled entity should carry a new generation")
	}
	if _, ok := Get(w, fresh, h.Kind()); ok {
		t.Fatalf("recycled entity must not inherit components")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
		{
			name:  "pointer_is_shared",
			setup: func() error { return Add(w, e2, h1.Kind(), intPtr(1)) },
			check: func(t *testing.T) {
				v, _ := Get(w, e2, h1.Kind())
				*v = 7
				again, _ := Get(w, e2, h1.Kind())
				if *again != 7 {
					t.Fatalf("expected mutation through pointer, got %d", *again)
				}
			},
			teardown: func() bool { return Remove(w, e2, h1.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	if err := Add[int](w, e1, h1.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var ents []Entity
	ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })

	if len(ents) != 2 || ents[0] != e1 || ents[1] != e3 {
		t.Fatalf("expected [e1 e3] in entity order, got %v", ents)
	}
	if _, ok := toSet(ents)[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
	if first, ok := First(w, h.Kind()); !ok || first != e1 {
		t.Fatalf("expected First to return e1, got %v ok=%v", first, ok)
	}
}

func TestForEach2(t *testing.T) {
	tests := []struct {
		name string
		a    []bool
		b    []bool
		want []int
	}{
		{name: "intersection", a: []bool{true, true, false}, b: []bool{true, false, true}, want: []int{0}},
		{name: "all", a: []bool{true, true}, b: []bool{true, true}, want: []int{0, 1}},
		{name: "none", a: []bool{true, false}, b: []bool{false, true}, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			ka := component.NewComponent[int]().Kind()
			kb := component.NewComponent[string]().Kind()

			ents := make([]Entity, len(tc.a))
			for i := range tc.a {
				ents[i] = CreateEntity(w)
				if tc.a[i] {
					_ = Add(w, ents[i], ka, intPtr(i))
				}
				if tc.b[i] {
					_ = Add(w, ents[i], kb, stringPtr("x"))
				}
			}

			var got []int
			ForEach2(w, ka, kb, func(e Entity, a *int, _ *string) { got = append(got, *a) })
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestSchedulerRunsInOrder(t *testing.T) {
	var order []string
	s := NewScheduler(
		systemFunc(func(*World) { order = append(order, "a") }),
		nil,
		systemFunc(func(*World) { order = append(order, "b") }),
	)
	s.Update(NewWorld())
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestSchedulerOrdersByPhase(t *testing.T) {
	var order []string
	s := NewScheduler(systemFunc(func(*World) { order = append(order, "drive") }))
	s.Add(PhaseAnimate, systemFunc(func(*World) { order = append(order, "anim") }))
	s.Add(PhaseTrigger, systemFunc(func(*World) { order = append(order, "zone") }))
	s.Add(PhaseMotion, systemFunc(func(*World) { order = append(order, "push") }))
	s.Update(NewWorld())

	want := []string{"drive", "push", "zone", "anim"}
	if len(order) != len(want) {
		t.Fatalf("unexpected order %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order %v", order)
		}
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d", s.Len())
	}
}

func TestEntityCompareAndString(t *testing.T) {
	a, b := makeEntity(1, 3), makeEntity(2, 1)
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Fatalf("compare %v %v", a, b)
	}
	if got := a.String(); got != "1v3" {
		t.Fatalf("String() = %q", got)
	}
	if Entity(0).Valid() {
		t.Fatal("zero entity is valid")
	}
}

type systemFunc func(*World)

func (f systemFunc) Update(w *World) { f(w) }

func TestComponentKindName(t *testing.T) {
	k := component.NewComponent[component.Transform]().Kind()
	if got := k.Name(); got != "component.Transform" {
		t.Fatalf("Name() = %q", got)
	}
	if a, b := component.NewComponent[int]().Kind(), component.NewComponent[int]().Kind(); a.ID() == b.ID() {
		t.Fatalf("kinds of the same type share id %d", a.ID())
	}
}
