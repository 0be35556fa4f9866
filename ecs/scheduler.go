package ecs

import "slices"

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// Phase groups systems within a tick. Lower phases run first.
type Phase int

const (
	PhaseMotion Phase = iota
	PhaseTrigger
	PhaseAnimate
)

type scheduled struct {
	phase  Phase
	system System
}

// Scheduler runs systems by phase, and in registration order within a phase.
type Scheduler struct {
	systems []scheduled
}

// NewScheduler registers systems in PhaseMotion.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(PhaseMotion, sys)
	}
	return s
}

func (s *Scheduler) Add(phase Phase, system System) {
	if system == nil {
		return
	}
	i, _ := slices.BinarySearchFunc(s.systems, phase+1, func(e scheduled, p Phase) int {
		return int(e.phase - p)
	})
	s.systems = slices.Insert(s.systems, i, scheduled{phase: phase, system: system})
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, e := range s.systems {
		e.system.Update(w)
	}
}

func (s *Scheduler) Len() int {
	return len(s.systems)
}
