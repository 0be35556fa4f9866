package system

import (
	"github.com/milk9111/roadtrip/ecs"
	"github.com/milk9111/roadtrip/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

// Update advances every clip by one tick at 60 TPS.
func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, anim *component.Animation) {
		if anim.Player == nil {
			return
		}
		anim.Player.Tick()
	})
}
