package component

import "github.com/milk9111/roadtrip/anim"

type Animation struct {
	Player *anim.Player
}

var AnimationComponent = NewComponent[Animation]()
