package system

import (
	"github.com/milk9111/roadtrip/ecs"
	"github.com/milk9111/roadtrip/ecs/component"
)

// DriveSystem applies the frame's input to the car and moves it one tick.
type DriveSystem struct{}

func NewDriveSystem() *DriveSystem { return &DriveSystem{} }

func (ds *DriveSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.CarComponent.Kind(), component.DriveInputComponent.Kind(), func(_ ecs.Entity, ref *component.Car, in *component.DriveInput) {
		car := ref.Car
		if car == nil {
			return
		}
		if !car.Enabled() {
			in.Turn = 0
			return
		}
		if in.Turn != 0 {
			car.Steer(in.Turn)
			in.Turn = 0
		}
		car.SetSpeed(in.Throttle)
		car.Advance()
	})
}
