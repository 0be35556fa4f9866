package component

import "github.com/milk9111/roadtrip/vehicle"

// Car marks the entity carrying the player's car.
type Car struct {
	Car *vehicle.Car
}

var CarComponent = NewComponent[Car]()

// DriveInput is the steering intent for the current frame. Turn is consumed
// by the drive system; Throttle persists.
type DriveInput struct {
	Throttle float64
	Turn     int
}

var DriveInputComponent = NewComponent[DriveInput]()
