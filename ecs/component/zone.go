package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadtrip/obj"
)

// Zone is the pair of trigger volumes around an object. The In flags hold
// what the car overlapped on the last report.
type Zone struct {
	Outer   cp.BB
	Inner   cp.BB
	InOuter bool
	InInner bool
}

var ZoneComponent = NewComponent[Zone]()

// Trigger links an entity to the object receiving its zone callbacks.
type Trigger struct {
	Object obj.TriggerZone
}

var TriggerComponent = NewComponent[Trigger]()
