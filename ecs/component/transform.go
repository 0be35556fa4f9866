package component

import "github.com/jakecoffman/cp"

type Transform struct {
	Pos cp.Vector
	Dir int
}

var TransformComponent = NewComponent[Transform]()
