package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData links an entity to its collision object. The object's Data
// field points back at the entity's entry.
type ObjectData struct {
	*resolv.Object
}

// Center returns the middle of the object's bounds.
func (o *ObjectData) Center() (x, y float64) {
	return o.X + o.W/2, o.Y + o.H/2
}

var Object = donburi.NewComponentType[ObjectData]()
