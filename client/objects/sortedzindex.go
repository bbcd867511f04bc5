package objects

import (
	"fmt"
	"slices"
)

// SortedZIndexObject keeps its children ordered by z-index so that drawing
// and updating walk them back to front. Children with equal z-index keep
// insertion order.
type SortedZIndexObject struct {
	*BaseObject

	sorted []GameObject
}

var _ GameObject = &SortedZIndexObject{}

func NewSortedZIndexObject(id string) *SortedZIndexObject {
	return &SortedZIndexObject{
		BaseObject: NewBaseObject(id, nil),
		sorted:     []GameObject{},
	}
}

func (o *SortedZIndexObject) AddChild(id string, child GameObject) error {
	if o.children.Get(id) != nil {
		return fmt.Errorf("child object with id %s already exists", id)
	}
	if err := InitTree(child); err != nil {
		return fmt.Errorf("failed to initialize child object tree: %v", err)
	}
	o.children.Add(id, child)
	child.SetParent(o)

	i := slices.IndexFunc(o.sorted, func(obj GameObject) bool {
		return obj.GetZIndex() > child.GetZIndex()
	})
	if i < 0 {
		i = len(o.sorted)
	}
	o.sorted = slices.Insert(o.sorted, i, child)
	return nil
}

func (o *SortedZIndexObject) RemoveChild(id string) error {
	child := o.children.Get(id)
	if child == nil {
		return fmt.Errorf("child object with id %s does not exist", id)
	}
	if err := DestroyTree(child); err != nil {
		return fmt.Errorf("failed to destroy child object tree: %v", err)
	}
	o.children.Remove(id)
	child.SetParent(nil)
	o.sorted = slices.DeleteFunc(o.sorted, func(obj GameObject) bool {
		return obj.GetID() == id
	})
	return nil
}

func (o *SortedZIndexObject) GetChildren() []GameObject {
	return o.sorted
}
