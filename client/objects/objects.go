package objects

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameObject is the highest level interface for game related types.
type GameObject interface {
	Lifecycle

	GetID() string
	GetZIndex() int
	GetParent() GameObject
	SetParent(parent GameObject)
	GetChildren() []GameObject
	AddChild(id string, child GameObject) error
	RemoveChild(id string) error
	RemoveFromParent() error
}

// ObjectMap keeps child objects indexed by id in insertion order.
type ObjectMap struct {
	idxIDObjects map[string]GameObject
	ordered      []GameObject
}

func NewObjectMap() *ObjectMap {
	return &ObjectMap{
		idxIDObjects: make(map[string]GameObject),
		ordered:      make([]GameObject, 0),
	}
}

func (m *ObjectMap) Add(id string, obj GameObject) {
	m.idxIDObjects[id] = obj
	m.ordered = append(m.ordered, obj)
}

func (m *ObjectMap) Get(id string) GameObject {
	return m.idxIDObjects[id]
}

func (m *ObjectMap) Remove(id string) {
	obj, ok := m.idxIDObjects[id]
	if !ok {
		return
	}
	delete(m.idxIDObjects, id)
	if i := slices.Index(m.ordered, obj); i >= 0 {
		m.ordered = slices.Delete(m.ordered, i, i+1)
	}
}

func (m *ObjectMap) Len() int {
	return len(m.ordered)
}

// BaseObject implements the tree bookkeeping of a GameObject. Concrete
// objects embed it and override the lifecycle methods they need.
type BaseObject struct {
	id       string
	zIndex   int
	parent   GameObject
	children *ObjectMap
}

type NewBaseObjectOpts struct {
	// ZIndex orders siblings when drawing; lower values draw first.
	ZIndex int
}

var _ GameObject = &BaseObject{}

func NewBaseObject(id string, opts *NewBaseObjectOpts) *BaseObject {
	if opts == nil {
		opts = &NewBaseObjectOpts{}
	}
	return &BaseObject{
		id:       id,
		zIndex:   opts.ZIndex,
		children: NewObjectMap(),
	}
}

func (o *BaseObject) Init() error { return nil }
func (o *BaseObject) Destroy() error { return nil }
func (o *BaseObject) Update(dt float64) error { return nil }
func (o *BaseObject) Draw(screen *ebiten.Image) {}
func (o *BaseObject) GetID() string { return o.id }
func (o *BaseObject) GetZIndex() int { return o.zIndex }
func (o *BaseObject) GetParent() GameObject { return o.parent }
func (o *BaseObject) SetParent(parent GameObject) { o.parent = parent }

func (o *BaseObject) GetChildren() []GameObject {
	return o.children.ordered
}

// AddChild initializes the child's tree and attaches it.
func (o *BaseObject) AddChild(id string, child GameObject) error {
	if _, ok := o.children.idxIDObjects[id]; ok {
		return fmt.Errorf("child object with id %s already exists", id)
	}
	if err := InitTree(child); err != nil {
		return fmt.Errorf("failed to initialize child object tree: %v", err)
	}
	o.children.Add(id, child)
	child.SetParent(o)
	return nil
}

// RemoveChild destroys the child's tree and detaches it.
func (o *BaseObject) RemoveChild(id string) error {
	child := o.children.Get(id)
	if child == nil {
		return fmt.Errorf("child object with id %s does not exist", id)
	}
	if err := DestroyTree(child); err != nil {
		return fmt.Errorf("failed to destroy child object tree: %v", err)
	}
	o.children.Remove(id)
	child.SetParent(nil)
	return nil
}

func (o *BaseObject) RemoveFromParent() error {
	if o.parent == nil {
		return fmt.Errorf("object %s has no parent", o.id)
	}
	return o.parent.RemoveChild(o.id)
}

// InitTree initializes obj and then its children.
func InitTree(obj GameObject) error {
	if err := obj.Init(); err != nil {
		return fmt.Errorf("failed to initialize object %s: %v", obj.GetID(), err)
	}
	for _, child := range slices.Clone(obj.GetChildren()) {
		if err := InitTree(child); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTree updates obj and then its children. Children may remove
// themselves while updating.
func UpdateTree(obj GameObject, dt float64) error {
	if err := obj.Update(dt); err != nil {
		return fmt.Errorf("failed to update object %s: %v", obj.GetID(), err)
	}
	for _, child := range slices.Clone(obj.GetChildren()) {
		if err := UpdateTree(child, dt); err != nil {
			return err
		}
	}
	return nil
}

// DrawTree draws obj below its children.
func DrawTree(obj GameObject, screen *ebiten.Image) {
	obj.Draw(screen)
	for _, child := range obj.GetChildren() {
		DrawTree(child, screen)
	}
}

// DestroyTree destroys the children before obj.
func DestroyTree(obj GameObject) error {
	for _, child := range slices.Clone(obj.GetChildren()) {
		if err := DestroyTree(child); err != nil {
			return err
		}
	}
	if err := obj.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy object %s: %v", obj.GetID(), err)
	}
	return nil
}
