package engine

import (
	"math"
	"slices"
	"sync"

	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/cbodonnell/pixelquest/pkg/kinematic"
	"github.com/solarlune/resolv"
)

const (
	// TagStatic marks immovable bodies that dynamic bodies collide with
	TagStatic = "static"
	// TagDynamic marks bodies moved by the physics step
	TagDynamic = "dynamic"
	// TagBounds marks the world boundary walls
	TagBounds = "bounds"
	// TagSensor marks immovable bodies that report overlaps without blocking
	TagSensor = "sensor"

	cellSize      = 16
	wallThickness = 16
)

// DebugFlags control physics debug drawing.
type DebugFlags struct {
	Debug          bool
	ShowBody       bool
	ShowStaticBody bool
	ShowVelocity   bool
}

// Blocked records which sides of a body touched a static body during the last step.
type Blocked struct {
	Left, Right, Up, Down bool
}

// Body is an axis-aligned box simulated by the arcade world.
type Body struct {
	Position kinematic.Vector
	Velocity kinematic.Vector
	Width    float64
	Height   float64
	Static   bool
	Sensor   bool
	Blocked  Blocked
	Object   *resolv.Object
}

// Center returns the center point of the body.
func (b *Body) Center() kinematic.Vector {
	return kinematic.Vector{X: b.Position.X + b.Width/2, Y: b.Position.Y + b.Height/2}
}

func (b *Body) overlaps(o *Body) bool {
	return b.Position.X < o.Position.X+o.Width &&
		o.Position.X < b.Position.X+b.Width &&
		b.Position.Y < o.Position.Y+o.Height &&
		o.Position.Y < b.Position.Y+b.Height
}

func (b *Body) syncObject() {
	b.Object.Position.X = b.Position.X
	b.Object.Position.Y = b.Position.Y
	b.Object.Update()
}

// World is an arcade physics world backed by a resolv collision space.
type World struct {
	lock        sync.RWMutex
	space       *resolv.Space
	width       int
	height      int
	gravity     kinematic.Vector
	maxVelocity float64
	debug       DebugFlags
	bodies      []*Body
	byObject    map[*resolv.Object]*Body
}

// NewWorld creates a world the size of the game with static walls along its edges.
func NewWorld(width, height int, cfg config.PhysicsConfig) *World {
	w := &World{
		space:       resolv.NewSpace(width, height, cellSize, cellSize),
		width:       width,
		height:      height,
		gravity:     kinematic.Vector{X: 0, Y: cfg.GravityY},
		maxVelocity: cfg.MaxVelocity,
		debug: DebugFlags{
			Debug:          cfg.Debug,
			ShowBody:       cfg.DebugShowBody,
			ShowStaticBody: cfg.DebugShowStaticBody,
			ShowVelocity:   cfg.DebugShowVelocity,
		},
		byObject: make(map[*resolv.Object]*Body),
	}
	fw, fh := float64(width), float64(height)
	w.AddBody(0, 0, fw, wallThickness, true, TagBounds)
	w.AddBody(0, fh-wallThickness, fw, wallThickness, true, TagBounds)
	w.AddBody(0, wallThickness, wallThickness, fh-2*wallThickness, true, TagBounds)
	w.AddBody(fw-wallThickness, wallThickness, wallThickness, fh-2*wallThickness, true, TagBounds)
	return w
}

// AddBody adds a box at (x, y) with the given size. Static bodies never move.
func (w *World) AddBody(x, y, width, height float64, static bool, tags ...string) *Body {
	kind := TagDynamic
	if static {
		kind = TagStatic
	}
	body := &Body{
		Position: kinematic.Vector{X: x, Y: y},
		Width:    width,
		Height:   height,
		Static:   static,
		Object:   resolv.NewObject(x, y, width, height, append([]string{kind}, tags...)...),
	}
	w.add(body)
	return body
}

// AddSensor adds an immovable box that dynamic bodies pass through. Use
// Overlapping to detect contact with it.
func (w *World) AddSensor(x, y, width, height float64, tags ...string) *Body {
	body := &Body{
		Position: kinematic.Vector{X: x, Y: y},
		Width:    width,
		Height:   height,
		Static:   true,
		Sensor:   true,
		Object:   resolv.NewObject(x, y, width, height, append([]string{TagSensor}, tags...)...),
	}
	w.add(body)
	return body
}

func (w *World) add(body *Body) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.space.Add(body.Object)
	w.bodies = append(w.bodies, body)
	w.byObject[body.Object] = body
}

// RemoveBody takes the body out of the world.
func (w *World) RemoveBody(body *Body) {
	w.lock.Lock()
	defer w.lock.Unlock()
	idx := slices.Index(w.bodies, body)
	if idx < 0 {
		return
	}
	w.space.Remove(body.Object)
	w.bodies = slices.Delete(w.bodies, idx, idx+1)
	delete(w.byObject, body.Object)
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return slices.Clone(w.bodies)
}

// Step advances every dynamic body by dt seconds. Movement is resolved one
// axis at a time so a body can slide along a wall.
func (w *World) Step(dt float64) {
	w.lock.Lock()
	defer w.lock.Unlock()

	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		b.Blocked = Blocked{}

		// X-axis
		vx := kinematic.Clamp(b.Velocity.X, w.maxVelocity)
		dx := kinematic.Displacement(vx, dt, w.gravity.X)
		vx = kinematic.Clamp(kinematic.FinalVelocity(vx, dt, w.gravity.X), w.maxVelocity)
		if contact, ok := w.contact(b, dx, 0); ok {
			dx = contact.X
			if vx > 0 {
				b.Blocked.Right = true
			} else if vx < 0 {
				b.Blocked.Left = true
			}
			vx = 0
		}
		b.Position.X += dx
		b.syncObject()

		// Y-axis
		vy := kinematic.Clamp(b.Velocity.Y, w.maxVelocity)
		dy := kinematic.Displacement(vy, dt, w.gravity.Y)
		vy = kinematic.Clamp(kinematic.FinalVelocity(vy, dt, w.gravity.Y), w.maxVelocity)
		if contact, ok := w.contact(b, 0, dy); ok {
			dy = contact.Y
			if vy > 0 {
				b.Blocked.Down = true
			} else if vy < 0 {
				b.Blocked.Up = true
			}
			vy = 0
		}
		b.Position.Y += dy
		b.syncObject()

		b.Velocity = kinematic.Vector{X: vx, Y: vy}
	}
}

// contact returns the movement that brings b flush against the nearest
// static body it would hit when moved by (dx, dy).
func (w *World) contact(b *Body, dx, dy float64) (resolv.Vector, bool) {
	if dx == 0 && dy == 0 {
		return resolv.Vector{}, false
	}
	collision := b.Object.Check(dx, dy, TagStatic)
	if collision == nil {
		return resolv.Vector{}, false
	}
	moved := Body{
		Position: kinematic.Vector{X: b.Position.X + dx, Y: b.Position.Y + dy},
		Width:    b.Width,
		Height:   b.Height,
	}
	var (
		best  resolv.Vector
		found bool
	)
	for _, obj := range collision.Objects {
		other, ok := w.byObject[obj]
		if !ok || !moved.overlaps(other) {
			continue
		}
		c := collision.ContactWithObject(obj)
		if !found || math.Abs(c.X)+math.Abs(c.Y) < math.Abs(best.X)+math.Abs(best.Y) {
			best = c
			found = true
		}
	}
	return best, found
}

// Overlapping returns the bodies carrying any of tags that overlap body.
func (w *World) Overlapping(body *Body, tags ...string) []*Body {
	w.lock.RLock()
	defer w.lock.RUnlock()

	collision := body.Object.Check(0, 0, tags...)
	if collision == nil {
		return nil
	}
	var hits []*Body
	for _, obj := range collision.Objects {
		other, ok := w.byObject[obj]
		if !ok || other == body || !body.overlaps(other) {
			continue
		}
		hits = append(hits, other)
	}
	return hits
}

// SetDebug sets all four debug flags to enabled.
func (w *World) SetDebug(enabled bool) {
	w.SetDebugFlags(DebugFlags{
		Debug:          enabled,
		ShowBody:       enabled,
		ShowStaticBody: enabled,
		ShowVelocity:   enabled,
	})
}

func (w *World) SetDebugFlags(flags DebugFlags) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.debug = flags
}

func (w *World) DebugFlags() DebugFlags {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return w.debug
}

func (w *World) Gravity() kinematic.Vector {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return w.gravity
}

func (w *World) SetGravity(gravity kinematic.Vector) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.gravity = gravity
}

func (w *World) MaxVelocity() float64 {
	w.lock.RLock()
	defer w.lock.RUnlock()
	return w.maxVelocity
}

func (w *World) SetMaxVelocity(limit float64) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.maxVelocity = limit
}

// Size returns the world width and height.
func (w *World) Size() (int, int) {
	return w.width, w.height
}
