package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/cbodonnell/pixelquest/pkg/log"
)

// Engine is one running game instance. It owns the scene manager, event
// bus, registry, physics world and frame loop.
type Engine struct {
	config   config.Config
	scenes   *SceneManager
	events   *EventBus
	registry *Registry
	physics  *World
	loop     *Loop

	lock          sync.RWMutex
	running       bool
	destroyed     bool
	canvasRemoved bool
}

// New validates cfg and creates every configured scene through its factory.
func New(cfg config.Config, factories map[string]SceneFactory) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg = cfg.Copy()

	scenes, err := newSceneManager(cfg.Scenes, factories)
	if err != nil {
		return nil, fmt.Errorf("failed to register scenes: %w", err)
	}

	return &Engine{
		config:   cfg,
		scenes:   scenes,
		events:   NewEventBus(),
		registry: NewRegistry(),
		physics:  NewWorld(cfg.Width, cfg.Height, cfg.Physics),
		loop:     NewLoop(cfg.FPS.Target),
	}, nil
}

// Boot marks the engine running and starts the first configured scene.
func (e *Engine) Boot() error {
	e.lock.Lock()
	if e.destroyed {
		e.lock.Unlock()
		return ErrDestroyed
	}
	if e.running {
		e.lock.Unlock()
		return nil
	}
	e.running = true
	e.lock.Unlock()

	e.events.Emit(EventReady, nil)

	first := e.config.Scenes[0]
	if err := e.scenes.Start(first, nil); err != nil {
		return fmt.Errorf("failed to start scene %s: %w", first, err)
	}
	log.Debug("Engine booted with scene %s", first)
	return nil
}

// Update advances one frame: running scenes in render order, then physics.
func (e *Engine) Update(now time.Time) error {
	if !e.IsRunning() {
		return nil
	}
	dt := e.loop.Tick(now)
	for _, rec := range e.scenes.running() {
		if err := rec.scene.Update(dt); err != nil {
			return fmt.Errorf("failed to update scene %s: %w", rec.key, err)
		}
	}
	e.physics.Step(dt)
	return nil
}

// Destroy stops every scene, emits EventDestroy, removes all listeners
// and clears the registry. Calling it again does nothing.
func (e *Engine) Destroy(removeCanvas bool) {
	e.lock.Lock()
	if e.destroyed {
		e.lock.Unlock()
		return
	}
	e.destroyed = true
	e.running = false
	e.canvasRemoved = removeCanvas
	e.lock.Unlock()

	e.scenes.stopAll()
	e.events.Emit(EventDestroy, nil)
	e.events.RemoveAll()
	e.registry.Reset()
}

func (e *Engine) IsRunning() bool {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.running
}

func (e *Engine) IsDestroyed() bool {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.destroyed
}

// CanvasRemoved reports whether Destroy asked for the output surface to be released.
func (e *Engine) CanvasRemoved() bool {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.canvasRemoved
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.config.Copy()
}

func (e *Engine) Scenes() *SceneManager {
	return e.scenes
}

func (e *Engine) Events() *EventBus {
	return e.events
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

func (e *Engine) Physics() *World {
	return e.physics
}

func (e *Engine) Loop() *Loop {
	return e.loop
}
