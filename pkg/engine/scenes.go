package engine

import (
	"fmt"
	"sync"

	"github.com/cbodonnell/pixelquest/pkg/log"
)

// Data is the optional payload handed to a scene when it starts.
type Data map[string]any

// Scene is an independently startable unit of the game. The engine calls
// Init when the scene starts, Update once per frame while it runs and
// Destroy when it stops.
type Scene interface {
	Init(data Data) error
	Update(dt float64) error
	Destroy() error
}

// SceneFactory creates the scene instance registered under a key.
type SceneFactory func() (Scene, error)

type SceneStatus int

const (
	SceneStatusPending SceneStatus = iota
	SceneStatusRunning
	SceneStatusPaused
	SceneStatusStopped
)

func (s SceneStatus) String() string {
	switch s {
	case SceneStatusPending:
		return "Pending"
	case SceneStatusRunning:
		return "Running"
	case SceneStatusPaused:
		return "Paused"
	case SceneStatusStopped:
		return "Stopped"
	}
	return "Unknown"
}

type sceneRecord struct {
	key    string
	scene  Scene
	status SceneStatus
}

func (r *sceneRecord) started() bool {
	return r.status == SceneStatusRunning || r.status == SceneStatusPaused
}

// SceneManager owns the registered scenes. Their registration order is
// also their update and render order.
type SceneManager struct {
	lock  sync.RWMutex
	order []*sceneRecord
	byKey map[string]*sceneRecord
}

func newSceneManager(keys []string, factories map[string]SceneFactory) (*SceneManager, error) {
	m := &SceneManager{
		order: make([]*sceneRecord, 0, len(keys)),
		byKey: make(map[string]*sceneRecord, len(keys)),
	}
	for _, key := range keys {
		factory, ok := factories[key]
		if !ok || factory == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScene, key)
		}
		scene, err := factory()
		if err != nil {
			return nil, fmt.Errorf("failed to create scene %s: %w", key, err)
		}
		if scene == nil {
			return nil, fmt.Errorf("scene factory for %s returned nil", key)
		}
		rec := &sceneRecord{key: key, scene: scene, status: SceneStatusPending}
		m.order = append(m.order, rec)
		m.byKey[key] = rec
	}
	return m, nil
}

// Launch starts the scene alongside any running scenes. Launching a scene
// that is already running or paused does nothing.
func (m *SceneManager) Launch(key string, data Data) error {
	return m.activate(key, data, false)
}

// Start starts the scene, restarting it with the new data if it is already
// running. Other scenes are left as they are.
func (m *SceneManager) Start(key string, data Data) error {
	return m.activate(key, data, true)
}

func (m *SceneManager) activate(key string, data Data, restart bool) error {
	m.lock.Lock()
	rec, ok := m.byKey[key]
	if !ok {
		m.lock.Unlock()
		return fmt.Errorf("%w: %s", ErrSceneNotFound, key)
	}
	wasStarted := rec.started()
	if wasStarted && !restart {
		m.lock.Unlock()
		return nil
	}
	// Marked before Init so that callbacks into the manager see the scene as active.
	rec.status = SceneStatusRunning
	m.lock.Unlock()

	if wasStarted {
		log.Debug("Restarting scene %s", key)
		if err := rec.scene.Destroy(); err != nil {
			m.setStatus(rec, SceneStatusStopped)
			return fmt.Errorf("failed to destroy scene %s before restart: %w", key, err)
		}
	}

	if data == nil {
		data = Data{}
	}
	if err := rec.scene.Init(data); err != nil {
		m.setStatus(rec, SceneStatusStopped)
		return fmt.Errorf("failed to initialize scene %s: %w", key, err)
	}
	return nil
}

// Stop shuts the scene down if it is running or paused.
func (m *SceneManager) Stop(key string) error {
	m.lock.Lock()
	rec, ok := m.byKey[key]
	if !ok {
		m.lock.Unlock()
		return fmt.Errorf("%w: %s", ErrSceneNotFound, key)
	}
	if !rec.started() {
		m.lock.Unlock()
		return nil
	}
	rec.status = SceneStatusStopped
	m.lock.Unlock()

	if err := rec.scene.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy scene %s: %w", key, err)
	}
	return nil
}

// Pause keeps a running scene registered as started but skips its updates.
func (m *SceneManager) Pause(key string) error {
	return m.transition(key, SceneStatusRunning, SceneStatusPaused)
}

// Resume continues a paused scene.
func (m *SceneManager) Resume(key string) error {
	return m.transition(key, SceneStatusPaused, SceneStatusRunning)
}

func (m *SceneManager) transition(key string, from, to SceneStatus) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	rec, ok := m.byKey[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, key)
	}
	if rec.status != from {
		return fmt.Errorf("scene %s is %s, not %s", key, rec.status, from)
	}
	rec.status = to
	return nil
}

// IsActive reports whether the scene is running.
func (m *SceneManager) IsActive(key string) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	rec, ok := m.byKey[key]
	return ok && rec.status == SceneStatusRunning
}

// Status returns the scene status and whether the key is registered.
func (m *SceneManager) Status(key string) (SceneStatus, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	rec, ok := m.byKey[key]
	if !ok {
		return SceneStatusPending, false
	}
	return rec.status, true
}

// Active returns the topmost running scene in render order, or nil.
func (m *SceneManager) Active() Scene {
	m.lock.RLock()
	defer m.lock.RUnlock()
	for i := len(m.order) - 1; i >= 0; i-- {
		if m.order[i].status == SceneStatusRunning {
			return m.order[i].scene
		}
	}
	return nil
}

// ActiveKeys returns the keys of running scenes in render order.
func (m *SceneManager) ActiveKeys() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	keys := make([]string, 0, len(m.order))
	for _, rec := range m.order {
		if rec.status == SceneStatusRunning {
			keys = append(keys, rec.key)
		}
	}
	return keys
}

// Started returns the running and paused scenes in render order.
func (m *SceneManager) Started() []Scene {
	m.lock.RLock()
	defer m.lock.RUnlock()
	scenes := make([]Scene, 0, len(m.order))
	for _, rec := range m.order {
		if rec.started() {
			scenes = append(scenes, rec.scene)
		}
	}
	return scenes
}

// Get returns the scene registered under key, or nil.
func (m *SceneManager) Get(key string) Scene {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if rec, ok := m.byKey[key]; ok {
		return rec.scene
	}
	return nil
}

// Keys returns every registered key in registration order.
func (m *SceneManager) Keys() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	keys := make([]string, len(m.order))
	for i, rec := range m.order {
		keys[i] = rec.key
	}
	return keys
}

func (m *SceneManager) running() []*sceneRecord {
	m.lock.RLock()
	defer m.lock.RUnlock()
	recs := make([]*sceneRecord, 0, len(m.order))
	for _, rec := range m.order {
		if rec.status == SceneStatusRunning {
			recs = append(recs, rec)
		}
	}
	return recs
}

func (m *SceneManager) stopAll() {
	for i := len(m.order) - 1; i >= 0; i-- {
		if err := m.Stop(m.order[i].key); err != nil {
			log.Error("Failed to stop scene during teardown: %v", err)
		}
	}
}

func (m *SceneManager) setStatus(rec *sceneRecord, status SceneStatus) {
	m.lock.Lock()
	defer m.lock.Unlock()
	rec.status = status
}
