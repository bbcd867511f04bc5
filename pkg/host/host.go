// Package host owns the game engine handle and exposes the operations the
// rest of the program uses to drive it: lifecycle, configuration, scenes,
// the shared game state and game events.
package host

import (
	"errors"
	"maps"
	"math"
	"sync"

	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/kinematic"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/cbodonnell/pixelquest/pkg/queue"
	"github.com/cbodonnell/pixelquest/pkg/repositories"
)

var (
	// ErrNotInitialized is returned by operations that need an engine when there is none.
	ErrNotInitialized = errors.New("game not initialized")
	// ErrNoRepository is returned by save operations when no repository is configured.
	ErrNoRepository = errors.New("no save repository configured")
)

const notInitialized = "Game not initialized"

// Dimensions is the configured game size in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type NewHostOptions struct {
	// Config is the base configuration. Zero value means config.Default().
	Config *config.Config
	// Repository stores save slots. Optional.
	Repository repositories.Repository
	// SaveSlot is the slot used by SaveGameState and LoadGameState.
	SaveSlot string
	// CommandQueueSize bounds the number of pending commands.
	CommandQueueSize int
}

// Host owns at most one engine at a time together with the configuration
// it is built from.
type Host struct {
	// initLock serializes Initialize. Scene factories and callbacks run
	// while it is held, so they may call any method but Initialize.
	initLock sync.Mutex

	lock      sync.RWMutex
	config    config.Config
	game      *engine.Engine
	factories map[string]engine.SceneFactory

	// stateLock serializes game state read-modify-write cycles. It is never
	// held while listeners run.
	stateLock sync.Mutex

	repository repositories.Repository
	saveSlot   string
	commands   queue.Queue[Command]
}

func New(opts NewHostOptions) *Host {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = opts.Config.Copy()
	}
	saveSlot := opts.SaveSlot
	if saveSlot == "" {
		saveSlot = constants.DefaultSaveSlot
	}
	return &Host{
		config:     cfg,
		factories:  make(map[string]engine.SceneFactory),
		repository: opts.Repository,
		saveSlot:   saveSlot,
		commands:   queue.NewInMemoryQueue[Command](opts.CommandQueueSize),
	}
}

// RegisterScene sets the factory used to create the scene key when the
// engine is initialized.
func (h *Host) RegisterScene(key string, factory engine.SceneFactory) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.factories[key] = factory
}

// Initialize creates and boots the engine. If an engine already exists it
// is returned unchanged. Concurrent callers wait for the first one to finish
// booting and get the same engine.
func (h *Host) Initialize() (*engine.Engine, error) {
	h.initLock.Lock()
	defer h.initLock.Unlock()

	h.lock.RLock()
	existing := h.game
	cfg := h.config.Copy()
	factories := maps.Clone(h.factories)
	h.lock.RUnlock()
	if existing != nil {
		log.Warn("Game is already initialized")
		return existing, nil
	}

	// Factories read the host, so h.lock must not be held here.
	game, err := engine.New(cfg, factories)
	if err != nil {
		log.Error("Failed to initialize game: %v", err)
		return nil, err
	}

	// Published before Boot so the first scene can drive the host from Init.
	h.lock.Lock()
	h.game = game
	h.lock.Unlock()

	if err := game.Boot(); err != nil {
		log.Error("Failed to initialize game: %v", err)
		h.Destroy()
		return nil, err
	}
	log.Info("Pixel Quest initialized successfully")
	return game, nil
}

// Game returns the current engine, or nil.
func (h *Host) Game() *engine.Engine {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.game
}

// Destroy tears down the engine and releases the handle. It does nothing
// when there is no engine.
func (h *Host) Destroy() {
	h.lock.Lock()
	game := h.game
	h.game = nil
	h.lock.Unlock()
	if game == nil {
		return
	}
	game.Destroy(true)
	h.commands.ClearQueue()
	log.Info("Game instance destroyed")
}

// requireGame returns the engine or logs that there is none.
func (h *Host) requireGame() *engine.Engine {
	game := h.Game()
	if game == nil {
		log.Error(notInitialized)
	}
	return game
}

// Config returns the configuration record.
func (h *Host) Config() config.Config {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.config.Copy()
}

// UpdateConfig shallow-merges p into the configuration record. A nested
// section in p replaces the whole section. The running engine keeps the
// configuration it was built with.
func (h *Host) UpdateConfig(p config.Patch) {
	h.lock.Lock()
	h.config = h.config.Apply(p)
	h.lock.Unlock()
	log.Info("Game configuration updated")
}

// UpdatePhysicsConfig changes single physics fields. The running physics
// world picks up the new gravity, velocity cap and debug flags.
func (h *Host) UpdatePhysicsConfig(p config.PhysicsPatch) {
	h.lock.Lock()
	h.config = h.config.ApplyPhysics(p)
	physics := h.config.Physics
	game := h.game
	h.lock.Unlock()

	if game != nil {
		world := game.Physics()
		world.SetGravity(kinematic.Vector{X: 0, Y: physics.GravityY})
		world.SetMaxVelocity(physics.MaxVelocity)
		world.SetDebugFlags(engine.DebugFlags{
			Debug:          physics.Debug,
			ShowBody:       physics.DebugShowBody,
			ShowStaticBody: physics.DebugShowStaticBody,
			ShowVelocity:   physics.DebugShowVelocity,
		})
	}
	log.Info("Physics configuration updated")
}

// UpdateRenderConfig changes single render flags.
func (h *Host) UpdateRenderConfig(p config.RenderPatch) {
	h.lock.Lock()
	h.config = h.config.ApplyRender(p)
	h.lock.Unlock()
	log.Info("Render configuration updated")
}

// IsGameRunning reports whether an engine exists and is running.
func (h *Host) IsGameRunning() bool {
	game := h.Game()
	return game != nil && game.IsRunning()
}

// GameDimensions reads the size from the configuration record.
func (h *Host) GameDimensions() Dimensions {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return Dimensions{Width: h.config.Width, Height: h.config.Height}
}

// GameFPS returns the measured frame rate rounded to the nearest integer.
// The second value is false when there is no engine.
func (h *Host) GameFPS() (int, bool) {
	game := h.requireGame()
	if game == nil {
		return 0, false
	}
	return int(math.Round(game.Loop().ActualFPS())), true
}

// ToggleDebugMode sets all physics debug flags to enabled.
func (h *Host) ToggleDebugMode(enabled bool) {
	game := h.requireGame()
	if game == nil {
		return
	}
	game.Physics().SetDebug(enabled)
	if enabled {
		log.Info("Debug mode enabled")
	} else {
		log.Info("Debug mode disabled")
	}
}
