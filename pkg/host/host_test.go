package host

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/cbodonnell/pixelquest/pkg/queue"
	"github.com/cbodonnell/pixelquest/pkg/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testScene struct {
	key   string
	inits int
	stops int
}

func (s *testScene) Init(engine.Data) error { s.inits++; return nil }
func (s *testScene) Update(float64) error   { return nil }
func (s *testScene) Destroy() error         { s.stops++; return nil }

func newTestHost(t *testing.T, opts NewHostOptions) (*Host, map[string]*testScene) {
	t.Helper()
	if opts.Config == nil {
		cfg := config.Default()
		opts.Config = &cfg
	}
	h := New(opts)
	scenes := make(map[string]*testScene)
	for _, key := range opts.Config.Scenes {
		key := key
		h.RegisterScene(key, func() (engine.Scene, error) {
			s := &testScene{key: key}
			scenes[key] = s
			return s, nil
		})
	}
	return h, scenes
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	log.SetDefaultLogger(log.New(buf, "", 0, log.LogLevelTrace))
	t.Cleanup(func() {
		log.SetDefaultLogger(log.New(&bytes.Buffer{}, "", 0, log.LogLevelInfo))
	})
	return buf
}

func ptr[T any](v T) *T {
	return &v
}

func TestInitializeIsIdempotent(t *testing.T) {
	h, scenes := newTestHost(t, NewHostOptions{})

	first, err := h.Initialize()
	require.NoError(t, err)
	second, err := h.Initialize()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, h.Game())
	assert.True(t, h.IsGameRunning())
	assert.Equal(t, 1, scenes[constants.SceneBoot].inits)
}

func TestInitializeConstructionError(t *testing.T) {
	h := New(NewHostOptions{})

	game, err := h.Initialize()
	assert.Nil(t, game)
	assert.ErrorIs(t, err, engine.ErrUnknownScene)
	assert.Nil(t, h.Game())

	cfg := config.Default()
	cfg.FPS.Target = 0
	h = New(NewHostOptions{Config: &cfg})
	_, err = h.Initialize()
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestDestroyThenReinitialize(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	first, err := h.Initialize()
	require.NoError(t, err)

	h.Destroy()
	assert.Nil(t, h.Game())
	assert.False(t, h.IsGameRunning())
	assert.True(t, first.IsDestroyed())
	assert.True(t, first.CanvasRemoved())

	second, err := h.Initialize()
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	h.Destroy()
	h.Destroy()
}

func TestOperationsWithoutEngine(t *testing.T) {
	logs := captureLogs(t)
	h := New(NewHostOptions{})

	assert.NotPanics(t, func() {
		h.LaunchScene("Game", nil)
		h.StartScene("Game", nil)
		h.StopScene("Game")
		h.PauseScene("Game")
		h.ResumeScene("Game")
		assert.Nil(t, h.ActiveScene())
		assert.Nil(t, h.Scene("Game"))
		assert.Nil(t, h.ActiveSceneKeys())
		assert.Nil(t, h.GameState())
		h.UpdateGameState(types.StatePatch{Level: ptr(2)})
		h.UpdateStats(map[string]int{"hp": 1})
		assert.Equal(t, engine.NilListenerID, h.OnGameEvent("x", func(any) {}))
		h.EmitGameEvent("x", nil)
		h.OffGameEvent("x", engine.NilListenerID)
		fps, ok := h.GameFPS()
		assert.Equal(t, 0, fps)
		assert.False(t, ok)
		h.ToggleDebugMode(true)
		assert.False(t, h.IsGameRunning())
		assert.Nil(t, h.Game())
	})
	assert.Contains(t, logs.String(), "Game not initialized")

	assert.ErrorIs(t, h.SaveGameState(context.Background()), ErrNotInitialized)
	assert.ErrorIs(t, h.LoadGameState(context.Background()), ErrNotInitialized)
}

func TestUpdateConfig(t *testing.T) {
	h := New(NewHostOptions{})
	before := h.Config()

	h.UpdateConfig(config.Patch{Width: ptr(800)})
	after := h.Config()
	assert.Equal(t, 800, after.Width)
	after.Width = before.Width
	assert.Equal(t, before, after)
	assert.Equal(t, Dimensions{Width: 800, Height: 720}, h.GameDimensions())
}

func TestUpdateConfigReplacesNestedSection(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})

	h.UpdateConfig(config.Patch{Physics: &config.PhysicsConfig{Debug: true}})
	physics := h.Config().Physics
	assert.True(t, physics.Debug)
	assert.Equal(t, 0.0, physics.MaxVelocity)
	assert.Equal(t, "", physics.Default)

	game, err := h.Initialize()
	assert.Nil(t, game)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)

	physics.Default = config.PhysicsArcade
	h.UpdateConfig(config.Patch{Physics: &physics})
	game, err = h.Initialize()
	require.NoError(t, err)
	assert.True(t, game.Physics().DebugFlags().Debug)
}

func TestUpdatePhysicsConfigKeepsOtherFields(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	game, err := h.Initialize()
	require.NoError(t, err)

	h.UpdatePhysicsConfig(config.PhysicsPatch{Debug: ptr(true), GravityY: ptr(300.0)})
	physics := h.Config().Physics
	assert.True(t, physics.Debug)
	assert.Equal(t, 400.0, physics.MaxVelocity)
	assert.Equal(t, engine.DebugFlags{Debug: true}, game.Physics().DebugFlags())
	assert.Equal(t, 300.0, game.Physics().Gravity().Y)

	h.UpdateRenderConfig(config.RenderPatch{Smooth: ptr(true)})
	render := h.Config().Render
	assert.True(t, render.Smooth)
	assert.True(t, render.PixelArt)
}

func TestLaunchSceneTwice(t *testing.T) {
	logs := captureLogs(t)
	h, scenes := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	h.LaunchScene(constants.SceneGame, engine.Data{"map": "forest"})
	h.LaunchScene(constants.SceneGame, nil)

	assert.Equal(t, 1, scenes[constants.SceneGame].inits)
	assert.Equal(t, []string{constants.SceneBoot, constants.SceneGame}, h.ActiveSceneKeys())
	assert.Contains(t, logs.String(), "Scene Game is already active")
}

func TestLaunchPausedScene(t *testing.T) {
	logs := captureLogs(t)
	h, scenes := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	h.LaunchScene(constants.SceneGame, nil)
	h.PauseScene(constants.SceneGame)
	h.LaunchScene(constants.SceneGame, nil)

	status, ok := h.Game().Scenes().Status(constants.SceneGame)
	require.True(t, ok)
	assert.Equal(t, engine.SceneStatusPaused, status)
	assert.Equal(t, 1, scenes[constants.SceneGame].inits)
	assert.Contains(t, logs.String(), "Scene Game is paused")
	assert.Equal(t, 1, strings.Count(logs.String(), "Scene Game launched"))
}

// hostScene behaves like the client scenes: its factory reads the host and
// its Init moves the game on to the next scene.
type hostScene struct {
	h      *Host
	render config.RenderConfig
	next   string
	inits  int
}

func (s *hostScene) Init(engine.Data) error {
	s.inits++
	if s.next != "" {
		s.h.LaunchScene(s.next, nil)
		s.h.StartScene(s.next, nil)
	}
	return nil
}
func (s *hostScene) Update(float64) error { return nil }
func (s *hostScene) Destroy() error       { return nil }

func TestInitializeWithScenesUsingHost(t *testing.T) {
	h := New(NewHostOptions{})
	scenes := make(map[string]*hostScene)
	for i, key := range config.DefaultScenes {
		next := ""
		if i == 0 {
			next = config.DefaultScenes[1]
		}
		h.RegisterScene(key, func() (engine.Scene, error) {
			s := &hostScene{h: h, render: h.Config().Render, next: next}
			scenes[key] = s
			return s, nil
		})
	}

	type result struct {
		game *engine.Engine
		err  error
	}
	done := make(chan result, 1)
	go func() {
		game, err := h.Initialize()
		done <- result{game: game, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Initialize did not return")
	}
	require.NoError(t, res.err)
	assert.Same(t, res.game, h.Game())
	assert.Equal(t, h.Config().Render, scenes[constants.SceneBoot].render)
	assert.Equal(t, []string{constants.SceneBoot, constants.ScenePreload}, h.ActiveSceneKeys())
	assert.Equal(t, 2, scenes[constants.ScenePreload].inits)
}

func TestInitializeConcurrently(t *testing.T) {
	h, scenes := newTestHost(t, NewHostOptions{})

	const callers = 8
	games := make(chan *engine.Engine, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			game, err := h.Initialize()
			assert.NoError(t, err)
			games <- game
		}()
	}
	wg.Wait()
	close(games)

	first := h.Game()
	require.NotNil(t, first)
	for game := range games {
		assert.Same(t, first, game)
	}
	assert.Equal(t, 1, scenes[constants.SceneBoot].inits)
}

func TestStartAndStopScene(t *testing.T) {
	h, scenes := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	h.StopScene(constants.SceneGame)
	assert.Equal(t, 0, scenes[constants.SceneGame].stops)

	h.StartScene(constants.SceneGame, nil)
	h.StartScene(constants.SceneGame, nil)
	assert.Equal(t, 2, scenes[constants.SceneGame].inits)
	assert.Same(t, scenes[constants.SceneGame], h.ActiveScene())
	assert.Same(t, scenes[constants.SceneHUD], h.Scene(constants.SceneHUD))

	h.PauseScene(constants.SceneGame)
	assert.Same(t, scenes[constants.SceneBoot], h.ActiveScene())
	h.ResumeScene(constants.SceneGame)

	h.StopScene(constants.SceneGame)
	assert.Equal(t, 2, scenes[constants.SceneGame].stops)
	assert.Equal(t, []string{constants.SceneBoot}, h.ActiveSceneKeys())

	h.StartScene("Missing", nil)
	assert.Nil(t, h.Scene("Missing"))
}

func TestGameStateDefault(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	assert.Equal(t, types.NewGameState(), h.GameState())
}

func TestUpdateGameState(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	var notifications []*types.GameState
	h.OnGameEvent(constants.EventGameStateChanged, func(data any) {
		notifications = append(notifications, data.(*types.GameState))
	})

	h.UpdateGameState(types.StatePatch{Level: ptr(5)})

	state := h.GameState()
	assert.Equal(t, 5, state.Level)
	assert.Equal(t, int64(0), state.Experience)
	require.Len(t, notifications, 1)
	assert.Equal(t, state, notifications[0])
}

func TestNestedUpdateGameState(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	var levels []int
	h.OnGameEvent(constants.EventGameStateChanged, func(data any) {
		state := data.(*types.GameState)
		levels = append(levels, state.Level)
		if state.Experience >= 50 && state.Level == 1 {
			h.UpdateGameState(types.StatePatch{Level: ptr(2)})
		}
	})

	h.UpdateGameState(types.StatePatch{Experience: ptr(int64(60))})

	state := h.GameState()
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, int64(60), state.Experience)
	assert.Equal(t, uint64(2), state.Version)
	assert.Equal(t, []int{1, 2}, levels)
}

func TestUpdateStatsMerges(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	h.UpdateGameState(types.StatePatch{Stats: map[string]int{"strength": 3, "agility": 2}})
	h.UpdateStats(map[string]int{"strength": 4})
	assert.Equal(t, map[string]int{"strength": 4, "agility": 2}, h.GameState().Stats)

	h.UpdateGameState(types.StatePatch{Stats: map[string]int{"luck": 1}})
	assert.Equal(t, map[string]int{"luck": 1}, h.GameState().Stats)
}

func TestGameStateIsACopy(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	state := h.GameState()
	state.Level = 99
	assert.Equal(t, 1, h.GameState().Level)
}

func TestGameEvents(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	var got []any
	id := h.OnGameEvent(constants.EventCoinCollected, func(data any) { got = append(got, data) })
	h.EmitGameEvent(constants.EventCoinCollected, 1)
	h.OffGameEvent(constants.EventCoinCollected, id)
	h.EmitGameEvent(constants.EventCoinCollected, 2)

	assert.Equal(t, []any{1}, got)
}

func TestGameFPSAndDebug(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	game, err := h.Initialize()
	require.NoError(t, err)

	fps, ok := h.GameFPS()
	assert.True(t, ok)
	assert.Equal(t, 60, fps)

	h.ToggleDebugMode(true)
	assert.Equal(t, engine.DebugFlags{Debug: true, ShowBody: true, ShowStaticBody: true, ShowVelocity: true}, game.Physics().DebugFlags())
	h.ToggleDebugMode(false)
	assert.Equal(t, engine.DebugFlags{}, game.Physics().DebugFlags())
}

func TestCommands(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{CommandQueueSize: 2})
	_, err := h.Initialize()
	require.NoError(t, err)

	require.NoError(t, h.Enqueue(func(h *Host) { h.UpdateGameState(types.StatePatch{Level: ptr(3)}) }))
	require.NoError(t, h.Enqueue(func(h *Host) { h.ToggleDebugMode(true) }))
	assert.ErrorIs(t, h.Enqueue(func(*Host) {}), queue.ErrQueueFull)
	assert.Error(t, h.Enqueue(nil))

	assert.Equal(t, 1, h.GameState().Level)
	assert.Equal(t, 2, h.ProcessCommands())
	assert.Equal(t, 3, h.GameState().Level)
	assert.Equal(t, 0, h.ProcessCommands())
}

func TestSaveAndLoadGameState(t *testing.T) {
	ctx := context.Background()
	repo, err := repositories.NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	defer repo.Close(ctx)

	h, _ := newTestHost(t, NewHostOptions{Repository: repo, SaveSlot: "slot1"})
	_, err = h.Initialize()
	require.NoError(t, err)
	assert.Equal(t, "slot1", h.SaveSlot())

	err = h.LoadGameState(ctx)
	assert.True(t, repositories.IsNotFound(err))

	h.UpdateGameState(types.StatePatch{Level: ptr(7), Currency: ptr(int64(30))})
	require.NoError(t, h.SaveGameState(ctx))

	h.UpdateGameState(types.StatePatch{Level: ptr(1)})

	var notified int
	h.OnGameEvent(constants.EventGameStateChanged, func(any) { notified++ })
	require.NoError(t, h.LoadGameState(ctx))
	assert.Equal(t, 7, h.GameState().Level)
	assert.Equal(t, int64(30), h.GameState().Currency)
	assert.Equal(t, 1, notified)
}

func TestSaveWithoutRepository(t *testing.T) {
	h, _ := newTestHost(t, NewHostOptions{})
	_, err := h.Initialize()
	require.NoError(t, err)

	assert.ErrorIs(t, h.SaveGameState(context.Background()), ErrNoRepository)
	assert.ErrorIs(t, h.LoadGameState(context.Background()), ErrNoRepository)
}
