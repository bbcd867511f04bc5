package engine

import (
	"testing"
	"time"

	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, keys ...string) (*Engine, map[string]*fakeScene) {
	t.Helper()
	cfg := config.Default()
	cfg.Scenes = keys
	factories, scenes := newFakeScenes(keys...)
	e, err := New(cfg, factories)
	require.NoError(t, err)
	return e, scenes
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 0
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewUnknownScene(t *testing.T) {
	cfg := config.Default()
	cfg.Scenes = []string{"Boot"}
	_, err := New(cfg, map[string]SceneFactory{})
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestBootStartsFirstScene(t *testing.T) {
	e, scenes := newTestEngine(t, "Boot", "Game")
	var ready bool
	e.Events().On(EventReady, func(any) { ready = true })

	require.NoError(t, e.Boot())

	assert.True(t, e.IsRunning())
	assert.True(t, ready)
	assert.Len(t, scenes["Boot"].inits, 1)
	assert.Empty(t, scenes["Game"].inits)

	require.NoError(t, e.Boot())
	assert.Len(t, scenes["Boot"].inits, 1)
}

func TestUpdateRunsActiveScenes(t *testing.T) {
	e, scenes := newTestEngine(t, "Boot", "Game")
	require.NoError(t, e.Update(time.Now()))
	assert.Equal(t, 0, scenes["Boot"].updates)

	require.NoError(t, e.Boot())
	now := time.Now()
	require.NoError(t, e.Update(now))
	require.NoError(t, e.Update(now.Add(16*time.Millisecond)))

	assert.Equal(t, 2, scenes["Boot"].updates)
	assert.Equal(t, 0, scenes["Game"].updates)
	assert.Equal(t, uint64(2), e.Loop().Frame())
}

func TestDestroy(t *testing.T) {
	e, scenes := newTestEngine(t, "Boot", "Game")
	require.NoError(t, e.Boot())
	require.NoError(t, e.Scenes().Launch("Game", nil))
	e.Registry().Set("gameState", 1)
	var destroyed int
	e.Events().On(EventDestroy, func(any) { destroyed++ })

	e.Destroy(true)
	e.Destroy(false)

	assert.False(t, e.IsRunning())
	assert.True(t, e.IsDestroyed())
	assert.True(t, e.CanvasRemoved())
	assert.Equal(t, 1, destroyed)
	assert.Equal(t, 1, scenes["Boot"].destroys)
	assert.Equal(t, 1, scenes["Game"].destroys)
	assert.Empty(t, e.Registry().Keys())
	assert.Equal(t, 0, e.Events().ListenerCount(EventDestroy))
	assert.ErrorIs(t, e.Boot(), ErrDestroyed)
}

func TestConfigIsCopied(t *testing.T) {
	e, _ := newTestEngine(t, "Boot")
	cfg := e.Config()
	cfg.Scenes[0] = "Changed"
	assert.Equal(t, []string{"Boot"}, e.Config().Scenes)
}
