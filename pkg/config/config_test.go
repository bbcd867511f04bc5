package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestDefault_isValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 400.0, cfg.Physics.MaxVelocity)
	assert.Equal(t, 60, cfg.FPS.Target)
	assert.Equal(t, DefaultScenes, cfg.Scenes)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{name: "zero width", mutate: func(c *Config) { c.Width = 0 }, want: "dimensions must be positive"},
		{name: "zero fps", mutate: func(c *Config) { c.FPS.Target = 0 }, want: "fps target must be positive"},
		{name: "matter physics", mutate: func(c *Config) { c.Physics.Default = "matter" }, want: "unsupported physics system"},
		{name: "negative max velocity", mutate: func(c *Config) { c.Physics.MaxVelocity = -1 }, want: "max velocity"},
		{name: "no scenes", mutate: func(c *Config) { c.Scenes = nil }, want: "at least one scene"},
		{name: "duplicate scene", mutate: func(c *Config) { c.Scenes = []string{"Boot", "Boot"} }, want: "duplicate scene"},
		{name: "scale mode", mutate: func(c *Config) { c.Scale.Mode = "stretch" }, want: "unknown scale mode"},
		{name: "orientation", mutate: func(c *Config) { c.Scale.Orientation = "diagonal" }, want: "unknown orientation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApply_topLevelKeyOnly(t *testing.T) {
	cfg := Default()
	updated := cfg.Apply(Patch{Width: ptr(800)})

	want := Default()
	want.Width = 800
	assert.Equal(t, want, updated)
	assert.Equal(t, 1280, cfg.Width, "receiver must not change")
}

func TestApply_replacesNestedSectionWholesale(t *testing.T) {
	updated := Default().Apply(Patch{Physics: &PhysicsConfig{Debug: true}})

	assert.True(t, updated.Physics.Debug)
	assert.Equal(t, 0.0, updated.Physics.MaxVelocity)
	assert.Equal(t, "", updated.Physics.Default)
}

func TestApply_scenesAreCopied(t *testing.T) {
	scenes := []string{"Boot", "Game"}
	updated := Default().Apply(Patch{Scenes: scenes})
	scenes[0] = "Changed"
	assert.Equal(t, []string{"Boot", "Game"}, updated.Scenes)
}

func TestApplyPhysics_keepsOtherFields(t *testing.T) {
	updated := Default().ApplyPhysics(PhysicsPatch{Debug: ptr(true), GravityY: ptr(300.0)})

	assert.True(t, updated.Physics.Debug)
	assert.Equal(t, 300.0, updated.Physics.GravityY)
	assert.Equal(t, 400.0, updated.Physics.MaxVelocity)
	assert.Equal(t, PhysicsArcade, updated.Physics.Default)
}

func TestApplyRender_keepsOtherFields(t *testing.T) {
	updated := Default().ApplyRender(RenderPatch{Smooth: ptr(true)})

	assert.True(t, updated.Render.Smooth)
	assert.True(t, updated.Render.PixelArt)
	assert.True(t, updated.Render.RoundPixels)
}

func TestLoad_embeddedDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_customPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 640\nphysics:\n  gravityY: 250\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 250.0, cfg.Physics.GravityY)
	assert.Equal(t, 400.0, cfg.Physics.MaxVelocity)
}

func TestLoad_customPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_envOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PIXELQUEST_WIDTH", "1024")
	t.Setenv("PIXELQUEST_PHYSICS_DEBUG", "true")
	t.Setenv("PIXELQUEST_FPS_TARGET", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.True(t, cfg.Physics.Debug)
	assert.Equal(t, 30, cfg.FPS.Target)
	assert.Equal(t, 400.0, cfg.Physics.MaxVelocity)
}

func TestMarshal(t *testing.T) {
	out, err := Marshal(Default())
	require.NoError(t, err)
	assert.Contains(t, string(out), "pixelArt: true")
	assert.Contains(t, string(out), "maxVelocity: 400")
}
