// Package config declares the game configuration record: display size,
// render flags, arcade physics, input targets, the ordered scene list,
// audio, scaling and frame rate.
package config

import (
	"errors"
	"fmt"
	"slices"
)

const (
	PhysicsArcade = "arcade"

	ScaleModeNone                = "none"
	ScaleModeFit                 = "fit"
	ScaleModeEnvelop             = "envelop"
	ScaleModeResize              = "resize"
	ScaleModeWidthControlsHeight = "width-controls-height"
	ScaleModeHeightControlsWidth = "height-controls-width"

	CenterNone         = "no-center"
	CenterBoth         = "center-both"
	CenterHorizontally = "center-horizontally"
	CenterVertically   = "center-vertically"

	OrientationLandscape = "landscape"
	OrientationPortrait  = "portrait"

	TargetWindow = "window"
)

// Config is the base configuration handed to the engine at construction.
type Config struct {
	Width              int           `yaml:"width" json:"width" env:"WIDTH"`
	Height             int           `yaml:"height" json:"height" env:"HEIGHT"`
	Render             RenderConfig  `yaml:"render" json:"render" envPrefix:"RENDER_"`
	Physics            PhysicsConfig `yaml:"physics" json:"physics" envPrefix:"PHYSICS_"`
	Input              InputConfig   `yaml:"input" json:"input" envPrefix:"INPUT_"`
	Scenes             []string      `yaml:"scenes" json:"scenes" env:"SCENES"`
	Audio              AudioConfig   `yaml:"audio" json:"audio" envPrefix:"AUDIO_"`
	Scale              ScaleConfig   `yaml:"scale" json:"scale" envPrefix:"SCALE_"`
	FPS                FPSConfig     `yaml:"fps" json:"fps" envPrefix:"FPS_"`
	DisableContextMenu bool          `yaml:"disableContextMenu" json:"disableContextMenu" env:"DISABLE_CONTEXT_MENU"`
}

type RenderConfig struct {
	PixelArt    bool `yaml:"pixelArt" json:"pixelArt" env:"PIXEL_ART"`
	Antialias   bool `yaml:"antialias" json:"antialias" env:"ANTIALIAS"`
	RoundPixels bool `yaml:"roundPixels" json:"roundPixels" env:"ROUND_PIXELS"`
	Smooth      bool `yaml:"smooth" json:"smooth" env:"SMOOTH"`
}

type PhysicsConfig struct {
	// Default names the physics system. Only arcade is supported.
	Default             string  `yaml:"default" json:"default" env:"DEFAULT"`
	GravityY            float64 `yaml:"gravityY" json:"gravityY" env:"GRAVITY_Y"`
	Debug               bool    `yaml:"debug" json:"debug" env:"DEBUG"`
	DebugShowBody       bool    `yaml:"debugShowBody" json:"debugShowBody" env:"DEBUG_SHOW_BODY"`
	DebugShowStaticBody bool    `yaml:"debugShowStaticBody" json:"debugShowStaticBody" env:"DEBUG_SHOW_STATIC_BODY"`
	DebugShowVelocity   bool    `yaml:"debugShowVelocity" json:"debugShowVelocity" env:"DEBUG_SHOW_VELOCITY"`
	MaxVelocity         float64 `yaml:"maxVelocity" json:"maxVelocity" env:"MAX_VELOCITY"`
}

type InputConfig struct {
	KeyboardTarget string `yaml:"keyboardTarget" json:"keyboardTarget" env:"KEYBOARD_TARGET"`
	MouseTarget    string `yaml:"mouseTarget" json:"mouseTarget" env:"MOUSE_TARGET"`
	Gamepad        bool   `yaml:"gamepad" json:"gamepad" env:"GAMEPAD"`
}

type AudioConfig struct {
	DisableWebAudio bool `yaml:"disableWebAudio" json:"disableWebAudio" env:"DISABLE_WEB_AUDIO"`
}

type ScaleConfig struct {
	Mode         string `yaml:"mode" json:"mode" env:"MODE"`
	AutoCenter   string `yaml:"autoCenter" json:"autoCenter" env:"AUTO_CENTER"`
	Orientation  string `yaml:"orientation" json:"orientation" env:"ORIENTATION"`
	ExpandParent bool   `yaml:"expandParent" json:"expandParent" env:"EXPAND_PARENT"`
}

type FPSConfig struct {
	Target          int  `yaml:"target" json:"target" env:"TARGET"`
	ForceSetTimeOut bool `yaml:"forceSetTimeOut" json:"forceSetTimeOut" env:"FORCE_SET_TIME_OUT"`
}

// DefaultScenes is the registration order of the scene units.
var DefaultScenes = []string{"Boot", "Preload", "Menu", "Game", "HUD", "Inventory", "Pause"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:  1280,
		Height: 720,
		Render: RenderConfig{
			PixelArt:    true,
			Antialias:   false,
			RoundPixels: true,
			Smooth:      false,
		},
		Physics: PhysicsConfig{
			Default:     PhysicsArcade,
			GravityY:    0,
			MaxVelocity: 400,
		},
		Input: InputConfig{
			KeyboardTarget: TargetWindow,
			MouseTarget:    TargetWindow,
			Gamepad:        true,
		},
		Scenes: slices.Clone(DefaultScenes),
		Audio:  AudioConfig{DisableWebAudio: false},
		Scale: ScaleConfig{
			Mode:         ScaleModeFit,
			AutoCenter:   CenterBoth,
			Orientation:  OrientationLandscape,
			ExpandParent: true,
		},
		FPS:                FPSConfig{Target: 60, ForceSetTimeOut: false},
		DisableContextMenu: true,
	}
}

// Copy returns a copy of c that shares no slices with it.
func (c Config) Copy() Config {
	c.Scenes = slices.Clone(c.Scenes)
	return c
}

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("dimensions must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.FPS.Target <= 0 {
		errs = append(errs, fmt.Errorf("fps target must be positive, got %d", c.FPS.Target))
	}
	if c.Physics.Default != PhysicsArcade {
		errs = append(errs, fmt.Errorf("unsupported physics system %q", c.Physics.Default))
	}
	if c.Physics.MaxVelocity < 0 {
		errs = append(errs, fmt.Errorf("max velocity must not be negative, got %v", c.Physics.MaxVelocity))
	}
	if len(c.Scenes) == 0 {
		errs = append(errs, errors.New("at least one scene is required"))
	}
	seen := make(map[string]struct{}, len(c.Scenes))
	for _, key := range c.Scenes {
		if key == "" {
			errs = append(errs, errors.New("scene key must not be empty"))
			continue
		}
		if _, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("duplicate scene %q", key))
		}
		seen[key] = struct{}{}
	}
	if !oneOf(c.Scale.Mode, ScaleModeNone, ScaleModeFit, ScaleModeEnvelop, ScaleModeResize, ScaleModeWidthControlsHeight, ScaleModeHeightControlsWidth) {
		errs = append(errs, fmt.Errorf("unknown scale mode %q", c.Scale.Mode))
	}
	if !oneOf(c.Scale.AutoCenter, CenterNone, CenterBoth, CenterHorizontally, CenterVertically) {
		errs = append(errs, fmt.Errorf("unknown auto center %q", c.Scale.AutoCenter))
	}
	if !oneOf(c.Scale.Orientation, OrientationLandscape, OrientationPortrait) {
		errs = append(errs, fmt.Errorf("unknown orientation %q", c.Scale.Orientation))
	}
	return errors.Join(errs...)
}

func oneOf(value string, allowed ...string) bool {
	return slices.Contains(allowed, value)
}
