package config

import "slices"

// Patch is a shallow update of the configuration. Every non-nil field
// replaces the matching top-level key. A nested section that is present
// replaces the whole section, so fields left out of it are reset to their
// zero value. For example a Physics section without Default fails
// Validate, so the next engine cannot be built from it. Use PhysicsPatch or
// RenderPatch to change single fields.
type Patch struct {
	Width              *int           `json:"width,omitempty"`
	Height             *int           `json:"height,omitempty"`
	Render             *RenderConfig  `json:"render,omitempty"`
	Physics            *PhysicsConfig `json:"physics,omitempty"`
	Input              *InputConfig   `json:"input,omitempty"`
	Scenes             []string       `json:"scenes,omitempty"`
	Audio              *AudioConfig   `json:"audio,omitempty"`
	Scale              *ScaleConfig   `json:"scale,omitempty"`
	FPS                *FPSConfig     `json:"fps,omitempty"`
	DisableContextMenu *bool          `json:"disableContextMenu,omitempty"`
}

// Apply returns c with the patch merged in, last writer wins per key.
func (c Config) Apply(p Patch) Config {
	c = c.Copy()
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.Render != nil {
		c.Render = *p.Render
	}
	if p.Physics != nil {
		c.Physics = *p.Physics
	}
	if p.Input != nil {
		c.Input = *p.Input
	}
	if p.Scenes != nil {
		c.Scenes = slices.Clone(p.Scenes)
	}
	if p.Audio != nil {
		c.Audio = *p.Audio
	}
	if p.Scale != nil {
		c.Scale = *p.Scale
	}
	if p.FPS != nil {
		c.FPS = *p.FPS
	}
	if p.DisableContextMenu != nil {
		c.DisableContextMenu = *p.DisableContextMenu
	}
	return c
}

// PhysicsPatch changes individual physics fields.
type PhysicsPatch struct {
	GravityY            *float64 `json:"gravityY,omitempty"`
	Debug               *bool    `json:"debug,omitempty"`
	DebugShowBody       *bool    `json:"debugShowBody,omitempty"`
	DebugShowStaticBody *bool    `json:"debugShowStaticBody,omitempty"`
	DebugShowVelocity   *bool    `json:"debugShowVelocity,omitempty"`
	MaxVelocity         *float64 `json:"maxVelocity,omitempty"`
}

func (c Config) ApplyPhysics(p PhysicsPatch) Config {
	c = c.Copy()
	setIf(&c.Physics.GravityY, p.GravityY)
	setIf(&c.Physics.Debug, p.Debug)
	setIf(&c.Physics.DebugShowBody, p.DebugShowBody)
	setIf(&c.Physics.DebugShowStaticBody, p.DebugShowStaticBody)
	setIf(&c.Physics.DebugShowVelocity, p.DebugShowVelocity)
	setIf(&c.Physics.MaxVelocity, p.MaxVelocity)
	return c
}

// RenderPatch changes individual render flags.
type RenderPatch struct {
	PixelArt    *bool `json:"pixelArt,omitempty"`
	Antialias   *bool `json:"antialias,omitempty"`
	RoundPixels *bool `json:"roundPixels,omitempty"`
	Smooth      *bool `json:"smooth,omitempty"`
}

func (c Config) ApplyRender(p RenderPatch) Config {
	c = c.Copy()
	setIf(&c.Render.PixelArt, p.PixelArt)
	setIf(&c.Render.Antialias, p.Antialias)
	setIf(&c.Render.RoundPixels, p.RoundPixels)
	setIf(&c.Render.Smooth, p.Smooth)
	return c
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
