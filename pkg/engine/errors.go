package engine

import "errors"

var (
	// ErrInvalidConfig wraps configuration validation failures during construction.
	ErrInvalidConfig = errors.New("invalid game configuration")
	// ErrUnknownScene is returned when a configured scene has no factory.
	ErrUnknownScene = errors.New("unknown scene")
	// ErrSceneNotFound is returned by scene operations on a key that was never registered.
	ErrSceneNotFound = errors.New("scene not found")
	// ErrDestroyed is returned by operations on a destroyed engine.
	ErrDestroyed = errors.New("engine destroyed")
)
