package host

import (
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/log"
)

// LaunchScene runs the scene alongside the running ones. Launching an
// active or paused scene only logs a warning; a paused scene is resumed
// with ResumeScene or restarted with StartScene.
func (h *Host) LaunchScene(key string, data engine.Data) {
	game := h.requireGame()
	if game == nil {
		return
	}
	scenes := game.Scenes()
	switch status, _ := scenes.Status(key); status {
	case engine.SceneStatusRunning:
		log.Warn("Scene %s is already active", key)
		return
	case engine.SceneStatusPaused:
		log.Warn("Scene %s is paused, resume or start it instead", key)
		return
	}
	if err := scenes.Launch(key, data); err != nil {
		log.Error("Failed to launch scene %s: %v", key, err)
		return
	}
	log.Info("Scene %s launched", key)
}

// StartScene starts the scene, restarting it if it is running.
func (h *Host) StartScene(key string, data engine.Data) {
	game := h.requireGame()
	if game == nil {
		return
	}
	if err := game.Scenes().Start(key, data); err != nil {
		log.Error("Failed to start scene %s: %v", key, err)
		return
	}
	log.Info("Scene %s started", key)
}

// StopScene stops the scene if it is active.
func (h *Host) StopScene(key string) {
	game := h.requireGame()
	if game == nil {
		return
	}
	scenes := game.Scenes()
	if !scenes.IsActive(key) {
		return
	}
	if err := scenes.Stop(key); err != nil {
		log.Error("Failed to stop scene %s: %v", key, err)
		return
	}
	log.Info("Scene %s stopped", key)
}

func (h *Host) PauseScene(key string) {
	game := h.requireGame()
	if game == nil {
		return
	}
	if err := game.Scenes().Pause(key); err != nil {
		log.Warn("Failed to pause scene %s: %v", key, err)
		return
	}
	log.Info("Scene %s paused", key)
}

func (h *Host) ResumeScene(key string) {
	game := h.requireGame()
	if game == nil {
		return
	}
	if err := game.Scenes().Resume(key); err != nil {
		log.Warn("Failed to resume scene %s: %v", key, err)
		return
	}
	log.Info("Scene %s resumed", key)
}

// ActiveScene returns the topmost running scene, or nil.
func (h *Host) ActiveScene() engine.Scene {
	game := h.requireGame()
	if game == nil {
		return nil
	}
	return game.Scenes().Active()
}

// ActiveSceneKeys returns the keys of the running scenes in render order.
func (h *Host) ActiveSceneKeys() []string {
	game := h.requireGame()
	if game == nil {
		return nil
	}
	return game.Scenes().ActiveKeys()
}

// Scene returns the scene registered under key, or nil.
func (h *Host) Scene(key string) engine.Scene {
	game := h.requireGame()
	if game == nil {
		return nil
	}
	return game.Scenes().Get(key)
}
