package scenes

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/pixelquest/client/fonts"
	"github.com/cbodonnell/pixelquest/client/input"
	"github.com/cbodonnell/pixelquest/client/objects"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/log"
)

const (
	saveTimeout = 2 * time.Second
	saveTextTTL = 1.5
)

// PauseScene freezes the map. P or Esc resumes, F5 saves and Q returns to
// the menu.
type PauseScene struct {
	*BaseScene
}

var _ Scene = &PauseScene{}

func NewPauseScene(h *host.Host) *PauseScene {
	return &PauseScene{
		BaseScene: NewBaseScene(h, constants.ScenePause),
	}
}

func (s *PauseScene) Init(data engine.Data) error {
	if err := s.BaseScene.Init(data); err != nil {
		return err
	}
	if err := s.Root.AddChild("pause-text", objects.NewTextOverlayObject("pause-text", "Paused", nil)); err != nil {
		return fmt.Errorf("failed to add pause text: %v", err)
	}
	return nil
}

func (s *PauseScene) Update(dt float64) error {
	if !s.Active() {
		return nil
	}
	switch {
	case input.IsPauseJustPressed():
		s.Host.ResumeScene(constants.SceneGame)
		s.Host.StopScene(constants.ScenePause)
		return nil
	case input.IsQuitJustPressed():
		// Only running scenes can be stopped through the host.
		s.Host.ResumeScene(constants.SceneGame)
		s.Host.StopScene(constants.SceneInventory)
		s.Host.StopScene(constants.SceneHUD)
		s.Host.StopScene(constants.SceneGame)
		s.Host.StartScene(constants.SceneMenu, nil)
		s.Host.StopScene(constants.ScenePause)
		return nil
	case input.IsSaveJustPressed():
		s.save()
	}
	return s.BaseScene.Update(dt)
}

func (s *PauseScene) save() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	msg := "Saved"
	if err := s.Host.SaveGameState(ctx); err != nil {
		log.Error("Failed to save game: %v", err)
		msg = "Save failed"
	}
	cfg := s.Host.Config()
	id := fmt.Sprintf("save-text-%d", s.Engine.Loop().Frame())
	if err := s.Root.AddChild(id, objects.NewTextEffect(id, objects.NewTextEffectOptions{
		Text: msg,
		X:    float64(cfg.Width) / 2,
		Y:    float64(cfg.Height)/2 + float64(fonts.TTFLargeFont.Metrics().Height.Ceil()),
		TTL:  saveTextTTL,
	})); err != nil {
		log.Warn("Failed to add save text: %v", err)
	}
}
