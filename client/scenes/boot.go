package scenes

import (
	"fmt"

	"github.com/cbodonnell/pixelquest/client/objects"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/log"
)

// BootScene is the first scene. It hands over to the preload scene on its
// first frame.
type BootScene struct {
	*BaseScene
}

var _ Scene = &BootScene{}

func NewBootScene(h *host.Host) *BootScene {
	return &BootScene{
		BaseScene: NewBaseScene(h, constants.SceneBoot),
	}
}

func (s *BootScene) Init(data engine.Data) error {
	if err := s.BaseScene.Init(data); err != nil {
		return err
	}
	if err := s.Root.AddChild("boot-text", objects.NewTextOverlayObject("boot-text", "Booting", nil)); err != nil {
		return fmt.Errorf("failed to add boot text: %v", err)
	}
	return nil
}

func (s *BootScene) Update(dt float64) error {
	if !s.Active() {
		return nil
	}
	log.Debug("Boot complete")
	s.Host.StartScene(constants.ScenePreload, nil)
	s.Host.StopScene(constants.SceneBoot)
	return nil
}
