package scenes

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/pixelquest/client/fonts"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

const hudPadding = 24

// HUDScene shows the player stats on top of the map. It redraws from the
// state carried by every state change notification.
type HUDScene struct {
	*BaseScene

	state    *types.GameState
	listener engine.ListenerID
}

var _ Scene = &HUDScene{}

func NewHUDScene(h *host.Host) *HUDScene {
	return &HUDScene{
		BaseScene: NewBaseScene(h, constants.SceneHUD),
	}
}

func (s *HUDScene) Init(data engine.Data) error {
	if err := s.BaseScene.Init(data); err != nil {
		return err
	}
	s.state = s.Host.GameState()
	s.listener = s.Host.OnGameEvent(constants.EventGameStateChanged, s.onStateChanged)
	return nil
}

func (s *HUDScene) onStateChanged(data any) {
	if state, ok := data.(*types.GameState); ok {
		s.state = state
	}
}

func (s *HUDScene) Destroy() error {
	if s.Engine != nil {
		s.Engine.Events().Off(constants.EventGameStateChanged, s.listener)
	}
	s.listener = engine.NilListenerID
	s.state = nil
	return s.BaseScene.Destroy()
}

// Lines returns the text rows the HUD draws.
func (s *HUDScene) Lines() []string {
	if s.state == nil {
		return nil
	}
	name := "-"
	if s.state.Player != nil {
		name = s.state.Player.Name
	}
	return []string{
		fmt.Sprintf("%s  LV %d", name, s.state.Level),
		fmt.Sprintf("XP %d", s.state.Experience),
		fmt.Sprintf("GOLD %d", s.state.Currency),
	}
}

func (s *HUDScene) Draw(screen *ebiten.Image) {
	if !s.Active() {
		return
	}
	face := fonts.TTFSmallFont
	lineHeight := face.Metrics().Height.Ceil()
	for i, line := range s.Lines() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(hudPadding, float64(hudPadding+(i+1)*lineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		text.DrawWithOptions(screen, line, face, op)
	}
	s.BaseScene.Draw(screen)
}
