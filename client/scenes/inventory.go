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

var inventoryPanelColor = color.RGBA{0, 0, 0, 200}

// InventoryScene lists the carried items and the quest log in a panel
// over the map.
type InventoryScene struct {
	*BaseScene

	state    *types.GameState
	listener engine.ListenerID
}

var _ Scene = &InventoryScene{}

func NewInventoryScene(h *host.Host) *InventoryScene {
	return &InventoryScene{
		BaseScene: NewBaseScene(h, constants.SceneInventory),
	}
}

func (s *InventoryScene) Init(data engine.Data) error {
	if err := s.BaseScene.Init(data); err != nil {
		return err
	}
	s.state = s.Host.GameState()
	s.listener = s.Host.OnGameEvent(constants.EventGameStateChanged, func(data any) {
		if state, ok := data.(*types.GameState); ok {
			s.state = state
		}
	})
	return nil
}

func (s *InventoryScene) Destroy() error {
	if s.Engine != nil {
		s.Engine.Events().Off(constants.EventGameStateChanged, s.listener)
	}
	s.listener = engine.NilListenerID
	s.state = nil
	return s.BaseScene.Destroy()
}

// Lines returns the rows of the panel.
func (s *InventoryScene) Lines() []string {
	if s.state == nil {
		return nil
	}
	lines := []string{"INVENTORY"}
	if len(s.state.Inventory) == 0 {
		lines = append(lines, "  (empty)")
	}
	for _, item := range s.state.Inventory {
		lines = append(lines, fmt.Sprintf("  %s x%d", item.Name, item.Quantity))
	}
	lines = append(lines, "", "QUESTS")
	for _, quest := range s.state.Quests {
		mark := " "
		if quest.Completed {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("  [%s] %s", mark, quest.Name))
	}
	return lines
}

func (s *InventoryScene) Draw(screen *ebiten.Image) {
	if !s.Active() {
		return
	}
	bounds := screen.Bounds()
	x, y := float64(bounds.Dx())*2/3, float64(hudPadding)
	w, h := float64(bounds.Dx())/3-hudPadding, float64(bounds.Dy())-2*hudPadding
	s.Render.FillRect(screen, x, y, w, h, inventoryPanelColor)

	face := fonts.TTFSmallFont
	lineHeight := face.Metrics().Height.Ceil()
	for i, line := range s.Lines() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x+hudPadding/2, y+float64((i+1)*lineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		text.DrawWithOptions(screen, line, face, op)
	}
	s.BaseScene.Draw(screen)
}
