package scenes

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/cbodonnell/pixelquest/client/fonts"
	"github.com/cbodonnell/pixelquest/client/input"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/cbodonnell/pixelquest/pkg/repositories"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

const loadTimeout = 2 * time.Second

// DefaultPlayerName is used for new games until the player picks a name.
const DefaultPlayerName = "Hero"

type menuAction int

const (
	menuActionNone menuAction = iota
	menuActionNewGame
	menuActionContinue
	menuActionQuit
)

// MenuScene offers a new game, continuing the saved game or quitting.
type MenuScene struct {
	*BaseScene

	ui      *ebitenui.UI
	action  menuAction
	loadErr string
}

var _ Scene = &MenuScene{}

func NewMenuScene(h *host.Host) *MenuScene {
	return &MenuScene{
		BaseScene: NewBaseScene(h, constants.SceneMenu),
	}
}

func (s *MenuScene) Init(data engine.Data) error {
	if err := s.BaseScene.Init(data); err != nil {
		return err
	}
	s.action = menuActionNone
	if msg, ok := data["error"].(string); ok {
		s.loadErr = msg
	}
	s.renderUI()
	return nil
}

func (s *MenuScene) renderUI() {
	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.NRGBA{R: 170, G: 170, B: 180, A: 255}),
		Hover:   image.NewNineSliceColor(color.NRGBA{R: 135, G: 135, B: 150, A: 255}),
		Pressed: image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 120, A: 255}),
	}

	fontFace := fonts.TTFNormalFont

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(20),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:    150,
				Left:   120,
				Right:  120,
				Bottom: 90,
			}))),
	)

	rootContainer.AddChild(widget.NewText(
		widget.TextOpts.Text("PIXEL QUEST", fonts.TTFLargeFont, color.White),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	))

	newButton := func(label string, action menuAction) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{
					Position: widget.RowLayoutPositionCenter,
					Stretch:  true,
				}),
			),
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(label, fontFace, &widget.ButtonTextColor{
				Idle:     color.NRGBA{254, 255, 255, 255},
				Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			}),
			widget.ButtonOpts.TextPadding(widget.Insets{
				Left:   30,
				Right:  30,
				Top:    5,
				Bottom: 5,
			}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				s.action = action
			}),
		)
	}
	rootContainer.AddChild(newButton("New Game", menuActionNewGame))
	rootContainer.AddChild(newButton("Continue", menuActionContinue))
	rootContainer.AddChild(newButton("Quit", menuActionQuit))

	if s.loadErr != "" {
		rootContainer.AddChild(widget.NewText(
			widget.TextOpts.Text(s.loadErr, fontFace, color.NRGBA{R: 255, G: 0, B: 0, A: 255}),
			widget.TextOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{
					Position: widget.RowLayoutPositionCenter,
				}),
			),
		))
		s.loadErr = ""
	}

	s.ui = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (s *MenuScene) Destroy() error {
	s.ui = nil
	return s.BaseScene.Destroy()
}

func (s *MenuScene) Update(dt float64) error {
	if !s.Active() {
		return nil
	}
	s.ui.Update()
	if s.action == menuActionNone && input.IsStartJustPressed() {
		s.action = menuActionNewGame
	}

	action := s.action
	s.action = menuActionNone
	switch action {
	case menuActionNewGame:
		s.Host.UpdateGameState(game.NewGame(DefaultPlayerName))
		s.startGame()
		return nil
	case menuActionContinue:
		if err := s.continueGame(); err != nil {
			log.Error("Failed to continue game: %v", err)
			s.loadErr = continueErrorMessage(err)
			s.renderUI()
			break
		}
		s.startGame()
		return nil
	case menuActionQuit:
		log.Info("Quit selected")
		if err := s.Host.Enqueue(func(h *host.Host) { h.Destroy() }); err != nil {
			log.Error("Failed to schedule quit: %v", err)
		}
		return nil
	}

	return s.BaseScene.Update(dt)
}

func (s *MenuScene) continueGame() error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	return s.Host.LoadGameState(ctx)
}

func continueErrorMessage(err error) string {
	switch {
	case errors.Is(err, host.ErrNoRepository):
		return "Saving is disabled."
	case repositories.IsNotFound(err):
		return "No saved game found."
	default:
		return "Failed to load the saved game."
	}
}

func (s *MenuScene) startGame() {
	s.Host.StartScene(constants.SceneGame, nil)
	s.Host.LaunchScene(constants.SceneHUD, nil)
	s.Host.StopScene(constants.SceneMenu)
}

func (s *MenuScene) Draw(screen *ebiten.Image) {
	if !s.Active() {
		return
	}
	s.ui.Draw(screen)
	s.BaseScene.Draw(screen)
}
