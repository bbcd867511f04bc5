package game

import (
	"fmt"
	"time"

	"github.com/cbodonnell/pixelquest/client/input"
	"github.com/cbodonnell/pixelquest/client/layout"
	"github.com/cbodonnell/pixelquest/client/render"
	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Drawable is implemented by scenes that render themselves.
type Drawable interface {
	Draw(screen *ebiten.Image)
}

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// host owns the engine instance driven by this game.
	host *host.Host
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// render holds the drawing flags taken from the config.
	render render.Options
	// cfg is the config the window was opened with.
	cfg config.Config
}

var _ ebiten.Game = &Game{}

type NewGameOptions struct {
	Host  *host.Host
	Debug bool
}

func NewGame(opts NewGameOptions) (*Game, error) {
	if opts.Host == nil {
		return nil, fmt.Errorf("host is required")
	}
	if opts.Host.Game() == nil {
		return nil, host.ErrNotInitialized
	}
	cfg := opts.Host.Config()
	input.Gamepad = cfg.Input.Gamepad
	if opts.Debug {
		opts.Host.ToggleDebugMode(true)
	}
	return &Game{
		host:   opts.Host,
		debug:  opts.Debug,
		render: render.NewOptions(cfg.Render),
		cfg:    cfg,
	}, nil
}

// Run opens the window and blocks until the engine stops or the window closes.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle("PixelQuest")
	ebiten.SetTPS(g.cfg.FPS.Target)
	if g.cfg.Scale.Mode == config.ScaleModeNone {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("failed to run game: %v", err)
	}
	return nil
}

func (g *Game) Update() error {
	g.host.ProcessCommands()

	engine := g.host.Game()
	if engine == nil || !engine.IsRunning() {
		return ebiten.Termination
	}

	if input.IsDebugJustPressed() {
		g.debug = !g.debug
		g.host.ToggleDebugMode(g.debug)
	}

	if err := engine.Update(time.Now()); err != nil {
		return fmt.Errorf("failed to update engine: %v", err)
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	engine := g.host.Game()
	if engine == nil {
		return
	}
	for _, scene := range engine.Scenes().Started() {
		if d, ok := scene.(Drawable); ok {
			d.Draw(screen)
		}
	}
	render.DrawPhysicsDebug(screen, engine.Physics(), g.render)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))

	if fps, ok := g.host.GameFPS(); ok {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   Loop: %d", fps))
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n   Scenes: %v", g.host.ActiveSceneKeys()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return layout.Size(g.cfg.Scale.Mode, g.cfg.Width, g.cfg.Height, outsideWidth, outsideHeight)
}
