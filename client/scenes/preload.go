package scenes

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cbodonnell/pixelquest/client/objects"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/cbodonnell/pixelquest/pkg/game/constants"
	"github.com/cbodonnell/pixelquest/pkg/host"
	"github.com/cbodonnell/pixelquest/pkg/log"
	"github.com/hajimehoshi/ebiten/v2"
)

const coinFrames = 4

// CoinFrameDuration is how long each frame of the spinning coin shows.
const CoinFrameDuration = 0.12

type texture struct {
	key   string
	build func() *ebiten.Image
}

var textures = []texture{
	{key: TexturePlayer, build: newPlayerTexture},
	{key: TextureCoin, build: newCoinStrip},
}

// PreloadScene builds one texture per frame, shows the progress and then
// starts the menu.
type PreloadScene struct {
	*BaseScene

	loaded   int
	progress *progressBar
}

var _ Scene = &PreloadScene{}

func NewPreloadScene(h *host.Host) *PreloadScene {
	return &PreloadScene{
		BaseScene: NewBaseScene(h, constants.ScenePreload),
	}
}

func (s *PreloadScene) Init(data engine.Data) error {
	if err := s.BaseScene.Init(data); err != nil {
		return err
	}
	s.loaded = 0
	cfg := s.Host.Config()
	s.progress = &progressBar{
		BaseObject: objects.NewBaseObject("preload-progress", nil),
		x:          float64(cfg.Width) / 4,
		y:          float64(cfg.Height)/2 + 40,
		w:          float64(cfg.Width) / 2,
		h:          16,
		scene:      s,
	}
	if err := s.Root.AddChild("preload-text", objects.NewTextOverlayObject("preload-text", "Loading", nil)); err != nil {
		return fmt.Errorf("failed to add loading text: %v", err)
	}
	if err := s.Root.AddChild(s.progress.GetID(), s.progress); err != nil {
		return fmt.Errorf("failed to add progress bar: %v", err)
	}
	return nil
}

func (s *PreloadScene) Update(dt float64) error {
	if !s.Active() {
		return nil
	}
	if s.loaded < len(textures) {
		t := textures[s.loaded]
		s.Engine.Registry().Set(t.key, t.build())
		log.Debug("Loaded texture %s", t.key)
		s.loaded++
		return s.BaseScene.Update(dt)
	}
	s.Host.StartScene(constants.SceneMenu, nil)
	s.Host.StopScene(constants.ScenePreload)
	return nil
}

// Progress is the share of textures built so far.
func (s *PreloadScene) Progress() float64 {
	return float64(s.loaded) / float64(len(textures))
}

func newPlayerTexture() *ebiten.Image {
	w, h := int(constants.PlayerWidth), int(constants.PlayerHeight)
	img := ebiten.NewImage(w, h)
	img.Fill(color.RGBA{0, 120, 30, 255})
	fillRect(img, 2, 2, w-4, h-4, color.RGBA{0, 255, 60, 255})
	return img
}

// newCoinStrip draws the frames of a spinning coin side by side.
func newCoinStrip() *ebiten.Image {
	size := int(constants.CoinSize)
	img := ebiten.NewImage(size*coinFrames, size)
	widths := [coinFrames]int{size, size * 3 / 4, size / 4, size * 3 / 4}
	for i, w := range widths {
		x := i*size + (size-w)/2
		fillRect(img, x, 0, w, size, color.RGBA{180, 130, 0, 255})
		if w > 4 {
			fillRect(img, x+2, 2, w-4, size-4, color.RGBA{255, 215, 0, 255})
		}
	}
	return img
}

func fillRect(dst *ebiten.Image, x, y, w, h int, clr color.Color) {
	dst.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image).Fill(clr)
}

type progressBar struct {
	*objects.BaseObject

	x, y, w, h float64
	scene      *PreloadScene
}

func (o *progressBar) Draw(screen *ebiten.Image) {
	o.scene.Render.StrokeRect(screen, o.x, o.y, o.w, o.h, 2, color.White)
	o.scene.Render.FillRect(screen, o.x, o.y, o.w*o.scene.Progress(), o.h, color.White)
}
