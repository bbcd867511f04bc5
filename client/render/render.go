// Package render draws primitives according to the configured render flags.
package render

import (
	"image/color"
	"math"

	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Options are the drawing settings derived from the render config.
type Options struct {
	Antialias   bool
	RoundPixels bool
	Filter      ebiten.Filter
}

func NewOptions(cfg config.RenderConfig) Options {
	filter := ebiten.FilterLinear
	if cfg.PixelArt || !cfg.Smooth {
		filter = ebiten.FilterNearest
	}
	return Options{
		Antialias:   cfg.Antialias && !cfg.PixelArt,
		RoundPixels: cfg.RoundPixels,
		Filter:      filter,
	}
}

// Snap rounds v to a whole pixel when RoundPixels is set.
func (o Options) Snap(v float64) float32 {
	if o.RoundPixels {
		return float32(math.Round(v))
	}
	return float32(v)
}

func (o Options) FillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(screen, o.Snap(x), o.Snap(y), o.Snap(w), o.Snap(h), clr, o.Antialias)
}

func (o Options) StrokeRect(screen *ebiten.Image, x, y, w, h float64, width float32, clr color.Color) {
	vector.StrokeRect(screen, o.Snap(x), o.Snap(y), o.Snap(w), o.Snap(h), width, clr, o.Antialias)
}

func (o Options) Line(screen *ebiten.Image, x0, y0, x1, y1 float64, width float32, clr color.Color) {
	vector.StrokeLine(screen, o.Snap(x0), o.Snap(y0), o.Snap(x1), o.Snap(y1), width, clr, o.Antialias)
}

// DrawImage draws img at (x, y) using the configured filter.
func (o Options) DrawImage(screen, img *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(o.Snap(x)), float64(o.Snap(y)))
	op.Filter = o.Filter
	screen.DrawImage(img, op)
}
