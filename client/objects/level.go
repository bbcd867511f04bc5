package objects

import (
	"image/color"

	"github.com/cbodonnell/pixelquest/client/render"
	"github.com/hajimehoshi/ebiten/v2"
)

// LevelObject is a filled rectangle of the map, such as the floor or a wall.
type LevelObject struct {
	*BaseObject

	x, y float64
	w, h float64
	clr  color.Color
	opts render.Options
}

type NewLevelObjectOptions struct {
	// X is the x-coordinate of the level object.
	X float64
	// Y is the y-coordinate of the level object.
	Y float64
	// W is the width of the level object.
	W float64
	// H is the height of the level object.
	H float64
	// Color is the color of the level object.
	Color color.Color
	// ZIndex is the z-index of the level object.
	ZIndex int
	// Render holds the drawing flags.
	Render render.Options
}

func NewLevelObject(id string, opts NewLevelObjectOptions) *LevelObject {
	return &LevelObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{
			ZIndex: opts.ZIndex,
		}),
		x:    opts.X,
		y:    opts.Y,
		w:    opts.W,
		h:    opts.H,
		clr:  opts.Color,
		opts: opts.Render,
	}
}

func (o *LevelObject) Draw(screen *ebiten.Image) {
	o.opts.FillRect(screen, o.x, o.y, o.w, o.h, o.clr)
}
