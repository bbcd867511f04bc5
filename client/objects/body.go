package objects

import (
	"image/color"

	"github.com/cbodonnell/pixelquest/client/animations"
	"github.com/cbodonnell/pixelquest/client/render"
	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/hajimehoshi/ebiten/v2"
)

// BodyObject draws a physics body and removes it from the world when destroyed.
type BodyObject struct {
	*BaseObject

	world *engine.World
	body  *engine.Body
	image *ebiten.Image
	anim  *animations.Animation
	clr   color.Color
	opts  render.Options
}

type NewBodyObjectOptions struct {
	World *engine.World
	Body  *engine.Body
	// Image is drawn at the body position. Without one the body is filled with Color.
	Image *ebiten.Image
	// Animation replaces Image when set.
	Animation *animations.Animation
	Color     color.Color
	ZIndex    int
	Render    render.Options
}

func NewBodyObject(id string, opts NewBodyObjectOptions) *BodyObject {
	return &BodyObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: opts.ZIndex}),
		world:      opts.World,
		body:       opts.Body,
		image:      opts.Image,
		anim:       opts.Animation,
		clr:        opts.Color,
		opts:       opts.Render,
	}
}

func (o *BodyObject) Body() *engine.Body {
	return o.body
}

func (o *BodyObject) Destroy() error {
	o.world.RemoveBody(o.body)
	return nil
}

func (o *BodyObject) Update(dt float64) error {
	if o.anim != nil {
		o.anim.Update(dt)
	}
	return nil
}

func (o *BodyObject) Draw(screen *ebiten.Image) {
	if o.anim != nil {
		o.opts.DrawImage(screen, o.anim.CurrentImage(), o.body.Position.X, o.body.Position.Y)
		return
	}
	if o.image != nil {
		o.opts.DrawImage(screen, o.image, o.body.Position.X, o.body.Position.Y)
		return
	}
	o.opts.FillRect(screen, o.body.Position.X, o.body.Position.Y, o.body.Width, o.body.Height, o.clr)
}
