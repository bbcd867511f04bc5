package objects

import (
	"image/color"
	"strings"

	"github.com/cbodonnell/pixelquest/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// TextOverlayObject draws a line of text centered on the screen.
type TextOverlayObject struct {
	*BaseObject

	text string
	face font.Face
}

type NewTextOverlayOptions struct {
	// Face defaults to the large TTF face.
	Face font.Face
	ZIndex int
}

func NewTextOverlayObject(id string, text string, opts *NewTextOverlayOptions) *TextOverlayObject {
	if opts == nil {
		opts = &NewTextOverlayOptions{}
	}
	face := opts.Face
	if face == nil {
		face = fonts.TTFLargeFont
	}
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: opts.ZIndex}),
		text:       text,
		face:       face,
	}
}

func (o *TextOverlayObject) SetText(text string) {
	o.text = text
}

func (o *TextOverlayObject) Text() string {
	return o.text
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	t := strings.ToUpper(o.text)
	bounds, _ := font.BoundString(o.face, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2, float64(screen.Bounds().Dy())/2-float64(bounds.Max.Y>>6)/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, t, o.face, op)
}
