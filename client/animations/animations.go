package animations

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Animation steps through equally sized frames laid out in a row of a
// sprite strip.
type Animation struct {
	// image is the image containing the animation frames.
	image *ebiten.Image
	// frameOX is the x offset of the first frame in the animation.
	frameOX int
	// frameOY is the y offset of the first frame in the animation.
	frameOY int
	// frameWidth is the width of each frame in the animation.
	frameWidth int
	// frameHeight is the height of each frame in the animation.
	frameHeight int
	// frameCount is the number of frames in the animation.
	frameCount int
	// frameDuration is how long each frame is shown, in seconds.
	frameDuration float64

	// elapsed is the time the animation has been playing, in seconds.
	elapsed float64
	// frameIndex is the current frame index.
	frameIndex int
}

type NewAnimationOptions struct {
	Image         *ebiten.Image
	FrameOX       int
	FrameOY       int
	FrameWidth    int
	FrameHeight   int
	FrameCount    int
	FrameDuration float64
}

func NewAnimation(opts NewAnimationOptions) *Animation {
	frameCount := opts.FrameCount
	if frameCount < 1 {
		frameCount = 1
	}
	return &Animation{
		image:         opts.Image,
		frameOX:       opts.FrameOX,
		frameOY:       opts.FrameOY,
		frameWidth:    opts.FrameWidth,
		frameHeight:   opts.FrameHeight,
		frameCount:    frameCount,
		frameDuration: opts.FrameDuration,
	}
}

func (a *Animation) Update(dt float64) {
	if a.frameDuration <= 0 {
		return
	}
	a.elapsed += dt
	a.frameIndex = int(a.elapsed/a.frameDuration) % a.frameCount
}

func (a *Animation) Reset() {
	a.elapsed = 0
	a.frameIndex = 0
}

func (a *Animation) FrameIndex() int {
	return a.frameIndex
}

func (a *Animation) CurrentImage() *ebiten.Image {
	sx, sy := a.frameOX+a.frameIndex*a.frameWidth, a.frameOY
	return a.image.SubImage(image.Rect(sx, sy, sx+a.frameWidth, sy+a.frameHeight)).(*ebiten.Image)
}

func (a *Animation) Size() (int, int) {
	return a.frameWidth, a.frameHeight
}
