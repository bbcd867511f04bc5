package objects

import "github.com/hajimehoshi/ebiten/v2"

type Lifecycle interface {
	// Game flow methods
	Init() error
	Destroy() error
	Update(dt float64) error
	Draw(screen *ebiten.Image)
}
