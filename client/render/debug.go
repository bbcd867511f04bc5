package render

import (
	"image/color"

	"github.com/cbodonnell/pixelquest/pkg/engine"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	dynamicBodyColor = color.RGBA{255, 0, 255, 255}
	staticBodyColor  = color.RGBA{0, 0, 255, 255}
	sensorBodyColor  = color.RGBA{255, 255, 0, 255}
	velocityColor    = color.RGBA{0, 255, 0, 255}
)

// velocityScale converts px/s into the length of the drawn velocity line.
const velocityScale = 0.25

// DrawPhysicsDebug outlines bodies and velocities as selected by the world's debug flags.
func DrawPhysicsDebug(screen *ebiten.Image, world *engine.World, o Options) {
	flags := world.DebugFlags()
	if !flags.Debug {
		return
	}
	for _, b := range world.Bodies() {
		switch {
		case b.Sensor:
			if flags.ShowStaticBody {
				o.StrokeRect(screen, b.Position.X, b.Position.Y, b.Width, b.Height, 1, sensorBodyColor)
			}
		case b.Static:
			if flags.ShowStaticBody {
				o.StrokeRect(screen, b.Position.X, b.Position.Y, b.Width, b.Height, 1, staticBodyColor)
			}
		default:
			if flags.ShowBody {
				o.StrokeRect(screen, b.Position.X, b.Position.Y, b.Width, b.Height, 1, dynamicBodyColor)
			}
			if flags.ShowVelocity {
				c := b.Center()
				o.Line(screen, c.X, c.Y, c.X+b.Velocity.X*velocityScale, c.Y+b.Velocity.Y*velocityScale, 1, velocityColor)
			}
		}
	}
}
