// Package layout maps the window size onto the logical screen size for
// each scale mode.
package layout

import (
	"math"

	"github.com/cbodonnell/pixelquest/pkg/config"
)

// Size returns the logical screen size for a window of outsideWidth x
// outsideHeight showing a game designed at width x height.
func Size(mode string, width, height, outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return width, height
	}
	switch mode {
	case config.ScaleModeResize:
		return outsideWidth, outsideHeight
	case config.ScaleModeEnvelop:
		// Keep the aspect ratio of the window and cover the design size.
		scale := math.Min(float64(outsideWidth)/float64(width), float64(outsideHeight)/float64(height))
		return round(float64(outsideWidth) / scale), round(float64(outsideHeight) / scale)
	case config.ScaleModeWidthControlsHeight:
		return width, round(float64(width) * float64(outsideHeight) / float64(outsideWidth))
	case config.ScaleModeHeightControlsWidth:
		return round(float64(height) * float64(outsideWidth) / float64(outsideHeight)), height
	default:
		// none and fit keep the design size; ebiten letterboxes fit.
		return width, height
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
