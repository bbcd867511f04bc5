package layout

import (
	"testing"

	"github.com/cbodonnell/pixelquest/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name          string
		mode          string
		outsideWidth  int
		outsideHeight int
		wantWidth     int
		wantHeight    int
	}{
		{name: "fit", mode: config.ScaleModeFit, outsideWidth: 1920, outsideHeight: 1200, wantWidth: 1280, wantHeight: 720},
		{name: "none", mode: config.ScaleModeNone, outsideWidth: 800, outsideHeight: 600, wantWidth: 1280, wantHeight: 720},
		{name: "resize", mode: config.ScaleModeResize, outsideWidth: 800, outsideHeight: 600, wantWidth: 800, wantHeight: 600},
		{name: "envelop taller window", mode: config.ScaleModeEnvelop, outsideWidth: 1280, outsideHeight: 960, wantWidth: 1280, wantHeight: 960},
		{name: "envelop wider window", mode: config.ScaleModeEnvelop, outsideWidth: 1920, outsideHeight: 720, wantWidth: 1920, wantHeight: 720},
		{name: "envelop half size", mode: config.ScaleModeEnvelop, outsideWidth: 640, outsideHeight: 480, wantWidth: 1280, wantHeight: 960},
		{name: "width controls height", mode: config.ScaleModeWidthControlsHeight, outsideWidth: 640, outsideHeight: 480, wantWidth: 1280, wantHeight: 960},
		{name: "height controls width", mode: config.ScaleModeHeightControlsWidth, outsideWidth: 640, outsideHeight: 480, wantWidth: 960, wantHeight: 720},
		{name: "minimized window", mode: config.ScaleModeResize, outsideWidth: 0, outsideHeight: 0, wantWidth: 1280, wantHeight: 720},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Size(tt.mode, 1280, 720, tt.outsideWidth, tt.outsideHeight)
			assert.Equal(t, tt.wantWidth, w)
			assert.Equal(t, tt.wantHeight, h)
		})
	}
}
