package storytime

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsOverlay draws frame rate and scene counters in the top-left corner.
// The text is refreshed every ~0.5 seconds.
type statsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

func newStatsOverlay() *statsOverlay {
	// 160x48 fits four short lines of debug text.
	return &statsOverlay{img: ebiten.NewImage(160, 48)}
}

func statsText(fps, tps float64, members, visible int) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nActors: %d\nVisible: %d", fps, tps, members, visible)
}

func (o *statsOverlay) update(dt float64, s *Scene) {
	o.elapsed += dt
	if o.text != "" && o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0
	o.text = statsText(ebiten.ActualFPS(), ebiten.ActualTPS(), s.Len(), s.lastVisible)

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

func (o *statsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
