package termview

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/storytime"
)

// LoopConfig configures Run.
type LoopConfig struct {
	// TPS is the number of updates per second. Defaults to 30.
	TPS int
	// Background is the color the screen is cleared to every frame.
	Background storytime.Color
}

// Run drives scene on screen until ctx is done, Escape or Ctrl-C is pressed,
// or the scene update callback returns an error. As with storytime.Run,
// ebiten.Termination ends the loop without error. Terminal mouse clicks are
// injected into the scene as pointer events.
func Run(ctx context.Context, screen tcell.Screen, scene *storytime.Scene, cfg LoopConfig) error {
	if cfg.TPS <= 0 {
		cfg.TPS = 30
	}
	screen.EnableMouse()
	gc := NewContext(screen)

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	dt := time.Second / time.Duration(cfg.TPS)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	var clock storytime.WorldTime
	var mouseDown bool
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
			case *tcell.EventMouse:
				mouseDown = injectMouse(gc, scene, ev, mouseDown)
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			clock = clock.Advance(dt)
			scene.ProcessPendingInput()
			if err := scene.Tick(clock); err != nil {
				if err == ebiten.Termination {
					return nil
				}
				return err
			}
			Draw(gc, scene, cfg.Background)
		}
	}
}

// Draw clears the screen, renders scene and shows the result. Screenshot
// requests are dropped: a terminal has no pixels to capture.
func Draw(gc *Context, scene *storytime.Scene, background storytime.Color) {
	r, g, b := background.RGB8()
	gc.screen.Fill(' ', tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b))))
	scene.Render(gc)
	gc.screen.Show()

	for _, label := range scene.TakeScreenshotRequests() {
		logs.WithTag("scene", scene.Name()).
			WithTag("label", label).
			Debug("screenshot skipped: terminal backend")
	}
}

func injectMouse(gc *Context, scene *storytime.Scene, ev *tcell.EventMouse, wasDown bool) bool {
	cam := scene.Camera()
	if cam == nil {
		return wasDown
	}
	col, row := ev.Position()
	x, y := gc.CellToView(col, row, cam.Viewport)
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !wasDown:
		scene.InjectPress(x, y)
	case !down && wasDown:
		scene.InjectRelease(x, y)
	}
	return down
}
