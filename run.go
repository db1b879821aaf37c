package storytime

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ClearColor fills the screen before each Render. Zero alpha skips the fill.
	ClearColor Color
	// Resizable allows the window to be resized by the user.
	Resizable bool
	// ShowStats draws frame rate and actor counts in the top-left corner.
	ShowStats bool
	// ScreenshotDir receives PNGs requested with Scene.Screenshot.
	// Defaults to DefaultScreenshotDir.
	ScreenshotDir string
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene *Scene
	cfg   RunConfig
	ctx   *EbitenContext
	clock WorldTime
	stats *statsOverlay
}

func (g *gameShell) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	g.clock = g.clock.Advance(dt)
	if g.stats != nil {
		g.stats.update(dt.Seconds(), g.scene)
	}
	g.scene.ProcessInput()
	return g.scene.Tick(g.clock)
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.toRGBA())
	}
	g.ctx.SetTarget(screen)
	g.scene.Render(g.ctx)
	g.scene.flushScreenshots(screen, g.cfg.ScreenshotDir)
	if g.stats != nil {
		g.stats.draw(screen)
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives scene at ebiten's tick rate: pointer input,
// then Tick, then Render every frame. It blocks until the window closes or the
// update callback returns an error; ebiten.Termination ends it without error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(DefaultViewport.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(DefaultViewport.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g := &gameShell{
		scene: scene,
		cfg:   cfg,
		ctx:   NewEbitenContext(nil),
	}
	if cfg.ShowStats {
		g.stats = newStatsOverlay()
	}
	return ebiten.RunGame(g)
}
