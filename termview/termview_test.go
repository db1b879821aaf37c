package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/storytime"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func cellBackground(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestContext_SetSceneDimensions(t *testing.T) {
	screen := newTestScreen(t)
	gc := NewContext(screen)

	gc.SetSceneDimensions(160, 48)
	require.Equal(t, 0.5, gc.renderer.scaleX)
	require.Equal(t, 0.5, gc.renderer.scaleY)

	gc.SetSceneDimensions(0, 48)
	require.Equal(t, 1.0, gc.renderer.scaleX)
	require.Equal(t, 1.0, gc.renderer.scaleY)
}

func TestRenderer_FillRect(t *testing.T) {
	screen := newTestScreen(t)
	gc := NewContext(screen)
	gc.SetSceneDimensions(80, 24)

	r := gc.Renderer()
	r.SetTranslation(storytime.Vec2{X: 2, Y: 3})
	r.FillRect(storytime.AABB{X: 1, Y: 1, Width: 4, Height: 2}, storytime.Color{R: 1, A: 1})

	red := tcell.NewRGBColor(255, 0, 0)
	require.Equal(t, red, cellBackground(screen, 3, 4))
	require.Equal(t, red, cellBackground(screen, 6, 5))
	require.NotEqual(t, red, cellBackground(screen, 7, 4))
	require.NotEqual(t, red, cellBackground(screen, 3, 6))
	require.NotEqual(t, red, cellBackground(screen, 2, 4))
}

func TestRenderer_FillRectClipsAndSkipsTransparent(t *testing.T) {
	screen := newTestScreen(t)
	gc := NewContext(screen)
	gc.SetSceneDimensions(80, 24)
	r := gc.Renderer()

	green := tcell.NewRGBColor(0, 255, 0)
	require.NotPanics(t, func() {
		r.FillRect(storytime.AABB{X: -10, Y: -10, Width: 200, Height: 200}, storytime.Color{G: 1, A: 1})
	})
	require.Equal(t, green, cellBackground(screen, 0, 0))
	require.Equal(t, green, cellBackground(screen, 79, 23))

	r.FillRect(storytime.AABB{Width: 5, Height: 5}, storytime.Color{R: 1, A: 0})
	require.Equal(t, green, cellBackground(screen, 0, 0))
}

func TestDraw_SceneOnScreen(t *testing.T) {
	screen := newTestScreen(t)
	gc := NewContext(screen)

	// Default viewport 1280x720 onto 80x24 cells: 16x30 units per cell.
	scene := storytime.NewScene("term")
	a := storytime.NewBaseActor("a", storytime.Vec2{}, storytime.Vec2{X: 160, Y: 60})
	a.Color = storytime.Color{B: 1, A: 1}
	require.NoError(t, scene.AddActor(a))

	Draw(gc, scene, storytime.Color{A: 1})

	blue := tcell.NewRGBColor(0, 0, 255)
	require.Equal(t, blue, cellBackground(screen, 0, 0))
	require.Equal(t, blue, cellBackground(screen, 9, 1))
	require.NotEqual(t, blue, cellBackground(screen, 10, 0))
	require.NotEqual(t, blue, cellBackground(screen, 0, 2))
	require.Equal(t, storytime.Vec2{}, gc.Renderer().Translation())
}

func TestContext_CellToView(t *testing.T) {
	screen := newTestScreen(t)
	gc := NewContext(screen)

	x, y := gc.CellToView(0, 0, storytime.Rect{Width: 1280, Height: 720})
	require.Equal(t, 8.0, x)
	require.Equal(t, 15.0, y)

	x, y = gc.CellToView(79, 23, storytime.Rect{Width: 1280, Height: 720})
	require.Equal(t, 1272.0, x)
	require.Equal(t, 705.0, y)
}

func TestInjectMouse_ClickReachesActor(t *testing.T) {
	screen := newTestScreen(t)
	gc := NewContext(screen)

	scene := storytime.NewScene("term")
	a := storytime.NewBaseActor("a", storytime.Vec2{}, storytime.Vec2{X: 160, Y: 60})
	require.NoError(t, scene.AddActor(a))

	var clicked int
	a.OnClick = func(*storytime.BaseActor, storytime.PointerContext) { clicked++ }

	down := injectMouse(gc, scene, tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone), false)
	require.True(t, down)
	down = injectMouse(gc, scene, tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone), down)
	require.False(t, down)
	require.Equal(t, 2, scene.PendingInjections())

	require.True(t, scene.ProcessPendingInput())
	require.True(t, scene.ProcessPendingInput())
	require.False(t, scene.ProcessPendingInput())
	require.Equal(t, 1, clicked)
}
