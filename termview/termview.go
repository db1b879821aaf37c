// Package termview renders storytime scenes onto a tcell terminal screen.
// Every actor box is filled with background-colored cells; one cell covers
// (scene width / columns) x (scene height / rows) world units.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/storytime"
)

// Context implements storytime.GraphicsContext on a tcell screen.
type Context struct {
	screen   tcell.Screen
	renderer renderer
}

// NewContext creates a context drawing on screen. The screen must already be
// initialized.
func NewContext(screen tcell.Screen) *Context {
	c := &Context{screen: screen}
	c.renderer = renderer{screen: screen, scaleX: 1, scaleY: 1}
	return c
}

// Screen returns the screen drawn on.
func (c *Context) Screen() tcell.Screen {
	return c.screen
}

// SetSceneDimensions maps a width x height world area onto the whole screen.
func (c *Context) SetSceneDimensions(width, height float64) {
	c.renderer.scaleX, c.renderer.scaleY = 1, 1
	if width <= 0 || height <= 0 {
		return
	}
	cols, rows := c.screen.Size()
	c.renderer.scaleX = float64(cols) / width
	c.renderer.scaleY = float64(rows) / height
}

// Renderer returns the context's renderer.
func (c *Context) Renderer() storytime.Renderer {
	return &c.renderer
}

// CellToView converts a cell coordinate to the viewport coordinates of vp,
// aiming at the cell center. Used to route terminal mouse input to the scene.
func (c *Context) CellToView(col, row int, vp storytime.Rect) (float64, float64) {
	cols, rows := c.screen.Size()
	if cols == 0 || rows == 0 {
		return vp.X, vp.Y
	}
	x := vp.X + (float64(col)+0.5)*vp.Width/float64(cols)
	y := vp.Y + (float64(row)+0.5)*vp.Height/float64(rows)
	return x, y
}

type renderer struct {
	screen         tcell.Screen
	translation    storytime.Vec2
	scaleX, scaleY float64
}

func (r *renderer) Translation() storytime.Vec2 { return r.translation }

func (r *renderer) SetTranslation(v storytime.Vec2) { r.translation = v }

// FillRect paints every cell whose area overlaps box. Transparent colors are
// skipped since cells have no alpha.
func (r *renderer) FillRect(box storytime.AABB, c storytime.Color) {
	if c.A <= 0 || box.Width < 0 || box.Height < 0 {
		return
	}
	cols, rows := r.screen.Size()
	x0 := int(math.Floor((r.translation.X + box.Left()) * r.scaleX))
	x1 := int(math.Ceil((r.translation.X + box.Right()) * r.scaleX))
	y0 := int(math.Floor((r.translation.Y + box.Bottom()) * r.scaleY))
	y1 := int(math.Ceil((r.translation.Y + box.Top()) * r.scaleY))
	// Degenerate boxes still cover one cell.
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	x0, x1 = max(x0, 0), min(x1, cols)
	y0, y1 = max(y0, 0), min(y1, rows)

	red, green, blue := c.RGB8()
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(red), int32(green), int32(blue)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}
