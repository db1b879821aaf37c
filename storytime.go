package storytime

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a backend converts it for drawing.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default actor fill color.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// RGB8 returns the non-premultiplied 8-bit channels, for backends that have
// no alpha (terminals).
func (c Color) RGB8() (r, g, b uint8) {
	return uint8(clamp01(c.R) * 255), uint8(clamp01(c.G) * 255), uint8(clamp01(c.B) * 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and scale factors
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rotate returns v rotated by angle radians (counter-clockwise in a y-up
// world) about origin.
func (v Vec2) Rotate(angle float64, origin Vec2) Vec2 {
	sin, cos := math.Sincos(angle)
	dx := v.X - origin.X
	dy := v.Y - origin.Y
	return Vec2{
		X: origin.X + dx*cos - dy*sin,
		Y: origin.Y + dx*sin + dy*cos,
	}
}

// ScaleAround scales v componentwise by scale about origin.
func (v Vec2) ScaleAround(scale, origin Vec2) Vec2 {
	return Vec2{
		X: origin.X + (v.X-origin.X)*scale.X,
		Y: origin.Y + (v.Y-origin.Y)*scale.Y,
	}
}

// WhitePixel is a 1x1 white image the ebiten backend stretches to fill boxes.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is a screen-space rectangle used for camera viewports. The origin is
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// EventType identifies a kind of scene or pointer event.
type EventType uint8

const (
	EventActorAdded     EventType = iota // actor entered the scene's index structures
	EventActorRemoved                    // actor left the scene's index structures
	EventActorReindexed                  // actor moved to a new quadtree node after a bounds change
	EventPointerDown                     // pointer button pressed
	EventPointerUp                       // pointer button released
	EventClick                           // press then release over the same actor
)

func (t EventType) String() string {
	switch t {
	case EventActorAdded:
		return "actor_added"
	case EventActorRemoved:
		return "actor_removed"
	case EventActorReindexed:
		return "actor_reindexed"
	case EventPointerDown:
		return "pointer_down"
	case EventPointerUp:
		return "pointer_up"
	case EventClick:
		return "click"
	default:
		return "unknown"
	}
}
