package storytime

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// AABB is an axis-aligned bounding box in world space. X is the left edge and
// Y the bottom edge (the minimum vertical extent); Width and Height extend
// right and up from there, so Top >= Bottom and Right >= Left whenever the box
// is valid. Zero-area boxes are legal.
type AABB struct {
	X, Y, Width, Height float64
}

// NewAABBFromEdges builds a box from its four extents.
func NewAABBFromEdges(left, bottom, right, top float64) AABB {
	return AABB{X: left, Y: bottom, Width: right - left, Height: top - bottom}
}

// Left returns the minimum X extent.
func (a AABB) Left() float64 { return a.X }

// Right returns the maximum X extent.
func (a AABB) Right() float64 { return a.X + a.Width }

// Bottom returns the minimum Y extent.
func (a AABB) Bottom() float64 { return a.Y }

// Top returns the maximum Y extent.
func (a AABB) Top() float64 { return a.Y + a.Height }

// Center returns the midpoint of the box.
func (a AABB) Center() Vec2 {
	return Vec2{a.X + a.Width/2, a.Y + a.Height/2}
}

// Corners returns the box as an oriented quad: bottom-left, top-left,
// top-right, bottom-right.
func (a AABB) Corners() [4]Vec2 {
	return [4]Vec2{
		{a.Left(), a.Bottom()},
		{a.Left(), a.Top()},
		{a.Right(), a.Top()},
		{a.Right(), a.Bottom()},
	}
}

// Contains reports whether p lies inside the box. Edges are inside.
func (a AABB) Contains(p Vec2) bool {
	return p.X >= a.Left() && p.X <= a.Right() &&
		p.Y >= a.Bottom() && p.Y <= a.Top()
}

// ContainsBox reports whether b lies entirely inside a. Shared edges count as
// inside.
func (a AABB) ContainsBox(b AABB) bool {
	return b.Left() >= a.Left() && b.Right() <= a.Right() &&
		b.Bottom() >= a.Bottom() && b.Top() <= a.Top()
}

// Intersects reports whether a and b overlap. Boxes sharing only an edge or a
// corner intersect.
func (a AABB) Intersects(b AABB) bool {
	return a.Left() <= b.Right() && a.Right() >= b.Left() &&
		a.Bottom() <= b.Top() && a.Top() >= b.Bottom()
}

// Translated returns the box moved by d.
func (a AABB) Translated(d Vec2) AABB {
	return AABB{X: a.X + d.X, Y: a.Y + d.Y, Width: a.Width, Height: a.Height}
}

// Combine returns the smallest box containing both a and b.
func (a AABB) Combine(b AABB) AABB {
	return NewAABBFromEdges(
		math.Min(a.Left(), b.Left()),
		math.Min(a.Bottom(), b.Bottom()),
		math.Max(a.Right(), b.Right()),
		math.Max(a.Top(), b.Top()),
	)
}

// CombineAll folds Combine over boxes. An empty slice yields the zero box at
// the origin; a single box is returned unchanged.
func CombineAll(boxes []AABB) AABB {
	if len(boxes) == 0 {
		return AABB{}
	}
	result := boxes[0]
	for _, b := range boxes[1:] {
		result = result.Combine(b)
	}
	return result
}

// Rotated returns the envelope of the box rotated by angle radians about its
// center.
func (a AABB) Rotated(angle float64) AABB {
	return a.RotatedAround(angle, a.Center())
}

// RotatedAround returns the tight axis-aligned envelope of the four corners of
// a after rotating them by angle radians about origin.
func (a AABB) RotatedAround(angle float64, origin Vec2) AABB {
	corners := a.Corners()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		r := c.Rotate(angle, origin)
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X)
		maxY = math.Max(maxY, r.Y)
	}
	return NewAABBFromEdges(minX, minY, maxX, maxY)
}

// Scaled returns the box scaled componentwise about its center.
func (a AABB) Scaled(scale Vec2) AABB {
	return a.ScaledAround(scale, a.Center())
}

// ScaledAround scales the bottom-left and top-right corners of a about origin.
// Negative components mirror the box; the result is normalized so its size is
// never negative.
func (a AABB) ScaledAround(scale, origin Vec2) AABB {
	bl := Vec2{a.Left(), a.Bottom()}.ScaleAround(scale, origin)
	tr := Vec2{a.Right(), a.Top()}.ScaleAround(scale, origin)
	return NewAABBFromEdges(
		math.Min(bl.X, tr.X),
		math.Min(bl.Y, tr.Y),
		math.Max(bl.X, tr.X),
		math.Max(bl.Y, tr.Y),
	)
}

// Validate reports an ErrTypeInvalidBounds error when any field is NaN or
// infinite, or when the size is negative.
func (a AABB) Validate() error {
	for _, v := range [4]float64{a.X, a.Y, a.Width, a.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("bounding box has a non-finite coordinate").
				WithType(ErrTypeInvalidBounds).
				WithTag("box", a)
		}
	}
	if a.Width < 0 || a.Height < 0 {
		return errors.New("bounding box has a negative size").
			WithType(ErrTypeInvalidBounds).
			WithTag("box", a)
	}
	return nil
}

// quadrants splits the box into four equal children, ordered bottom-left,
// bottom-right, top-left, top-right.
func (a AABB) quadrants() [4]AABB {
	hw := a.Width / 2
	hh := a.Height / 2
	return [4]AABB{
		{X: a.X, Y: a.Y, Width: hw, Height: hh},
		{X: a.X + hw, Y: a.Y, Width: a.Width - hw, Height: hh},
		{X: a.X, Y: a.Y + hh, Width: hw, Height: a.Height - hh},
		{X: a.X + hw, Y: a.Y + hh, Width: a.Width - hw, Height: a.Height - hh},
	}
}
