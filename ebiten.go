package storytime

import "github.com/hajimehoshi/ebiten/v2"

// EbitenContext renders a scene onto an *ebiten.Image. The scene dimensions
// are stretched to fill the image.
type EbitenContext struct {
	renderer EbitenRenderer
}

// NewEbitenContext creates a context drawing on target.
func NewEbitenContext(target *ebiten.Image) *EbitenContext {
	return &EbitenContext{renderer: EbitenRenderer{target: target, scaleX: 1, scaleY: 1}}
}

// SetTarget switches the image drawn on, keeping the translation.
func (c *EbitenContext) SetTarget(target *ebiten.Image) {
	c.renderer.target = target
}

// SetSceneDimensions maps a width x height world area onto the whole target.
func (c *EbitenContext) SetSceneDimensions(width, height float64) {
	c.renderer.scaleX, c.renderer.scaleY = 1, 1
	if c.renderer.target == nil || width <= 0 || height <= 0 {
		return
	}
	b := c.renderer.target.Bounds()
	c.renderer.scaleX = float64(b.Dx()) / width
	c.renderer.scaleY = float64(b.Dy()) / height
}

// Renderer returns the context's renderer.
func (c *EbitenContext) Renderer() Renderer {
	return &c.renderer
}

// EbitenRenderer implements Renderer on an ebiten image. Actors that need
// more than FillRect can type-assert to it and use DrawImage.
type EbitenRenderer struct {
	target         *ebiten.Image
	translation    Vec2
	scaleX, scaleY float64
}

// Translation returns the accumulated translation.
func (r *EbitenRenderer) Translation() Vec2 { return r.translation }

// SetTranslation replaces the accumulated translation.
func (r *EbitenRenderer) SetTranslation(v Vec2) { r.translation = v }

// Target returns the image being drawn on.
func (r *EbitenRenderer) Target() *ebiten.Image { return r.target }

// GeoM returns the local-to-screen transform for the current translation.
func (r *EbitenRenderer) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(r.translation.X, r.translation.Y)
	m.Scale(r.scaleX, r.scaleY)
	return m
}

// FillRect stretches WhitePixel over box, tinted with c.
func (r *EbitenRenderer) FillRect(box AABB, c Color) {
	if r.target == nil || box.Width <= 0 || box.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(box.Width, box.Height)
	op.GeoM.Translate(box.X, box.Y)
	op.GeoM.Concat(r.GeoM())
	op.ColorScale.ScaleWithColor(c.toRGBA())
	r.target.DrawImage(WhitePixel, &op)
}

// DrawImage draws img with op, applying the renderer transform after
// op.GeoM. op may be nil.
func (r *EbitenRenderer) DrawImage(img *ebiten.Image, op *ebiten.DrawImageOptions) {
	if r.target == nil || img == nil {
		return
	}
	var o ebiten.DrawImageOptions
	if op != nil {
		o = *op
	}
	o.GeoM.Concat(r.GeoM())
	r.target.DrawImage(img, &o)
}
