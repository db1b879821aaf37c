package storytime

import "time"

// GraphicsContext is the rendering backend a Scene draws through.
type GraphicsContext interface {
	// SetSceneDimensions tells the backend the world-space size of the area
	// about to be drawn so it can map it onto its target.
	SetSceneDimensions(width, height float64)
	// Renderer returns the renderer actors draw with.
	Renderer() Renderer
}

// Renderer is handed to Actor.Render. It accumulates a translation that the
// scene sets around each actor so actors draw in their own local space.
type Renderer interface {
	Translation() Vec2
	SetTranslation(v Vec2)
	// FillRect fills box, given relative to the current translation.
	FillRect(box AABB, c Color)
}

// Render draws the actors visible through the active camera, back to front.
// For each actor the renderer translation is offset by the actor's position
// for the duration of its Render call and then restored to exactly the value
// it had before. Render is a no-op without an active camera.
func (s *Scene) Render(gc GraphicsContext) {
	if gc == nil {
		panic("storytime: Render called with nil GraphicsContext")
	}
	cam := s.camera
	if cam == nil {
		return
	}

	var stats renderStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	region := cam.VisibleRegion()
	gc.SetSceneDimensions(region.Width, region.Height)

	s.renderBuf = s.renderBuf[:0]
	s.tree.query(region, func(a Actor) {
		s.renderBuf = append(s.renderBuf, a)
	})

	if s.debug {
		stats.queryTime = time.Since(t0)
		t0 = time.Now()
	}

	s.order.sortAscending(s.renderBuf)

	if s.debug {
		stats.sortTime = time.Since(t0)
		t0 = time.Now()
	}

	r := gc.Renderer()
	outer := r.Translation()
	r.SetTranslation(outer.Sub(Vec2{region.X, region.Y}))
	for _, a := range s.renderBuf {
		saved := r.Translation()
		r.SetTranslation(saved.Add(a.Position()))
		a.Render(r)
		r.SetTranslation(saved)
	}
	r.SetTranslation(outer)

	s.lastVisible = len(s.renderBuf)
	instrumentVisible(s, len(s.renderBuf))
	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.visible = len(s.renderBuf)
		stats.members = len(s.actors)
		s.debugLog(stats)
	}
	clear(s.renderBuf)
}
