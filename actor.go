package storytime

import "time"

// WorldTime is the simulation clock handed to actors every Update.
type WorldTime struct {
	// Total is the simulated time since the scene started.
	Total time.Duration
	// Elapsed is the time since the previous Update.
	Elapsed time.Duration
}

// Advance returns the clock moved forward by dt.
func (t WorldTime) Advance(dt time.Duration) WorldTime {
	return WorldTime{Total: t.Total + dt, Elapsed: dt}
}

// Actor is anything a Scene can index and draw. Identity is by value
// equality of the interface, so implementations should be pointers.
type Actor interface {
	// Bounds returns the actor's current world-space box.
	Bounds() AABB
	// Position is the translation applied to the renderer around Render.
	Position() Vec2
	// SubscribeBoundsChanged registers l to be called synchronously every
	// time Bounds changes.
	SubscribeBoundsChanged(l BoundsListener)
	// UnsubscribeBoundsChanged removes a listener registered earlier.
	UnsubscribeBoundsChanged(l BoundsListener)
	// TimeElapse advances the actor to t.
	TimeElapse(t WorldTime)
	// Render draws the actor relative to the renderer's current translation.
	Render(r Renderer)
}

// BoundsListener receives bounds-changed notifications from actors.
type BoundsListener interface {
	ActorBoundsChanged(a Actor)
}

// BaseActor is a ready-made Actor: an axis-aligned Size placed at Position,
// optionally rotated and scaled about its center. Every setter that changes the
// resulting bounds notifies listeners before returning.
type BaseActor struct {
	Name string
	// Color fills the actor's bounds when OnRender is nil.
	Color Color

	// OnUpdate, when set, runs after the kinematic step in TimeElapse.
	OnUpdate func(a *BaseActor, t WorldTime)
	// OnRender, when set, replaces the default fill.
	OnRender func(a *BaseActor, r Renderer)
	// OnClick, when set, runs when the actor is the topmost actor under a
	// completed click.
	OnClick func(a *BaseActor, ctx PointerContext)

	position Vec2
	size     Vec2
	rotation float64
	scale    Vec2
	velocity Vec2

	bounds    AABB
	listeners []BoundsListener
}

// NewBaseActor creates an actor with the given size, positioned at pos.
func NewBaseActor(name string, pos, size Vec2) *BaseActor {
	a := &BaseActor{
		Name:     name,
		Color:    ColorWhite,
		position: pos,
		size:     size,
		scale:    Vec2{1, 1},
	}
	a.bounds = a.computeBounds()
	return a
}

// LocalBounds returns the unrotated, unscaled box relative to Position.
func (a *BaseActor) LocalBounds() AABB {
	return AABB{Width: a.size.X, Height: a.size.Y}
}

func (a *BaseActor) computeBounds() AABB {
	box := a.LocalBounds().Translated(a.position)
	if a.scale != (Vec2{1, 1}) {
		box = box.Scaled(a.scale)
	}
	if a.rotation != 0 {
		box = box.Rotated(a.rotation)
	}
	return box
}

// Bounds returns the world-space envelope of the actor.
func (a *BaseActor) Bounds() AABB { return a.bounds }

// Position returns the actor's bottom-left corner before rotation and scale.
func (a *BaseActor) Position() Vec2 { return a.position }

// Size returns the unscaled size.
func (a *BaseActor) Size() Vec2 { return a.size }

// Rotation returns the rotation in radians.
func (a *BaseActor) Rotation() float64 { return a.rotation }

// Scale returns the scale factors.
func (a *BaseActor) Scale() Vec2 { return a.scale }

// Velocity returns the per-second displacement applied by TimeElapse.
func (a *BaseActor) Velocity() Vec2 { return a.velocity }

// SetPosition moves the actor.
func (a *BaseActor) SetPosition(p Vec2) {
	if a.position == p {
		return
	}
	a.position = p
	a.boundsChanged()
}

// SetSize resizes the actor.
func (a *BaseActor) SetSize(s Vec2) {
	if a.size == s {
		return
	}
	a.size = s
	a.boundsChanged()
}

// SetRotation rotates the actor about its center.
func (a *BaseActor) SetRotation(rad float64) {
	if a.rotation == rad {
		return
	}
	a.rotation = rad
	a.boundsChanged()
}

// SetScale scales the actor about its center.
func (a *BaseActor) SetScale(s Vec2) {
	if a.scale == s {
		return
	}
	a.scale = s
	a.boundsChanged()
}

// SetVelocity sets the per-second displacement.
func (a *BaseActor) SetVelocity(v Vec2) {
	a.velocity = v
}

// SubscribeBoundsChanged registers l. Registering the same listener twice is
// a no-op.
func (a *BaseActor) SubscribeBoundsChanged(l BoundsListener) {
	if l == nil {
		panic("storytime: cannot subscribe nil bounds listener")
	}
	for _, existing := range a.listeners {
		if existing == l {
			return
		}
	}
	a.listeners = append(a.listeners, l)
}

// UnsubscribeBoundsChanged removes l. No-op if l was not registered.
func (a *BaseActor) UnsubscribeBoundsChanged(l BoundsListener) {
	for i, existing := range a.listeners {
		if existing == l {
			copy(a.listeners[i:], a.listeners[i+1:])
			a.listeners[len(a.listeners)-1] = nil
			a.listeners = a.listeners[:len(a.listeners)-1]
			return
		}
	}
}

// TimeElapse integrates velocity over t.Elapsed, then runs OnUpdate.
func (a *BaseActor) TimeElapse(t WorldTime) {
	if a.velocity != (Vec2{}) && t.Elapsed > 0 {
		a.SetPosition(a.position.Add(a.velocity.Mul(t.Elapsed.Seconds())))
	}
	if a.OnUpdate != nil {
		a.OnUpdate(a, t)
	}
}

// Render fills the actor's bounds relative to Position, so the painted area
// is exactly the box the scene culls and hit-tests. Rotated actors fill their
// axis-aligned envelope. OnRender, when set, replaces the fill.
func (a *BaseActor) Render(r Renderer) {
	if a.OnRender != nil {
		a.OnRender(a, r)
		return
	}
	r.FillRect(a.bounds.Translated(a.position.Mul(-1)), a.Color)
}

// HandleClick runs OnClick.
func (a *BaseActor) HandleClick(ctx PointerContext) {
	if a.OnClick != nil {
		a.OnClick(a, ctx)
	}
}

func (a *BaseActor) boundsChanged() {
	a.bounds = a.computeBounds()
	// Listeners may unsubscribe while being notified.
	listeners := append([]BoundsListener(nil), a.listeners...)
	for _, l := range listeners {
		l.ActorBoundsChanged(a)
	}
}
