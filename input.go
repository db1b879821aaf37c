package storytime

import "github.com/hajimehoshi/ebiten/v2"

// PointerContext carries pointer event data. Actor is the topmost actor under
// the pointer, or nil over empty space.
type PointerContext struct {
	Actor     Actor
	GlobalX   float64
	GlobalY   float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// Clickable is implemented by actors that want click events routed to them
// directly, in addition to the scene-level OnClick callbacks.
type Clickable interface {
	HandleClick(ctx PointerContext)
}

// pointerState tracks the mouse between frames.
type pointerState struct {
	down         bool
	button       MouseButton
	hit          Actor
	lastX, lastY float64
}

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	click       []pointerHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventClick:
		h.reg.click = removePointerHandler(h.reg.click, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(list *[]pointerHandler, event EventType, fn func(PointerContext)) CallbackHandle {
	r.nextID++
	*list = append(*list, pointerHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// --- Scene-level event registration ---

// OnPointerDown registers a callback fired when a mouse button is pressed.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a callback fired when a mouse button is released.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnClick registers a callback fired on press then release over the same
// actor.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(&s.handlers.click, EventClick, fn)
}

// --- Input processing ---

// ProcessInput reads pointer input for this frame (queued injections first,
// otherwise the real mouse) and fires pointer callbacks. Run calls it before
// Update; custom loops should do the same.
func (s *Scene) ProcessInput() {
	if s.ProcessPendingInput() {
		return
	}

	mx, my := ebiten.CursorPosition()
	wx, wy := s.screenToWorld(float64(mx), float64(my))

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	s.processPointer(wx, wy, pressed, button, readModifiers())
}

// ProcessPendingInput consumes one queued synthetic pointer event, if any,
// and reports whether it did. Hosts without an ebiten mouse (terminals,
// tests) call it instead of ProcessInput.
func (s *Scene) ProcessPendingInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	ev := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	wx, wy := s.screenToWorld(ev.screenX, ev.screenY)
	s.processPointer(wx, wy, ev.pressed, ev.button, 0)
	return true
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// screenToWorld converts screen coordinates through the active camera.
func (s *Scene) screenToWorld(sx, sy float64) (float64, float64) {
	if s.camera != nil {
		return s.camera.ScreenToWorld(sx, sy)
	}
	return sx, sy
}

// topActorAt returns the topmost member actor containing (wx, wy), or nil.
func (s *Scene) topActorAt(wx, wy float64) Actor {
	hits := s.Intersect(Vec2{wx, wy})
	if len(hits) == 0 {
		return nil
	}
	return hits[0]
}

// processPointer runs the press/release state machine for the mouse. The
// button is latched at press time so a release always matches its press.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	switch {
	case pressed && !ps.down:
		target := s.topActorAt(wx, wy)
		ps.down = true
		ps.button = button
		ps.hit = target
		s.firePointer(EventPointerDown, s.handlers.pointerDown, target, wx, wy, button, mods)
	case !pressed && ps.down:
		target := s.topActorAt(wx, wy)
		if ps.hit != nil && ps.hit == target {
			s.firePointer(EventClick, s.handlers.click, target, wx, wy, ps.button, mods)
			// Scene handlers may have removed the target.
			if c, ok := target.(Clickable); ok && s.Contains(target) {
				c.HandleClick(PointerContext{Actor: target, GlobalX: wx, GlobalY: wy, Button: ps.button, Modifiers: mods})
			}
		}
		s.firePointer(EventPointerUp, s.handlers.pointerUp, target, wx, wy, ps.button, mods)
		ps.down = false
		ps.hit = nil
	}
	ps.lastX = wx
	ps.lastY = wy
}

func (s *Scene) firePointer(event EventType, handlers []pointerHandler, target Actor, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := PointerContext{
		Actor:     target,
		GlobalX:   wx,
		GlobalY:   wy,
		Button:    button,
		Modifiers: mods,
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
	e := SceneEvent{Type: event, Actor: target, GlobalX: wx, GlobalY: wy, Button: button, ZOrder: -1}
	if target != nil {
		e.Bounds = target.Bounds()
		if rank, ok := s.order.rankOf(target); ok {
			e.ZOrder = rank
		}
	}
	s.emit(e)
}
