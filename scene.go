package storytime

import (
	"reflect"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
)

// EventStore is the interface for optional ECS integration.
// When set on a Scene, membership, re-index and pointer events are forwarded
// to it.
type EventStore interface {
	EmitEvent(event SceneEvent)
}

// SceneEvent carries scene activity for the ECS bridge.
type SceneEvent struct {
	Type    EventType
	SceneID uuid.UUID
	Actor   Actor
	// Bounds is the actor's box when the event fired.
	Bounds AABB
	// ZOrder is the actor's rank when the event fired (-1 once removed).
	ZOrder int
	// Pointer fields (valid for EventPointerDown, EventPointerUp, EventClick)
	GlobalX float64
	GlobalY float64
	Button  MouseButton
}

// DefaultViewport is the viewport of the camera every new scene starts with.
var DefaultViewport = Rect{X: 0, Y: 0, Width: 1280, Height: 720}

// DefaultWorldBounds is the quadtree root region used when SceneConfig leaves
// WorldBounds empty. Actors outside it are still indexed, in the root node.
var DefaultWorldBounds = AABB{X: -8192, Y: -8192, Width: 16384, Height: 16384}

// SceneConfig configures a Scene. Zero fields fall back to defaults.
type SceneConfig struct {
	Name        string
	WorldBounds AABB
	Quadtree    QuadtreeConfig
	Viewport    Rect
	Debug       bool
}

// Scene owns a set of actors, a quadtree over their bounds and an insertion
// order over their identities. It answers what is visible in the active
// camera, in draw order, and what is under a point, topmost first.
//
// A Scene is not safe for concurrent use. Mutations (AddActor, RemoveActor,
// bounds changes of member actors) must come from a single writer; queries may
// run concurrently with each other only between mutations.
type Scene struct {
	id    uuid.UUID
	name  string
	store EventStore
	debug bool

	actors   []Actor
	tree     *quadtree[Actor]
	order    *orderedRegistry[Actor]
	listener *sceneListener
	time     WorldTime

	cameras []*Camera
	camera  *Camera

	renderBuf   []Actor
	updateBuf   []Actor
	lastVisible int

	screenshotQueue []string

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	injectQueue []syntheticPointerEvent

	script     *ScriptRunner
	updateFunc func() error
}

// sceneListener is the scene's bounds-changed subscription. It is kept
// unexported so only member actors can trigger a re-index.
type sceneListener struct {
	scene *Scene
}

func (l *sceneListener) ActorBoundsChanged(a Actor) {
	l.scene.reindex(a)
}

// NewScene creates an empty scene with the default configuration.
func NewScene(name string) *Scene {
	return NewSceneWithConfig(SceneConfig{Name: name})
}

// NewSceneWithConfig creates an empty scene with a single active camera.
func NewSceneWithConfig(cfg SceneConfig) *Scene {
	if cfg.WorldBounds == (AABB{}) {
		cfg.WorldBounds = DefaultWorldBounds
	}
	if cfg.Viewport == (Rect{}) {
		cfg.Viewport = DefaultViewport
	}
	s := &Scene{
		id:    uuid.New(),
		name:  cfg.Name,
		debug: cfg.Debug,
		tree:  newQuadtree(cfg.WorldBounds, Actor.Bounds, cfg.Quadtree),
		order: newOrderedRegistry[Actor](),
	}
	s.listener = &sceneListener{scene: s}
	s.NewCamera(cfg.Viewport)
	return s
}

// ID returns the scene's unique identifier, used to tag logs and metrics.
func (s *Scene) ID() uuid.UUID {
	return s.id
}

// Name returns the scene name.
func (s *Scene) Name() string {
	return s.name
}

// Time returns the time passed to the last Update.
func (s *Scene) Time() WorldTime {
	return s.time
}

// Actors returns the member actors in the order they were added. The
// returned slice MUST NOT be mutated.
func (s *Scene) Actors() []Actor {
	return s.actors
}

// Len returns the number of member actors.
func (s *Scene) Len() int {
	return len(s.actors)
}

// Contains reports whether a is a member of the scene.
func (s *Scene) Contains(a Actor) bool {
	if !isActorKey(a) {
		return false
	}
	_, ok := s.order.rankOf(a)
	return ok
}

// ZOrder returns the draw rank of a. Ranks are dense in [0, Len()).
func (s *Scene) ZOrder(a Actor) (int, bool) {
	if !isActorKey(a) {
		return 0, false
	}
	return s.order.rankOf(a)
}

// AddActor registers a with the scene: it gets the next draw rank, is
// inserted into the quadtree, and is re-indexed whenever it reports a bounds
// change. Adding a member is a no-op. Actors with malformed bounds are
// rejected with an ErrTypeInvalidBounds error and the scene is left untouched.
func (s *Scene) AddActor(a Actor) error {
	if !isActorKey(a) {
		err := errors.New("actor must be a non-nil comparable value").
			WithType(ErrTypeInvalidActor).
			WithTag("scene", s.name)
		instrumentRejectActor(s, ErrTypeInvalidActor)
		return err
	}
	if s.Contains(a) {
		return nil
	}
	box := a.Bounds()
	if err := box.Validate(); err != nil {
		instrumentRejectActor(s, ErrTypeInvalidBounds)
		return errors.New("cannot add actor with invalid bounds").
			WithType(ErrTypeInvalidBounds).
			WithTag("scene", s.name).
			Wrap(err)
	}

	s.actors = append(s.actors, a)
	rank := s.order.register(a)
	s.tree.add(a)
	a.SubscribeBoundsChanged(s.listener)

	instrumentActorCount(s)
	s.emit(SceneEvent{Type: EventActorAdded, Actor: a, Bounds: box, ZOrder: rank})
	if s.debug {
		s.debugCheckTree()
	}
	return nil
}

// RemoveActor unregisters a from every index structure and compacts the
// remaining draw ranks. Removing a non-member is a no-op.
func (s *Scene) RemoveActor(a Actor) {
	if !s.Contains(a) {
		return
	}
	a.UnsubscribeBoundsChanged(s.listener)
	s.tree.remove(a)
	s.order.unregister(a)
	for i, m := range s.actors {
		if m == a {
			copy(s.actors[i:], s.actors[i+1:])
			s.actors[len(s.actors)-1] = nil
			s.actors = s.actors[:len(s.actors)-1]
			break
		}
	}
	for _, cam := range s.cameras {
		if cam.followTarget == a {
			cam.Unfollow()
		}
	}
	if s.pointer.hit == a {
		s.pointer.hit = nil
	}

	instrumentActorCount(s)
	s.emit(SceneEvent{Type: EventActorRemoved, Actor: a, Bounds: a.Bounds(), ZOrder: -1})
}

// Dispose removes every actor and drops the scene's metric series. The scene
// must not be used afterwards.
func (s *Scene) Dispose() {
	for len(s.actors) > 0 {
		s.RemoveActor(s.actors[len(s.actors)-1])
	}
	forgetSceneMetrics(s)
}

// reindex moves a member actor to the node matching its new bounds. The
// old node is found through the quadtree's back-reference, never from the
// already-updated bounds. Draw rank is untouched.
func (s *Scene) reindex(a Actor) {
	if !s.tree.contains(a) {
		return
	}
	box := a.Bounds()
	if err := box.Validate(); err != nil {
		logs.WithTag("scene", s.name).
			WithTag("scene_id", s.id.String()).
			Warn(errors.New("actor reported invalid bounds; keeping previous node").Wrap(err))
		return
	}
	s.tree.remove(a)
	s.tree.add(a)

	instrumentReindex(s)
	rank, _ := s.order.rankOf(a)
	s.emit(SceneEvent{Type: EventActorReindexed, Actor: a, Bounds: box, ZOrder: rank})
}

// Update stores t as the scene time and hands it to every member actor. The
// actor set is snapshotted first: actors added during the tick are updated
// from the next tick on, actors removed during the tick are skipped.
func (s *Scene) Update(t WorldTime) {
	s.time = t
	if s.script != nil {
		s.script.step(s)
	}

	s.updateBuf = append(s.updateBuf[:0], s.actors...)
	for _, a := range s.updateBuf {
		if s.Contains(a) {
			a.TimeElapse(t)
		}
	}
	clear(s.updateBuf)

	dt := float32(t.Elapsed.Seconds())
	for _, cam := range s.cameras {
		cam.update(dt)
	}
}

// SetUpdateFunc sets a callback run by Tick before Update. A non-nil error
// from fn stops the host loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Tick runs the update callback, then Update. Host loops (Run, termview.Run)
// call it once per frame after input processing.
func (s *Scene) Tick(t WorldTime) error {
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	s.Update(t)
	return nil
}

// Intersect returns the member actors whose bounds contain p, topmost (most
// recently added) first.
func (s *Scene) Intersect(p Vec2) []Actor {
	hits := s.tree.intersect(p)
	s.order.sortDescending(hits)
	return hits
}

// ActorsIn returns the member actors whose bounds intersect region, in draw
// order (back to front).
func (s *Scene) ActorsIn(region AABB) []Actor {
	var out []Actor
	s.tree.query(region, func(a Actor) {
		out = append(out, a)
	})
	s.order.sortAscending(out)
	return out
}

// SetEventStore sets the optional ECS bridge.
func (s *Scene) SetEventStore(store EventStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame render
// stats are logged at debug level and quadtree shape warnings are emitted.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

func (s *Scene) emit(e SceneEvent) {
	if s.store == nil {
		return
	}
	e.SceneID = s.id
	s.store.EmitEvent(e)
}

// isActorKey reports whether a can be used as a map key: non-nil, with a
// comparable dynamic type.
func isActorKey(a Actor) bool {
	if a == nil {
		return false
	}
	return reflect.TypeOf(a).Comparable()
}

// --- Cameras ---

// NewCamera creates a camera with the given viewport and adds it to the
// scene. The first camera of a scene becomes the active one.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := NewCamera(viewport)
	s.cameras = append(s.cameras, cam)
	if s.camera == nil {
		s.camera = cam
	}
	return cam
}

// RemoveCamera removes a camera from the scene. Removing the active camera
// activates the first remaining one, if any.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			break
		}
	}
	if s.camera == cam {
		s.camera = nil
		if len(s.cameras) > 0 {
			s.camera = s.cameras[0]
		}
	}
}

// SetCamera makes cam the active camera, adding it to the scene if needed.
// A nil camera disables rendering.
func (s *Scene) SetCamera(cam *Camera) {
	if cam != nil {
		found := false
		for _, c := range s.cameras {
			if c == cam {
				found = true
				break
			}
		}
		if !found {
			s.cameras = append(s.cameras, cam)
		}
	}
	s.camera = cam
}

// Camera returns the active camera, or nil.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}
