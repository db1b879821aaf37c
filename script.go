package storytime

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// scriptStep is a single action in a scene script.
type scriptStep struct {
	Action string    `json:"action"`
	Actor  string    `json:"actor,omitempty"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
	Color  []float64 `json:"color,omitempty"`
	Frames int       `json:"frames,omitempty"`
	Label  string    `json:"label,omitempty"`
}

// sceneScript is the top-level JSON structure for a scene script.
type sceneScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner applies a JSON scene script one step per frame: adding, moving,
// resizing and removing named BaseActors, waiting, injecting clicks and
// requesting screenshots.
// Attach it to a Scene via SetScriptRunner.
//
//	{"steps": [
//	  {"action": "add", "actor": "a", "x": 0, "y": 0, "width": 10, "height": 10},
//	  {"action": "move", "actor": "a", "x": 20, "y": 5},
//	  {"action": "wait", "frames": 3},
//	  {"action": "click", "x": 25, "y": 10},
//	  {"action": "screenshot", "label": "after-click"},
//	  {"action": "remove", "actor": "a"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	actors    map[string]*BaseActor
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadSceneScript parses a JSON scene script. Every step is checked up front
// so a runner never stops halfway through on a malformed step.
func LoadSceneScript(data []byte) (*ScriptRunner, error) {
	var script sceneScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, errors.New("parsing scene script failed").
			WithType(ErrTypeInvalidScript).
			Wrap(err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("scene script has no steps").
			WithType(ErrTypeInvalidScript)
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, errors.New("invalid scene script step").
				WithType(ErrTypeInvalidScript).
				WithTag("step", i).
				WithTag("action", st.Action).
				Wrap(err)
		}
	}
	return &ScriptRunner{
		steps:  script.Steps,
		actors: make(map[string]*BaseActor),
	}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "add", "move", "resize", "remove":
		if st.Actor == "" {
			return errors.New("missing actor name")
		}
	case "wait", "click", "screenshot":
	default:
		return errors.Newf("unknown action %q", st.Action)
	}
	if st.Action == "add" || st.Action == "resize" {
		if st.Width < 0 || st.Height < 0 {
			return errors.New("negative size")
		}
	}
	if st.Color != nil && len(st.Color) != 3 && len(st.Color) != 4 {
		return errors.New("color needs 3 or 4 components")
	}
	return nil
}

// SetScriptRunner attaches a script to the scene. Its steps run from
// Scene.Update, before actors are updated.
func (s *Scene) SetScriptRunner(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the first error a step produced, such as an add rejected by
// the scene. The runner keeps going after a failed step.
func (r *ScriptRunner) Err() error {
	return r.err
}

// Actor returns the actor a script step created under name.
func (r *ScriptRunner) Actor(name string) (*BaseActor, bool) {
	a, ok := r.actors[name]
	return a, ok
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Injected clicks must be consumed before the script moves on.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	r.apply(s, st)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) apply(s *Scene, st scriptStep) {
	switch st.Action {
	case "add":
		a := NewBaseActor(st.Actor, Vec2{st.X, st.Y}, Vec2{st.Width, st.Height})
		if st.Color != nil {
			a.Color = stepColor(st.Color)
		}
		if err := s.AddActor(a); err != nil {
			r.fail(err)
			return
		}
		r.actors[st.Actor] = a
	case "move":
		if a := r.lookup(st); a != nil {
			a.SetPosition(Vec2{st.X, st.Y})
		}
	case "resize":
		if a := r.lookup(st); a != nil {
			a.SetSize(Vec2{st.Width, st.Height})
		}
	case "remove":
		if a := r.lookup(st); a != nil {
			s.RemoveActor(a)
			delete(r.actors, st.Actor)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "click":
		s.InjectClick(st.X, st.Y)
	case "screenshot":
		s.Screenshot(st.Label)
	}
}

func (r *ScriptRunner) lookup(st scriptStep) *BaseActor {
	a, ok := r.actors[st.Actor]
	if !ok {
		r.fail(errors.New("unknown actor").
			WithType(ErrTypeInvalidScript).
			WithTag("action", st.Action).
			WithTag("actor", st.Actor))
		return nil
	}
	return a
}

func (r *ScriptRunner) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func stepColor(c []float64) Color {
	col := Color{R: c[0], G: c[1], B: c[2], A: 1}
	if len(c) == 4 {
		col.A = c[3]
	}
	return col
}
