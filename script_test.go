package storytime

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

// frame mimics one host loop iteration: input first, then update.
func frame(s *Scene) {
	s.ProcessPendingInput()
	s.Update(WorldTime{})
}

func TestLoadSceneScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{name: "malformed json", script: `{"steps": [`},
		{name: "no steps", script: `{"steps": []}`},
		{name: "unknown action", script: `{"steps": [{"action": "teleport"}]}`},
		{name: "add without actor", script: `{"steps": [{"action": "add", "width": 1, "height": 1}]}`},
		{name: "remove without actor", script: `{"steps": [{"action": "remove"}]}`},
		{name: "negative size", script: `{"steps": [{"action": "add", "actor": "a", "width": -1}]}`},
		{name: "short color", script: `{"steps": [{"action": "add", "actor": "a", "color": [1, 0]}]}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := LoadSceneScript([]byte(test.script))
			require.Error(t, err)
			require.Nil(t, r)
			require.True(t, errors.IsType(err, ErrTypeInvalidScript))
		})
	}
}

func TestScriptRunnerSteps(t *testing.T) {
	r, err := LoadSceneScript([]byte(`{"steps": [
		{"action": "add", "actor": "a", "x": 0, "y": 0, "width": 10, "height": 10, "color": [1, 0, 0]},
		{"action": "move", "actor": "a", "x": 20, "y": 5},
		{"action": "resize", "actor": "a", "width": 30, "height": 30},
		{"action": "wait", "frames": 2},
		{"action": "click", "x": 25, "y": 10},
		{"action": "remove", "actor": "a"}
	]}`))
	require.NoError(t, err)

	s := NewScene("script")
	s.SetScriptRunner(r)

	var clicked []Actor
	s.OnClick(func(ctx PointerContext) { clicked = append(clicked, ctx.Actor) })

	frame(s)
	a, ok := r.Actor("a")
	require.True(t, ok)
	require.True(t, s.Contains(a))
	require.Equal(t, Color{R: 1, A: 1}, a.Color)
	require.Equal(t, AABB{X: 0, Y: 0, Width: 10, Height: 10}, a.Bounds())

	frame(s)
	require.Equal(t, AABB{X: 20, Y: 5, Width: 10, Height: 10}, a.Bounds())

	frame(s)
	require.Equal(t, AABB{X: 20, Y: 5, Width: 30, Height: 30}, a.Bounds())
	require.Equal(t, []Actor{a}, s.Intersect(Vec2{45, 30}))

	// wait occupies two frames
	frame(s)
	frame(s)
	require.Zero(t, s.PendingInjections())

	frame(s)
	require.Equal(t, 2, s.PendingInjections())
	require.Empty(t, clicked)

	// press, then release plus the final remove
	frame(s)
	require.False(t, r.Done())
	frame(s)
	require.Equal(t, []Actor{a}, clicked)
	require.False(t, s.Contains(a))
	require.True(t, r.Done())
	require.NoError(t, r.Err())

	_, ok = r.Actor("a")
	require.False(t, ok)
}

func TestScriptRunnerUnknownActor(t *testing.T) {
	r, err := LoadSceneScript([]byte(`{"steps": [
		{"action": "move", "actor": "ghost", "x": 1, "y": 1},
		{"action": "add", "actor": "b", "width": 5, "height": 5}
	]}`))
	require.NoError(t, err)

	s := NewScene("script")
	s.SetScriptRunner(r)
	frame(s)
	frame(s)

	require.True(t, r.Done())
	require.Error(t, r.Err())
	require.True(t, errors.IsType(r.Err(), ErrTypeInvalidScript))

	// The runner keeps going after a failed step.
	b, ok := r.Actor("b")
	require.True(t, ok)
	require.True(t, s.Contains(b))
}

func TestScriptRunnerDoneIsSticky(t *testing.T) {
	r, err := LoadSceneScript([]byte(`{"steps": [{"action": "wait", "frames": 1}]}`))
	require.NoError(t, err)

	s := NewScene("script")
	s.SetScriptRunner(r)
	frame(s)
	require.True(t, r.Done())
	frame(s)
	require.True(t, r.Done())
	require.Zero(t, s.Len())
}
