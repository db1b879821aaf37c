package storytime

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/stretchr/testify/require"
)

// captureLogs redirects package logs into a builder for the test's duration.
func captureLogs(t *testing.T) *strings.Builder {
	t.Helper()
	var b strings.Builder
	logs.SetInlineEncoder()
	logs.SetLevel(logs.ParseLevel("debug"))
	logs.SetLogger(func(e logs.Entry) {
		fmt.Fprint(&b, e)
	})
	t.Cleanup(func() { logs.SetLevel(logs.ParseLevel("info")) })
	return &b
}

func TestDebugRenderLogsStats(t *testing.T) {
	out := captureLogs(t)

	s := NewScene("debug")
	s.SetDebugMode(true)
	mustAdd(t, s, box("A", 0, 0, 10, 10))
	s.Render(&recordingContext{})

	require.Contains(t, out.String(), "scene rendered")
	require.Contains(t, out.String(), `"visible":1`)
	t.Log(out.String())
}

func TestDebugRenderSilentWhenDisabled(t *testing.T) {
	out := captureLogs(t)

	s := NewScene("debug")
	mustAdd(t, s, box("A", 0, 0, 10, 10))
	s.Render(&recordingContext{})

	require.NotContains(t, out.String(), "scene rendered")
}

func TestDebugWarnsOnCrowdedNode(t *testing.T) {
	out := captureLogs(t)

	s := NewSceneWithConfig(SceneConfig{Name: "debug", Debug: true})
	// Every box straddles the root's split lines and stays in the root.
	for i := 0; i <= debugMaxNodeItems; i++ {
		mustAdd(t, s, box("A", -1, -1, 2, 2))
	}

	require.Contains(t, out.String(), "quadtree node holds too many actors")
}

func TestDebugWarnsOnSaturatedDepthCap(t *testing.T) {
	out := captureLogs(t)

	// Default quadtree config: the boxes share one deepest cell, so the leaf
	// at the depth cap overflows.
	s := NewSceneWithConfig(SceneConfig{Name: "debug", Debug: true})
	for i := 0; i <= defaultQuadtreeMaxItems; i++ {
		mustAdd(t, s, box("A", 1+float64(i)*0.001, 1, 0.0005, 0.0005))
	}

	require.Contains(t, out.String(), "quadtree saturated its depth cap")
}

func TestDebugQuietBelowDepthCap(t *testing.T) {
	out := captureLogs(t)

	s := NewSceneWithConfig(SceneConfig{
		Name:     "debug",
		Debug:    true,
		Quadtree: QuadtreeConfig{MaxItems: 1, MaxDepth: 20},
	})
	mustAdd(t, s,
		box("A", 10, 10, 1, 1),
		box("B", 5000, 5000, 1, 1),
	)

	require.NotContains(t, out.String(), "quadtree saturated")
}

func TestWalkQuadtree(t *testing.T) {
	s := NewSceneWithConfig(SceneConfig{
		Name:        "walk",
		WorldBounds: AABB{Width: 100, Height: 100},
		Quadtree:    QuadtreeConfig{MaxItems: 1},
	})
	mustAdd(t, s,
		box("A", 10, 10, 5, 5),
		box("B", 80, 80, 5, 5),
		box("C", 45, 45, 10, 10),
	)

	var nodes, items, maxDepth int
	s.WalkQuadtree(func(region AABB, depth, actors int) {
		nodes++
		items += actors
		if depth > maxDepth {
			maxDepth = depth
		}
		if depth == 0 {
			require.Equal(t, AABB{Width: 100, Height: 100}, region)
			require.Equal(t, 1, actors, "C straddles the center")
		}
	})

	require.Equal(t, 5, nodes)
	require.Equal(t, 3, items)
	require.Equal(t, 1, maxDepth)
}
