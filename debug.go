package storytime

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// renderStats holds per-frame timing for one Render call.
// Only populated when Scene.debug is true.
type renderStats struct {
	queryTime time.Duration
	sortTime  time.Duration
	drawTime  time.Duration
	visible   int
	members   int
}

// debugLog logs timing and visibility stats at debug level.
func (s *Scene) debugLog(stats renderStats) {
	if !s.debug {
		return
	}
	logs.WithTag("scene", s.name).
		WithTag("scene_id", s.id.String()).
		WithTag("query", stats.queryTime.String()).
		WithTag("sort", stats.sortTime.String()).
		WithTag("draw", stats.drawTime.String()).
		WithTag("total", (stats.queryTime + stats.sortTime + stats.drawTime).String()).
		WithTag("visible", stats.visible).
		WithTag("actors", stats.members).
		Debug("scene rendered")
}

const (
	// debugMaxNodeItems warns when a single node holds this many items,
	// usually because many actors straddle the same split line.
	debugMaxNodeItems = 256
)

// debugCheckTree warns when the quadtree shape suggests the world bounds or
// quadtree config do not fit the scene.
func (s *Scene) debugCheckTree() {
	st := s.tree.stats()
	cfg := s.tree.cfg
	// A leaf at the depth cap that still overflows can no longer split.
	var saturated int
	s.tree.walk(func(_ AABB, depth, items int) {
		if depth >= cfg.MaxDepth && items > cfg.MaxItems {
			saturated++
		}
	})
	if saturated > 0 {
		logs.WithTag("scene", s.name).
			WithTag("depth", st.depth).
			WithTag("max_depth", cfg.MaxDepth).
			WithTag("nodes", saturated).
			Warn("quadtree saturated its depth cap")
	}
	if st.maxNodeItems > debugMaxNodeItems {
		logs.WithTag("scene", s.name).
			WithTag("items", st.maxNodeItems).
			WithTag("threshold", debugMaxNodeItems).
			Warn("quadtree node holds too many actors")
	}
}

// WalkQuadtree calls fn for every quadtree node, depth-first, with the node's
// region, depth and number of actors stored directly in it. Intended for
// debug overlays.
func (s *Scene) WalkQuadtree(fn func(region AABB, depth, actors int)) {
	s.tree.walk(fn)
}
