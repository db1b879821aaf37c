package storytime

import (
	"math/rand"
	"testing"
	"time"
)

// setupBenchScene creates a Scene with n small actors laid out on a grid.
func setupBenchScene(n int) (*Scene, []*BaseActor) {
	s := NewScene("bench")
	actors := make([]*BaseActor, n)
	for i := range actors {
		a := NewBaseActor("a", Vec2{float64(i%100) * 40, float64(i/100) * 40}, Vec2{32, 32})
		if err := s.AddActor(a); err != nil {
			panic(err)
		}
		actors[i] = a
	}
	return s, actors
}

// --- Membership ---

func BenchmarkAddRemove_10000Actors(b *testing.B) {
	s, _ := setupBenchScene(10000)
	a := NewBaseActor("extra", Vec2{500, 500}, Vec2{32, 32})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.AddActor(a)
		s.RemoveActor(a)
	}
}

// --- Re-indexing ---

func BenchmarkReindex_10000Actors_Moving(b *testing.B) {
	_, actors := setupBenchScene(10000)
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a := actors[i%len(actors)]
		a.SetPosition(Vec2{rng.Float64() * 4000, rng.Float64() * 4000})
	}
}

func BenchmarkUpdate_10000Actors_Velocity(b *testing.B) {
	s, actors := setupBenchScene(10000)
	for i, a := range actors {
		a.SetVelocity(Vec2{float64(i%7) - 3, float64(i%5) - 2})
	}
	var clock WorldTime

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		clock = clock.Advance(16 * time.Millisecond)
		s.Update(clock)
	}
}

// --- Queries ---

func BenchmarkIntersect_10000Actors(b *testing.B) {
	s, _ := setupBenchScene(10000)
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Intersect(Vec2{rng.Float64() * 4000, rng.Float64() * 4000})
	}
}

func BenchmarkRender_10000Actors(b *testing.B) {
	s, _ := setupBenchScene(10000)
	gc := &recordingContext{}

	// Warm up: first render grows renderBuf.
	s.Render(gc)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		gc.r = recordingRenderer{}
		s.Render(gc)
	}
}

func BenchmarkRender_10000Actors_Zoomed(b *testing.B) {
	s, _ := setupBenchScene(10000)
	s.Camera().Zoom = 0.25
	gc := &recordingContext{}
	s.Render(gc)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		gc.r = recordingRenderer{}
		s.Render(gc)
	}
}
