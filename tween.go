package storytime

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of a BaseActor simultaneously. Create
// one via the constructors (TweenPosition, TweenSize, TweenScale,
// TweenRotation, TweenColor) and call Update(dt) each frame, typically from
// the actor's OnUpdate. Values go through the actor's setters, so geometry
// tweens re-index the actor in every scene it belongs to.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(v [4]float64)
	Done   bool
}

func newTweenGroup(from, to []float64, duration float32, fn ease.TweenFunc, apply func([4]float64)) *TweenGroup {
	g := &TweenGroup{count: len(from), apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// Update advances all tweens by dt seconds and writes the values to the
// actor. A finished group ignores further updates.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone
}

// TweenPosition moves a to (toX, toY).
func TweenPosition(a *BaseActor, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := a.Position()
	return newTweenGroup([]float64{p.X, p.Y}, []float64{toX, toY}, duration, fn, func(v [4]float64) {
		a.SetPosition(Vec2{v[0], v[1]})
	})
}

// TweenSize resizes a to (toW, toH).
func TweenSize(a *BaseActor, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	s := a.Size()
	return newTweenGroup([]float64{s.X, s.Y}, []float64{toW, toH}, duration, fn, func(v [4]float64) {
		a.SetSize(Vec2{v[0], v[1]})
	})
}

// TweenScale scales a about its center to (toSX, toSY).
func TweenScale(a *BaseActor, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	s := a.Scale()
	return newTweenGroup([]float64{s.X, s.Y}, []float64{toSX, toSY}, duration, fn, func(v [4]float64) {
		a.SetScale(Vec2{v[0], v[1]})
	})
}

// TweenRotation rotates a to the given angle in radians.
func TweenRotation(a *BaseActor, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup([]float64{a.Rotation()}, []float64{to}, duration, fn, func(v [4]float64) {
		a.SetRotation(v[0])
	})
}

// TweenColor animates all four components of a.Color. Color does not affect
// bounds, so no re-index happens.
func TweenColor(a *BaseActor, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := a.Color
	return newTweenGroup([]float64{c.R, c.G, c.B, c.A}, []float64{to.R, to.G, to.B, to.A}, duration, fn, func(v [4]float64) {
		a.Color = Color{v[0], v[1], v[2], v[3]}
	})
}
