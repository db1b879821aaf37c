package storytime

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- invertAffine ---

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	inv := invertAffine(m)
	// inverse of scale(2,3)+translate(10,20)
	assertMatrix(t, "inv", inv, [6]float64{0.5, 0, 0, 1.0 / 3, -5, -20.0 / 3})

	x, y := transformPoint(m, 7, -4)
	x, y = transformPoint(inv, x, y)
	assertNear(t, "roundtrip x", x, 7)
	assertNear(t, "roundtrip y", y, -4)
}

func TestInvertAffineRotation(t *testing.T) {
	sin, cos := math.Sincos(0.7)
	m := [6]float64{cos, sin, -sin, cos, 3, 4}
	inv := invertAffine(m)
	x, y := transformPoint(m, 1, 2)
	x, y = transformPoint(inv, x, y)
	assertNear(t, "roundtrip x", x, 1)
	assertNear(t, "roundtrip y", y, 2)
}

func TestInvertAffineSingular(t *testing.T) {
	m := [6]float64{0, 0, 0, 0, 5, 5}
	inv := invertAffine(m)
	assertMatrix(t, "singular", inv, identityTransform)
}

// --- transformPoint ---

func TestTransformPointIdentity(t *testing.T) {
	x, y := transformPoint(identityTransform, 42, -17)
	assertNear(t, "x", x, 42)
	assertNear(t, "y", y, -17)
}

func TestTransformPointTranslateScale(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	x, y := transformPoint(m, 1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 23)
}

// --- envelope ---

func TestEnvelope(t *testing.T) {
	got := envelope([4]float64{3, -1, 5, 0}, [4]float64{2, 7, -4, 1})
	want := AABB{X: -1, Y: -4, Width: 6, Height: 11}
	if got != want {
		t.Errorf("envelope = %v, want %v", got, want)
	}
}

func TestEnvelopeSinglePoint(t *testing.T) {
	got := envelope([4]float64{2, 2, 2, 2}, [4]float64{5, 5, 5, 5})
	if got != (AABB{X: 2, Y: 5}) {
		t.Errorf("envelope of one point = %v, want zero-size box at (2,5)", got)
	}
}
