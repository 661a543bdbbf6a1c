package affine

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIdentity(t *testing.T) {
	id := Identity()
	x, y := id.ApplyPoint(3, 4)
	if !approxEqual(x, 3) || !approxEqual(y, 4) {
		t.Errorf("ApplyPoint under identity: got (%v, %v), want (3, 4)", x, y)
	}
}

func TestFromInsertTranslationOnly(t *testing.T) {
	tr := FromInsert(10, 20, 1, 1, 0)
	x, y := tr.ApplyPoint(0, 0)
	if !approxEqual(x, 10) || !approxEqual(y, 20) {
		t.Errorf("got (%v, %v), want (10, 20)", x, y)
	}
}

func TestFromInsertRotation(t *testing.T) {
	tr := FromInsert(0, 0, 1, 1, math.Pi/2)
	x, y := tr.ApplyPoint(1, 0)
	if !approxEqual(x, 0) || !approxEqual(y, 1) {
		t.Errorf("90deg rotation of (1,0): got (%v, %v), want (0, 1)", x, y)
	}
	if !approxEqual(tr.RotationDeg(), 90) {
		t.Errorf("RotationDeg: got %v, want 90", tr.RotationDeg())
	}
}

func TestFromInsertScale(t *testing.T) {
	tr := FromInsert(0, 0, 2, 3, 0)
	x, y := tr.ApplyPoint(1, 1)
	if !approxEqual(x, 2) || !approxEqual(y, 3) {
		t.Errorf("got (%v, %v), want (2, 3)", x, y)
	}
	if !approxEqual(tr.AverageScale(), 2.5) {
		t.Errorf("AverageScale: got %v, want 2.5", tr.AverageScale())
	}
}

// TestCompose verifies composition order: t.Compose(rhs) applies rhs first,
// then t, matching the explode engine's T' = T . M per-insert composition.
func TestCompose(t *testing.T) {
	outer := FromInsert(100, 0, 1, 1, 0)
	inner := FromInsert(0, 10, 1, 1, 0)

	composed := outer.Compose(inner)

	px, py := composed.ApplyPoint(0, 0)
	expX, expY := outer.ApplyPoint(inner.ApplyPoint(0, 0))
	if !approxEqual(px, expX) || !approxEqual(py, expY) {
		t.Errorf("compose mismatch: got (%v, %v), want (%v, %v)", px, py, expX, expY)
	}
	if !approxEqual(px, 100) || !approxEqual(py, 10) {
		t.Errorf("got (%v, %v), want (100, 10)", px, py)
	}
}

func TestApplyVectorIgnoresTranslation(t *testing.T) {
	tr := FromInsert(50, 50, 2, 2, 0)
	x, y := tr.ApplyVector(1, 0)
	if !approxEqual(x, 2) || !approxEqual(y, 0) {
		t.Errorf("ApplyVector: got (%v, %v), want (2, 0) (translation excluded)", x, y)
	}
}

func TestRotationDegNegative(t *testing.T) {
	tr := FromInsert(0, 0, 1, 1, -math.Pi/2)
	if !approxEqual(tr.RotationDeg(), -90) {
		t.Errorf("RotationDeg: got %v, want -90", tr.RotationDeg())
	}
}
