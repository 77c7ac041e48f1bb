package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(0)
	if !approx(v.X, 1) || !approx(v.Y, 0) {
		t.Fatalf("FromAngle(0) = %+v, want (1,0)", v)
	}
	v = FromAngle(math.Pi / 2)
	if !approx(v.X, 0) || !approx(v.Y, 1) {
		t.Fatalf("FromAngle(pi/2) = %+v, want (0,1)", v)
	}
}

func TestAddSubScale(t *testing.T) {
	a := Vec2{X: 3, Y: -1}
	b := Vec2{X: 1, Y: 2}

	if got := a.Add(b); !approx(got.X, 4) || !approx(got.Y, 1) {
		t.Fatalf("Add = %+v, want (4,1)", got)
	}
	if got := a.Sub(b); !approx(got.X, 2) || !approx(got.Y, -3) {
		t.Fatalf("Sub = %+v, want (2,-3)", got)
	}
	if got := a.Scale(2); !approx(got.X, 6) || !approx(got.Y, -2) {
		t.Fatalf("Scale = %+v, want (6,-2)", got)
	}
}

func TestLenAndNorm(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	if got := v.Len(); !approx(got, 5) {
		t.Fatalf("Len = %v, want 5", got)
	}
	if got := v.LenSq(); !approx(got, 25) {
		t.Fatalf("LenSq = %v, want 25", got)
	}
	n := v.Norm()
	if !approx(n.Len(), 1) {
		t.Fatalf("Norm length = %v, want 1", n.Len())
	}
	if !approx(n.X, 0.6) || !approx(n.Y, 0.8) {
		t.Fatalf("Norm = %+v, want (0.6,0.8)", n)
	}

	zero := Vec2{}
	if got := zero.Norm(); got != (Vec2{}) {
		t.Fatalf("Norm of zero vector = %+v, want zero", got)
	}
}

func TestRotate(t *testing.T) {
	v := Vec2{X: 1, Y: 0}
	r := v.Rotate(math.Pi / 2)
	if !approx(r.X, 0) || !approx(r.Y, 1) {
		t.Fatalf("Rotate(pi/2) = %+v, want (0,1)", r)
	}

	// Rotating there and back must be the identity.
	back := r.Rotate(-math.Pi / 2)
	if !approx(back.X, v.X) || !approx(back.Y, v.Y) {
		t.Fatalf("Rotate round trip = %+v, want %+v", back, v)
	}
}

func TestAngleMatchesFromAngle(t *testing.T) {
	for _, a := range []float64{0, 0.5, -1.2, 3.0} {
		got := FromAngle(a).Angle()
		if !approx(got, a) {
			t.Errorf("FromAngle(%v).Angle() = %v", a, got)
		}
	}
}
