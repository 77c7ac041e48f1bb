package geom

import "testing"

var bounds = Size{W: 800, H: 600}

func TestWrapInsideStaysPut(t *testing.T) {
	v := Vec2{X: 400, Y: 300}
	if got := Wrap(v, bounds); got != v {
		t.Fatalf("Wrap(%+v) = %+v, want unchanged", v, got)
	}
}

func TestWrapExitingEdges(t *testing.T) {
	cases := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"right edge", Vec2{X: 810, Y: 100}, Vec2{X: 10, Y: 100}},
		{"left edge", Vec2{X: -5, Y: 100}, Vec2{X: 795, Y: 100}},
		{"bottom edge", Vec2{X: 100, Y: 612}, Vec2{X: 100, Y: 12}},
		{"top edge", Vec2{X: 100, Y: -1}, Vec2{X: 100, Y: 599}},
		{"exact bound", Vec2{X: 800, Y: 600}, Vec2{X: 0, Y: 0}},
		{"multiple wraps", Vec2{X: 1650, Y: -1250}, Vec2{X: 50, Y: 550}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Wrap(tc.in, bounds)
			if !approx(got.X, tc.want.X) || !approx(got.Y, tc.want.Y) {
				t.Fatalf("Wrap(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestWrapRangeInvariant(t *testing.T) {
	for _, v := range []Vec2{{-0.001, 0}, {800.0001, 599.999}, {-1e6, 1e6}} {
		got := Wrap(v, bounds)
		if got.X < 0 || got.X >= bounds.W || got.Y < 0 || got.Y >= bounds.H {
			t.Errorf("Wrap(%+v) = %+v escapes [0,%v)x[0,%v)", v, got, bounds.W, bounds.H)
		}
	}
}

func TestTorusDeltaTakesShortPath(t *testing.T) {
	a := Vec2{X: 790, Y: 300}
	b := Vec2{X: 10, Y: 300}

	d := TorusDelta(a, b, bounds)
	if !approx(d.X, 20) || !approx(d.Y, 0) {
		t.Fatalf("TorusDelta across seam = %+v, want (20,0)", d)
	}

	// Direct path shorter: no wrapping applied.
	d = TorusDelta(Vec2{X: 100, Y: 100}, Vec2{X: 300, Y: 150}, bounds)
	if !approx(d.X, 200) || !approx(d.Y, 50) {
		t.Fatalf("TorusDelta direct = %+v, want (200,50)", d)
	}
}

func TestCirclesOverlapAcrossSeam(t *testing.T) {
	a := Vec2{X: 795, Y: 100}
	b := Vec2{X: 5, Y: 100}

	// Wrapped distance is 10; radii sum 12 overlaps, 8 does not.
	if !CirclesOverlap(a, b, 6, 6, bounds) {
		t.Fatal("circles separated by 10 across the seam should overlap with radii 6+6")
	}
	if CirclesOverlap(a, b, 4, 4, bounds) {
		t.Fatal("circles separated by 10 across the seam must not overlap with radii 4+4")
	}
}

func TestCirclesOverlapInclusiveAtContact(t *testing.T) {
	a := Vec2{X: 100, Y: 100}
	b := Vec2{X: 110, Y: 100}
	if !CirclesOverlap(a, b, 5, 5, bounds) {
		t.Fatal("exact contact must count as an overlap")
	}
}
