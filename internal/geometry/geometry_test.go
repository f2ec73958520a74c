package geometry

import (
	"math"
	"testing"

	"wirecanvas/internal/shape"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nested() shape.Collection {
	return shape.NewCollection(
		shape.Shape{ID: "group1", Kind: shape.KindGroup, X: 10, Y: 10, Width: 200, Height: 200, IsContainer: true},
		shape.Shape{ID: "group2", ParentID: "group1", Kind: shape.KindGroup, X: 20, Y: 20, Width: 100, Height: 100, IsContainer: true},
		shape.Shape{ID: "rect", ParentID: "group2", Kind: shape.KindRect, X: 30, Y: 30, Width: 10, Height: 10},
	)
}

func TestGlobalPositionNested(t *testing.T) {
	c := nested()
	rect, _ := c.Get("rect")

	got := GlobalPosition(rect, c)
	if got.X != 60 || got.Y != 60 {
		t.Errorf("GlobalPosition(rect): got (%v,%v), want (60,60)", got.X, got.Y)
	}
}

func TestGlobalPositionDanglingParent(t *testing.T) {
	c := shape.NewCollection(shape.Shape{ID: "orphan", ParentID: "gone", Kind: shape.KindRect, X: 7, Y: 8})
	s, _ := c.Get("orphan")

	got := GlobalPosition(s, c)
	if got.X != 7 || got.Y != 8 {
		t.Errorf("orphan position: got (%v,%v), want (7,8)", got.X, got.Y)
	}
}

func TestGlobalPositionCycleTerminates(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "a", ParentID: "b", Kind: shape.KindGroup, X: 1, Y: 1},
		shape.Shape{ID: "b", ParentID: "a", Kind: shape.KindGroup, X: 2, Y: 2},
	)
	a, _ := c.Get("a")

	got := GlobalPosition(a, c)
	if got.X != 3 || got.Y != 3 {
		t.Errorf("cyclic position: got (%v,%v), want (3,3)", got.X, got.Y)
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "g", Kind: shape.KindGroup, X: 12.25, Y: -3.5, IsContainer: true},
		shape.Shape{ID: "inner", ParentID: "g", Kind: shape.KindGroup, X: 0.1, Y: 0.2, IsContainer: true},
		shape.Shape{ID: "s", ParentID: "inner", Kind: shape.KindCircle, X: 33.3, Y: 44.4, Radius: 5},
	)
	s, _ := c.Get("s")
	parent, _ := c.Get("inner")

	global := GlobalPosition(s, c)
	local := GlobalToLocal(global.X, global.Y, s.ParentID, c)
	if !approxEqual(local.X, s.X) || !approxEqual(local.Y, s.Y) {
		t.Errorf("GlobalToLocal(GlobalPosition): got (%v,%v), want (%v,%v)", local.X, local.Y, s.X, s.Y)
	}

	back := LocalToGlobal(local.X, local.Y, parent, c)
	if !approxEqual(back.X, global.X) || !approxEqual(back.Y, global.Y) {
		t.Errorf("LocalToGlobal: got (%v,%v), want (%v,%v)", back.X, back.Y, global.X, global.Y)
	}
}

func TestGlobalToLocalIdentity(t *testing.T) {
	c := nested()
	for _, parent := range []string{"", "missing"} {
		got := GlobalToLocal(5, 6, parent, c)
		if got.X != 5 || got.Y != 6 {
			t.Errorf("GlobalToLocal(parent=%q): got (%v,%v), want (5,6)", parent, got.X, got.Y)
		}
	}
}

func TestBoundsUnionRectAndCircle(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "rect1", Kind: shape.KindRect, X: 0, Y: 0, Width: 100, Height: 100},
		shape.Shape{ID: "circle1", Kind: shape.KindCircle, X: 250, Y: 250, Radius: 50},
	)

	got, ok := BoundsOf([]string{"rect1", "circle1"}, c)
	if !ok {
		t.Fatalf("BoundsOf returned none")
	}
	want := shape.Rect{X: 0, Y: 0, Width: 300, Height: 300}
	if got != want {
		t.Errorf("BoundsOf: got %+v, want %+v", got, want)
	}
}

func TestBoundsOfNone(t *testing.T) {
	c := nested()
	if _, ok := BoundsOf(nil, c); ok {
		t.Errorf("BoundsOf(nil): got ok")
	}
	if _, ok := BoundsOf([]string{"x", "y"}, c); ok {
		t.Errorf("BoundsOf(unresolved): got ok")
	}
}

func TestBoundsStrokeUsesPoints(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "g", Kind: shape.KindGroup, X: 100, Y: 100, IsContainer: true},
		shape.Shape{ID: "pen", ParentID: "g", Kind: shape.KindPen, X: 10, Y: 0, Points: []float64{-5, 5, 20, -10, 0, 30}},
	)

	got, ok := BoundsOf([]string{"pen"}, c)
	if !ok {
		t.Fatalf("BoundsOf(pen) returned none")
	}
	want := shape.Rect{X: 105, Y: 90, Width: 25, Height: 40}
	if got != want {
		t.Errorf("stroke bounds: got %+v, want %+v", got, want)
	}
}

func TestBoundsSmartArrowPointsAreGlobal(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "sa", Kind: shape.KindSmartArrow, X: 999, Y: 999, Points: []float64{10, 20, 50, 60}},
	)
	got, _ := BoundsOf([]string{"sa"}, c)
	want := shape.Rect{X: 10, Y: 20, Width: 40, Height: 40}
	if got != want {
		t.Errorf("smart-arrow bounds: got %+v, want %+v", got, want)
	}
}

func TestBoundsEmptyStrokeIgnored(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "pen", Kind: shape.KindPen},
		shape.Shape{ID: "r", Kind: shape.KindRect, X: 1, Y: 2, Width: 3, Height: 4},
	)
	got, ok := BoundsOf([]string{"pen", "r"}, c)
	if !ok || got != (shape.Rect{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Errorf("bounds: got %+v ok=%v", got, ok)
	}
}

func TestTextExtent(t *testing.T) {
	s := shape.Shape{ID: "t", Kind: shape.KindText, X: 0, Y: 0, Text: "hello", FontSize: 10}
	r, _ := Extent(s, shape.NewCollection(s))
	if !approxEqual(r.Width, 30) || !approxEqual(r.Height, 12) {
		t.Errorf("text extent: got %vx%v, want 30x12", r.Width, r.Height)
	}

	s.Width = 80
	r, _ = Extent(s, shape.NewCollection(s))
	if r.Width != 80 {
		t.Errorf("explicit width: got %v, want 80", r.Width)
	}

	s = shape.Shape{ID: "t", Kind: shape.KindText, Text: "ab"}
	w, h := TextSize(s)
	if !approxEqual(w, 24) || !approxEqual(h, 24) {
		t.Errorf("default font size: got %vx%v, want 24x24", w, h)
	}
}

func TestSnapToGrid(t *testing.T) {
	cases := []struct {
		v, grid, want float64
	}{
		{29, 20, 20},
		{31, 20, 40},
		{-11, 20, -20},
		{13.7, 0, 13.7},
		{13.7, -5, 13.7},
	}
	for _, tc := range cases {
		if got := SnapToGrid(tc.v, tc.grid); got != tc.want {
			t.Errorf("SnapToGrid(%v, %v): got %v, want %v", tc.v, tc.grid, got, tc.want)
		}
	}

	v := 0.1
	for i := 0; i < 100; i++ {
		v = SnapToGrid(v+0.3, 0.1)
	}
	if !approxEqual(v, SnapToGrid(v, 0.1)) {
		t.Errorf("repeated snapping drifted: %v", v)
	}
}
