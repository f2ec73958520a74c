package grouping

import (
	"math"
	"reflect"
	"testing"

	"wirecanvas/internal/arrow"
	"wirecanvas/internal/geometry"
	"wirecanvas/internal/hierarchy"
	"wirecanvas/internal/shape"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func scene() shape.Collection {
	c := shape.NewCollection(
		shape.Shape{ID: "frame", Kind: shape.KindImage, X: 100, Y: 100, Width: 400, Height: 400, IsContainer: true, IsTemplate: true, Children: []string{"inner"}},
		shape.Shape{ID: "inner", ParentID: "frame", Kind: shape.KindRect, X: 10.5, Y: 20.25, Width: 30, Height: 30},
		shape.Shape{ID: "rect", Kind: shape.KindRect, X: 0, Y: 0, Width: 50, Height: 40},
		shape.Shape{ID: "circle", Kind: shape.KindCircle, X: 300, Y: 50, Radius: 25},
		shape.Shape{ID: "pen", Kind: shape.KindPen, X: 5, Y: 5, Points: []float64{0, 0, 10, 80}},
	)
	rect, _ := c.Get("rect")
	circle, _ := c.Get("circle")
	return c.Append(arrow.New("link", rect, circle, shape.AnchorRight, shape.AnchorLeft, shape.StyleElbow, c))
}

func globals(c shape.Collection) map[string]shape.Point {
	out := map[string]shape.Point{}
	for _, s := range c.All() {
		out[s.ID] = geometry.GlobalPosition(s, c)
	}
	return out
}

func TestCanGroup(t *testing.T) {
	c := scene()

	cases := []struct {
		ids  []string
		want bool
	}{
		{[]string{"rect", "circle"}, true},
		{[]string{"rect"}, false},
		{[]string{"rect", "rect"}, false},
		{[]string{"rect", "missing"}, false},
		{[]string{"frame", "inner"}, false},
		{[]string{"inner", "frame"}, false},
		{[]string{"inner", "rect"}, true},
	}
	for _, tc := range cases {
		if got := CanGroup(tc.ids, c); got != tc.want {
			t.Errorf("CanGroup(%v): got %v, want %v", tc.ids, got, tc.want)
		}
	}
}

func TestGroupPreservesGlobalPositions(t *testing.T) {
	c := scene()
	before := globals(c)
	sel := []string{"rect", "circle", "inner"}

	out, selection, ok := GroupWithID("g", sel, c)
	if !ok {
		t.Fatalf("GroupWithID failed")
	}
	if !reflect.DeepEqual(selection, []string{"g"}) {
		t.Errorf("selection: got %v, want [g]", selection)
	}

	g, found := out.Get("g")
	if !found {
		t.Fatalf("group not added")
	}
	// bounds: rect (0,0)-(50,40), circle (275,25)-(325,75), inner (110.5,120.25)-(140.5,150.25)
	want := shape.Rect{X: -10, Y: -10, Width: 345, Height: 170.25}
	got := shape.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
	if got != want {
		t.Errorf("group box: got %+v, want %+v", got, want)
	}
	if !g.IsContainer || g.ParentID != "" {
		t.Errorf("group flags: container=%v parent=%q", g.IsContainer, g.ParentID)
	}
	if !reflect.DeepEqual(g.Children, sel) {
		t.Errorf("group children: got %v, want %v", g.Children, sel)
	}

	after := globals(out)
	for _, id := range sel {
		s, _ := out.Get(id)
		if s.ParentID != "g" {
			t.Errorf("%s parent: got %q, want g", id, s.ParentID)
		}
		if !approxEqual(after[id].X, before[id].X) || !approxEqual(after[id].Y, before[id].Y) {
			t.Errorf("%s moved: got %+v, want %+v", id, after[id], before[id])
		}
	}

	frame, _ := out.Get("frame")
	if len(frame.Children) != 0 {
		t.Errorf("frame still lists children: %v", frame.Children)
	}
	if err := hierarchy.Check(out); err != nil {
		t.Errorf("Check after group: %v", err)
	}
}

func TestGroupRefusesInvalidSelection(t *testing.T) {
	c := scene()
	out, selection, ok := GroupWithID("g", []string{"frame", "inner"}, c)
	if ok {
		t.Errorf("GroupWithID(frame, inner): got ok")
	}
	if !reflect.DeepEqual(out.All(), c.All()) {
		t.Errorf("collection changed on refused group")
	}
	if !reflect.DeepEqual(selection, []string{"frame", "inner"}) {
		t.Errorf("selection changed: %v", selection)
	}
}

func TestUngroupInvertsGroup(t *testing.T) {
	c := scene()
	before := globals(c)
	sel := []string{"rect", "circle", "pen"}

	grouped, _, ok := GroupWithID("g", sel, c)
	if !ok {
		t.Fatalf("GroupWithID failed")
	}
	if !CanUngroup([]string{"g"}, grouped) {
		t.Fatalf("CanUngroup(g): got false")
	}

	out, freed, ok := Ungroup([]string{"g"}, grouped)
	if !ok {
		t.Fatalf("Ungroup failed")
	}
	if out.Has("g") {
		t.Errorf("group still present after ungroup")
	}
	if !reflect.DeepEqual(freed, sel) {
		t.Errorf("freed: got %v, want %v", freed, sel)
	}

	after := globals(out)
	for _, id := range sel {
		s, _ := out.Get(id)
		if s.ParentID != "" {
			t.Errorf("%s still parented to %q", id, s.ParentID)
		}
		if !approxEqual(after[id].X, before[id].X) || !approxEqual(after[id].Y, before[id].Y) {
			t.Errorf("%s moved: got %+v, want %+v", id, after[id], before[id])
		}
	}

	link, _ := out.Get("link")
	orig, _ := c.Get("link")
	for i := range orig.Points {
		if !approxEqual(link.Points[i], orig.Points[i]) {
			t.Errorf("link points: got %v, want %v", link.Points, orig.Points)
			break
		}
	}
}

func TestUngroupNestedAndMultiple(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "outer", Kind: shape.KindGroup, X: 10, Y: 10, IsContainer: true},
		shape.Shape{ID: "inner", ParentID: "outer", Kind: shape.KindGroup, X: 20, Y: 20, IsContainer: true},
		shape.Shape{ID: "leaf", ParentID: "inner", Kind: shape.KindRect, X: 30, Y: 30, Width: 5, Height: 5},
		shape.Shape{ID: "other", Kind: shape.KindGroup, X: 500, Y: 0, IsContainer: true},
		shape.Shape{ID: "o1", ParentID: "other", Kind: shape.KindRect, X: 1, Y: 2},
		shape.Shape{ID: "plain", Kind: shape.KindRect},
	)

	if CanUngroup([]string{"plain", "leaf"}, c) {
		t.Errorf("CanUngroup without groups: got true")
	}

	out, freed, ok := Ungroup([]string{"outer", "plain", "other"}, c)
	if !ok {
		t.Fatalf("Ungroup failed")
	}
	if want := []string{"inner", "o1"}; !reflect.DeepEqual(freed, want) {
		t.Errorf("freed: got %v, want %v", freed, want)
	}
	inner, _ := out.Get("inner")
	if inner.ParentID != "" || inner.X != 30 || inner.Y != 30 {
		t.Errorf("inner: got parent=%q at (%v,%v), want root at (30,30)", inner.ParentID, inner.X, inner.Y)
	}
	leaf, _ := out.Get("leaf")
	if g := geometry.GlobalPosition(leaf, out); g.X != 60 || g.Y != 60 {
		t.Errorf("leaf global: got %+v, want (60,60)", g)
	}
	o1, _ := out.Get("o1")
	if o1.X != 501 || o1.Y != 2 {
		t.Errorf("o1: got (%v,%v), want (501,2)", o1.X, o1.Y)
	}
	if out.Has("outer") || out.Has("other") || !out.Has("plain") {
		t.Errorf("remaining ids: %v", out.IDs())
	}
}

func TestUngroupDropsArrowsToGroup(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "g", Kind: shape.KindGroup, Width: 10, Height: 10, IsContainer: true},
		shape.Shape{ID: "r", Kind: shape.KindRect, X: 100, Width: 10, Height: 10},
	)
	g, _ := c.Get("g")
	r, _ := c.Get("r")
	c = c.Append(arrow.New("a", g, r, shape.AnchorRight, shape.AnchorLeft, shape.StyleStraight, c))

	out, _, ok := Ungroup([]string{"g"}, c)
	if !ok {
		t.Fatalf("Ungroup failed")
	}
	if out.Has("a") {
		t.Errorf("arrow to dissolved group survived")
	}
}

func TestUngroupRefused(t *testing.T) {
	c := scene()
	out, sel, ok := Ungroup([]string{"rect"}, c)
	if ok || !reflect.DeepEqual(sel, []string{"rect"}) || out.Len() != c.Len() {
		t.Errorf("Ungroup(rect): got ok=%v sel=%v len=%d", ok, sel, out.Len())
	}
}
