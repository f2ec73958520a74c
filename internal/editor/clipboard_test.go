package editor

import (
	"errors"
	"reflect"
	"testing"

	"wirecanvas/internal/clipboard"
	"wirecanvas/internal/shape"
)

func pasteFixture() []shape.Shape {
	base := []shape.Shape{
		{ID: "g", Kind: shape.KindGroup, X: 100, Y: 100, Width: 50, Height: 50, IsContainer: true},
		{ID: "c", ParentID: "g", Kind: shape.KindRect, X: 10, Y: 10, Width: 10, Height: 10},
		{ID: "o", Kind: shape.KindRect, X: 300, Y: 300, Width: 10, Height: 10},
		{ID: "far", Kind: shape.KindRect, X: 900, Y: 0, Width: 10, Height: 10},
	}
	base = withArrow(base, "x1", "c", "o", shape.AnchorRight, shape.AnchorLeft)
	return withArrow(base, "x3", "c", "far", shape.AnchorRight, shape.AnchorLeft)
}

func TestCopyIncludesDescendants(t *testing.T) {
	e := newEditor(t, pasteFixture())
	e.Select("g", "o", "x1", "x3")

	var ids []string
	for _, s := range e.Copy() {
		ids = append(ids, s.ID)
	}
	if want := []string{"g", "c", "o", "x1", "x3"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Copy: got %v, want %v", ids, want)
	}
}

func TestCopyDetachesFromUncopiedParent(t *testing.T) {
	e := newEditor(t, pasteFixture())
	e.Select("c")

	copied := e.Copy()
	if len(copied) != 1 {
		t.Fatalf("Copy: got %d shapes, want 1", len(copied))
	}
	if c := copied[0]; c.ParentID != "" || c.X != 110 || c.Y != 110 {
		t.Errorf("detached child: got parent %q at (%v,%v), want root at (110,110)", c.ParentID, c.X, c.Y)
	}
	if orig := mustGet(t, e, "c"); orig.ParentID != "g" || orig.X != 10 {
		t.Errorf("Copy modified the canvas: %+v", orig)
	}
}

func TestPasteRemapsIDs(t *testing.T) {
	e := newEditor(t, pasteFixture())
	e.Select("g", "o", "x1", "x3")
	before := e.Shapes().Len()

	roots := e.Paste(e.Copy(), shape.Point{X: 20, Y: 20})

	// x3 points at an uncopied shape and is dropped; its id n5 is never used
	if want := []string{"n1", "n3", "n4"}; !reflect.DeepEqual(roots, want) {
		t.Fatalf("roots: got %v, want %v", roots, want)
	}
	if !reflect.DeepEqual(e.Selection(), roots) {
		t.Errorf("selection: got %v", e.Selection())
	}
	if got := e.Shapes().Len(); got != before+4 {
		t.Errorf("shape count: got %d, want %d", got, before+4)
	}
	if e.Shapes().Has("n5") {
		t.Errorf("arrow with an uncopied endpoint was pasted")
	}

	g := mustGet(t, e, "n1")
	if g.X != 120 || g.Y != 120 || !reflect.DeepEqual(g.Children, []string{"n2"}) {
		t.Errorf("pasted group: got (%v,%v) children %v", g.X, g.Y, g.Children)
	}
	if c := mustGet(t, e, "n2"); c.ParentID != "n1" || c.X != 10 {
		t.Errorf("pasted child: got parent %q x=%v", c.ParentID, c.X)
	}
	a := mustGet(t, e, "n4")
	if a.FromShapeID != "n2" || a.ToShapeID != "n3" {
		t.Errorf("pasted arrow endpoints: %s -> %s", a.FromShapeID, a.ToShapeID)
	}
	if want := []float64{140, 135, 320, 325}; !reflect.DeepEqual(a.Points, want) {
		t.Errorf("pasted arrow points: got %v, want %v", a.Points, want)
	}

	// originals untouched
	if orig := mustGet(t, e, "x1"); orig.FromShapeID != "c" {
		t.Errorf("original arrow changed: %+v", orig)
	}
}

func TestPasteNothing(t *testing.T) {
	e := newEditor(t, twoBoxes())
	if got := e.Paste(nil, PasteOffset); got != nil || e.CanUndo() {
		t.Errorf("Paste(nil): got %v undo=%v", got, e.CanUndo())
	}
}

func TestCopyToPasteFrom(t *testing.T) {
	e := newEditor(t, twoBoxes())
	var board clipboard.Memory

	if err := e.CopyTo(&board); !errors.Is(err, clipboard.ErrNoShapes) {
		t.Errorf("CopyTo with empty selection: got %v, want ErrNoShapes", err)
	}

	e.Select("A")
	if err := e.CopyTo(&board); err != nil {
		t.Fatalf("CopyTo failed: %v", err)
	}
	ids, err := e.PasteFrom(&board)
	if err != nil {
		t.Fatalf("PasteFrom failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("PasteFrom: got %v", ids)
	}
	if s := mustGet(t, e, ids[0]); s.X != PasteOffset.X || s.Y != PasteOffset.Y || s.Width != 100 {
		t.Errorf("pasted shape: %+v", s)
	}

	board.WriteAll("hello")
	if _, err := e.PasteFrom(&board); !errors.Is(err, clipboard.ErrNoShapes) {
		t.Errorf("PasteFrom(text): got %v, want ErrNoShapes", err)
	}
}
