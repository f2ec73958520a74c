package hierarchy

import (
	"errors"
	"reflect"
	"testing"

	"wirecanvas/internal/shape"
)

func ids(shapes []shape.Shape) []string {
	out := make([]string, 0, len(shapes))
	for _, s := range shapes {
		out = append(out, s.ID)
	}
	return out
}

// root -> a -> b, root -> c, plus an unrelated rect and an orphan.
func fixture() shape.Collection {
	return shape.NewCollection(
		shape.Shape{ID: "b", ParentID: "a", Kind: shape.KindRect},
		shape.Shape{ID: "root", Kind: shape.KindGroup, IsContainer: true},
		shape.Shape{ID: "free", Kind: shape.KindRect},
		shape.Shape{ID: "a", ParentID: "root", Kind: shape.KindGroup, IsContainer: true},
		shape.Shape{ID: "c", ParentID: "root", Kind: shape.KindText},
		shape.Shape{ID: "orphan", ParentID: "deleted", Kind: shape.KindRect},
	)
}

func TestPartition(t *testing.T) {
	tree := Partition(fixture())

	if got, want := ids(tree.Roots), []string{"root", "free"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Roots: got %v, want %v", got, want)
	}
	if got, want := ids(tree.Children["root"]), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Children[root]: got %v, want %v", got, want)
	}
	// no existence validation at this layer
	if got := ids(tree.Children["deleted"]); !reflect.DeepEqual(got, []string{"orphan"}) {
		t.Errorf("Children[deleted]: got %v, want [orphan]", got)
	}
}

func TestDirectChildrenAndDescendants(t *testing.T) {
	c := fixture()

	if got := ids(DirectChildren("root", c)); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("DirectChildren(root): got %v", got)
	}

	desc, err := AllDescendants("root", c)
	if err != nil {
		t.Fatalf("AllDescendants failed: %v", err)
	}
	if got, want := ids(desc), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AllDescendants(root): got %v, want %v", got, want)
	}

	desc, err = AllDescendants("free", c)
	if err != nil || len(desc) != 0 {
		t.Errorf("AllDescendants(free): got %v, %v", ids(desc), err)
	}
}

func TestAllDescendantsCycle(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "x", ParentID: "y", Kind: shape.KindGroup, IsContainer: true},
		shape.Shape{ID: "y", ParentID: "x", Kind: shape.KindGroup, IsContainer: true},
	)

	_, err := AllDescendants("x", c)
	if !errors.Is(err, ErrCorruptHierarchy) {
		t.Errorf("AllDescendants on cycle: got %v, want ErrCorruptHierarchy", err)
	}
	if err := Check(c); !errors.Is(err, ErrCorruptHierarchy) {
		t.Errorf("Check on cycle: got %v, want ErrCorruptHierarchy", err)
	}
	if err := Check(fixture()); err != nil {
		t.Errorf("Check(fixture): got %v, want nil", err)
	}
}

func TestIsAncestor(t *testing.T) {
	c := fixture()

	cases := []struct {
		ancestor, id string
		want         bool
	}{
		{"root", "b", true},
		{"a", "b", true},
		{"b", "root", false},
		{"c", "b", false},
		{"root", "root", false},
		{"deleted", "orphan", true},
		{"root", "missing", false},
	}
	for _, tc := range cases {
		if got := IsAncestor(tc.ancestor, tc.id, c); got != tc.want {
			t.Errorf("IsAncestor(%s, %s): got %v, want %v", tc.ancestor, tc.id, got, tc.want)
		}
	}

	cyclic := shape.NewCollection(
		shape.Shape{ID: "x", ParentID: "y"},
		shape.Shape{ID: "y", ParentID: "x"},
	)
	if IsAncestor("z", "x", cyclic) {
		t.Errorf("IsAncestor on cycle without match: got true")
	}
}

func TestSortByHierarchy(t *testing.T) {
	got := SortByHierarchy(fixture()).IDs()
	want := []string{"root", "a", "b", "free", "c", "orphan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByHierarchy: got %v, want %v", got, want)
	}

	pos := map[string]int{}
	for i, id := range got {
		pos[id] = i
	}
	for _, s := range fixture().All() {
		if p, ok := pos[s.ParentID]; ok && p > pos[s.ID] {
			t.Errorf("%s painted before its parent %s", s.ID, s.ParentID)
		}
	}
}

func TestSortByHierarchyCycleTerminates(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "x", ParentID: "y"},
		shape.Shape{ID: "y", ParentID: "x"},
		shape.Shape{ID: "z"},
	)
	got := SortByHierarchy(c)
	if got.Len() != 3 {
		t.Errorf("Len: got %d, want 3", got.Len())
	}
}

func TestPaintOrderTemplatesOnTop(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "inside", ParentID: "phone", Kind: shape.KindRect},
		shape.Shape{ID: "phone", Kind: shape.KindImage, IsTemplate: true, IsContainer: true},
		shape.Shape{ID: "bg", Kind: shape.KindImage},
		shape.Shape{ID: "pen", Kind: shape.KindPen},
	)
	got := PaintOrder(c).IDs()
	want := []string{"bg", "pen", "phone", "inside"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PaintOrder: got %v, want %v", got, want)
	}
}

func TestDepth(t *testing.T) {
	c := fixture()
	b, _ := c.Get("b")
	orphan, _ := c.Get("orphan")
	if got := Depth(b, c); got != 2 {
		t.Errorf("Depth(b): got %d, want 2", got)
	}
	if got := Depth(orphan, c); got != 0 {
		t.Errorf("Depth(orphan): got %d, want 0", got)
	}
}

func TestSyncChildren(t *testing.T) {
	c := shape.NewCollection(
		shape.Shape{ID: "g", Kind: shape.KindGroup, IsContainer: true, Children: []string{"r2", "stale", "r1"}},
		shape.Shape{ID: "r1", ParentID: "g", Kind: shape.KindRect},
		shape.Shape{ID: "r3", ParentID: "g", Kind: shape.KindRect},
		shape.Shape{ID: "r2", ParentID: "g", Kind: shape.KindRect},
		shape.Shape{ID: "rect", Kind: shape.KindRect, Children: []string{"r1"}},
		shape.Shape{ID: "tpl", Kind: shape.KindImage, IsContainer: true, Children: []string{}},
	)
	out := SyncChildren(c)

	g, _ := out.Get("g")
	if want := []string{"r2", "r1", "r3"}; !reflect.DeepEqual(g.Children, want) {
		t.Errorf("g.Children: got %v, want %v", g.Children, want)
	}
	rect, _ := out.Get("rect")
	if rect.Children != nil {
		t.Errorf("rect.Children: got %v, want nil", rect.Children)
	}
	tpl, _ := out.Get("tpl")
	if len(tpl.Children) != 0 {
		t.Errorf("tpl.Children: got %v, want empty", tpl.Children)
	}

	orig, _ := c.Get("g")
	if len(orig.Children) != 3 || orig.Children[1] != "stale" {
		t.Errorf("input collection mutated: %v", orig.Children)
	}
}
