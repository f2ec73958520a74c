package hierarchy

import (
	"slices"

	"wirecanvas/internal/shape"
)

// SortByHierarchy reorders c so every shape follows its parent. Shapes keep
// their relative order otherwise; a parent is pulled forward to just before
// the first of its children. Cyclic chains are emitted in discovery order.
func SortByHierarchy(c shape.Collection) shape.Collection {
	out := make([]shape.Shape, 0, c.Len())
	added := make(map[string]bool, c.Len())

	for i := 0; i < c.Len(); i++ {
		s := c.At(i)
		if added[s.ID] {
			continue
		}

		// collect the chain of ancestors not yet emitted, nearest first
		chain := []shape.Shape{s}
		onChain := map[string]bool{s.ID: true}
		for p, ok := Parent(s, c); ok && !added[p.ID] && !onChain[p.ID]; p, ok = Parent(p, c) {
			chain = append(chain, p)
			onChain[p.ID] = true
		}
		for j := len(chain) - 1; j >= 0; j-- {
			out = append(out, chain[j])
			added[chain[j].ID] = true
		}
	}
	return shape.NewCollection(out...)
}

// PaintOrder is SortByHierarchy with template images and everything inside
// them moved above all other shapes.
func PaintOrder(c shape.Collection) shape.Collection {
	sorted := SortByHierarchy(c)

	onTop := make(map[string]bool)
	for i := 0; i < sorted.Len(); i++ {
		s := sorted.At(i)
		if s.Kind == shape.KindImage && s.IsTemplate {
			onTop[s.ID] = true
			continue
		}
		// parents precede children, so the parent's mark is already set
		if s.ParentID != "" && onTop[s.ParentID] {
			onTop[s.ID] = true
		}
	}

	below := sorted.Filter(func(s shape.Shape) bool { return !onTop[s.ID] })
	above := sorted.Filter(func(s shape.Shape) bool { return onTop[s.ID] })
	return below.Append(above.All()...)
}

// SyncChildren rewrites every container's Children list from the ParentID
// back-references. Ids already listed keep their order, stale ones are
// dropped and missing ones are appended in collection order. Non-containers
// lose any list they carry.
func SyncChildren(c shape.Collection) shape.Collection {
	tree := Partition(c)
	return c.Map(func(s shape.Shape) shape.Shape {
		var want []string
		if s.CanContain() {
			actual := make(map[string]bool, len(tree.Children[s.ID]))
			for _, child := range tree.Children[s.ID] {
				actual[child.ID] = true
			}
			listed := make(map[string]bool, len(s.Children))
			for _, id := range s.Children {
				if actual[id] && !listed[id] {
					want = append(want, id)
					listed[id] = true
				}
			}
			for _, child := range tree.Children[s.ID] {
				if !listed[child.ID] {
					want = append(want, child.ID)
					listed[child.ID] = true
				}
			}
		}
		if slices.Equal(want, s.Children) {
			return s
		}
		s = s.Clone()
		s.Children = want
		return s
	})
}
