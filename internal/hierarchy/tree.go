// Package hierarchy maintains the parent/child relation over a flat shape
// collection. The child's ParentID is authoritative; a container's Children
// list is derived from it by SyncChildren.
//
// A ParentID that does not resolve is tolerated everywhere: the shape is
// treated as a root for that step. Only a cycle in the parent chain is an
// error, reported as ErrCorruptHierarchy.
package hierarchy

import (
	"errors"
	"fmt"

	"wirecanvas/internal/shape"
)

var ErrCorruptHierarchy = errors.New("corrupt hierarchy")

// Tree splits a collection into roots and per-parent children, both in
// collection order.
type Tree struct {
	Roots    []shape.Shape
	Children map[string][]shape.Shape
}

// Partition builds a Tree in a single pass. A shape is a root iff it has no
// ParentID; whether the parent exists is not checked.
func Partition(c shape.Collection) Tree {
	t := Tree{Children: make(map[string][]shape.Shape)}
	for i := 0; i < c.Len(); i++ {
		s := c.At(i)
		if s.ParentID == "" {
			t.Roots = append(t.Roots, s)
			continue
		}
		t.Children[s.ParentID] = append(t.Children[s.ParentID], s)
	}
	return t
}

func Roots(c shape.Collection) []shape.Shape {
	return Partition(c).Roots
}

// Parent resolves the parent of s.
func Parent(s shape.Shape, c shape.Collection) (shape.Shape, bool) {
	if s.ParentID == "" {
		return shape.Shape{}, false
	}
	return c.Get(s.ParentID)
}

func DirectChildren(containerID string, c shape.Collection) []shape.Shape {
	var out []shape.Shape
	for i := 0; i < c.Len(); i++ {
		if s := c.At(i); s.ParentID == containerID {
			out = append(out, s)
		}
	}
	return out
}

// AllDescendants returns the transitive children of containerID, depth
// first. Reaching a shape twice means the parent graph has a cycle.
func AllDescendants(containerID string, c shape.Collection) ([]shape.Shape, error) {
	tree := Partition(c)
	seen := map[string]bool{containerID: true}

	var out []shape.Shape
	var walk func(id string) error
	walk = func(id string) error {
		for _, child := range tree.Children[id] {
			if seen[child.ID] {
				return fmt.Errorf("%w: %s reached twice below %s", ErrCorruptHierarchy, child.ID, containerID)
			}
			seen[child.ID] = true
			out = append(out, child)
			if err := walk(child.ID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(containerID); err != nil {
		return nil, err
	}
	return out, nil
}

// IsAncestor reports whether ancestorID appears in the parent chain of
// shapeID.
func IsAncestor(ancestorID, shapeID string, c shape.Collection) bool {
	seen := map[string]bool{}
	id := shapeID
	for !seen[id] {
		seen[id] = true
		s, ok := c.Get(id)
		if !ok || s.ParentID == "" {
			return false
		}
		if s.ParentID == ancestorID {
			return true
		}
		id = s.ParentID
	}
	return false
}

// Depth counts the resolvable ancestors of s.
func Depth(s shape.Shape, c shape.Collection) int {
	depth := 0
	seen := map[string]bool{s.ID: true}
	for p, ok := Parent(s, c); ok && !seen[p.ID]; p, ok = Parent(p, c) {
		seen[p.ID] = true
		depth++
	}
	return depth
}

// Check walks every parent chain and fails on the first cycle.
func Check(c shape.Collection) error {
	for i := 0; i < c.Len(); i++ {
		s := c.At(i)
		seen := map[string]bool{s.ID: true}
		for p, ok := Parent(s, c); ok; p, ok = Parent(p, c) {
			if seen[p.ID] {
				return fmt.Errorf("%w: cycle through %s", ErrCorruptHierarchy, s.ID)
			}
			seen[p.ID] = true
		}
	}
	return nil
}
