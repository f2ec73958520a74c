// Package geometry converts between parent-relative and canvas coordinates
// and computes axis-aligned extents for every shape kind.
//
// Lookups that miss are not errors: a parent id that does not resolve ends
// the walk, so the shape is positioned as a root. Rotation is stored on
// shapes but never applied here.
package geometry

import "wirecanvas/internal/shape"

// GlobalPosition sums the positions along the parent chain of s. The walk
// stops at a missing parent and at the first revisited id, so a corrupted
// cyclic chain still yields a position.
func GlobalPosition(s shape.Shape, c shape.Collection) shape.Point {
	pos := s.Position()
	seen := map[string]bool{s.ID: true}

	parentID := s.ParentID
	for parentID != "" && !seen[parentID] {
		parent, ok := c.Get(parentID)
		if !ok {
			break
		}
		seen[parentID] = true
		pos = pos.Add(parent.Position())
		parentID = parent.ParentID
	}
	return pos
}

// GlobalToLocal expresses a canvas point relative to parentID. An empty or
// unresolved parent returns the point unchanged.
func GlobalToLocal(globalX, globalY float64, parentID string, c shape.Collection) shape.Point {
	p := shape.Point{X: globalX, Y: globalY}
	if parentID == "" {
		return p
	}
	parent, ok := c.Get(parentID)
	if !ok {
		return p
	}
	return p.Sub(GlobalPosition(parent, c))
}

// LocalToGlobal converts a point expressed relative to s into canvas
// coordinates.
func LocalToGlobal(localX, localY float64, s shape.Shape, c shape.Collection) shape.Point {
	return shape.Point{X: localX, Y: localY}.Add(GlobalPosition(s, c))
}
