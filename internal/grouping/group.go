// Package grouping wraps a selection into a new group shape and unwraps
// groups again, keeping every affected shape at the same canvas position.
package grouping

import (
	"wirecanvas/internal/arrow"
	"wirecanvas/internal/geometry"
	"wirecanvas/internal/hierarchy"
	"wirecanvas/internal/shape"
)

const (
	// Padding is added on every side of the selection bounds.
	Padding = 10

	groupStroke      = "#3b82f6"
	groupStrokeWidth = 1
)

// resolve drops unknown and repeated ids, keeping selection order.
func resolve(ids []string, c shape.Collection) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] || !c.Has(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CanGroup requires at least two shapes, none an ancestor of another.
func CanGroup(ids []string, c shape.Collection) bool {
	ids = resolve(ids, c)
	if len(ids) < 2 {
		return false
	}
	for _, a := range ids {
		for _, b := range ids {
			if a != b && hierarchy.IsAncestor(a, b, c) {
				return false
			}
		}
	}
	return true
}

// Group is GroupWithID with a fresh id.
func Group(ids []string, c shape.Collection) (shape.Collection, []string, bool) {
	return GroupWithID(shape.NewID(), ids, c)
}

// GroupWithID creates a root group around the padded bounds of ids and
// reparents the selection into it. It returns the new collection and the new
// selection (just the group). When CanGroup fails the input is returned
// unchanged with ok false.
func GroupWithID(groupID string, ids []string, c shape.Collection) (out shape.Collection, selection []string, ok bool) {
	if !CanGroup(ids, c) {
		return c, ids, false
	}
	ids = resolve(ids, c)

	bounds, ok := geometry.BoundsOf(ids, c)
	if !ok {
		return c, ids, false
	}
	box := bounds.Expand(Padding)

	member := make(map[string]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}

	out = c.Map(func(s shape.Shape) shape.Shape {
		if !member[s.ID] {
			return s
		}
		g := geometry.GlobalPosition(s, c)
		s = s.Clone()
		s.ParentID = groupID
		s.X = g.X - box.X
		s.Y = g.Y - box.Y
		return s
	})
	out = out.Append(shape.Shape{
		ID:          groupID,
		Kind:        shape.KindGroup,
		X:           box.X,
		Y:           box.Y,
		Width:       box.Width,
		Height:      box.Height,
		Stroke:      groupStroke,
		StrokeWidth: groupStrokeWidth,
		IsContainer: true,
		Children:    append([]string(nil), ids...),
	})
	out = hierarchy.SyncChildren(out)
	out = arrow.RerouteMany(append(ids, groupID), out)
	return out, []string{groupID}, true
}

// CanUngroup reports whether any selected shape is a group.
func CanUngroup(ids []string, c shape.Collection) bool {
	for _, id := range ids {
		if s, ok := c.Get(id); ok && s.Kind == shape.KindGroup {
			return true
		}
	}
	return false
}

// Ungroup dissolves every selected group: direct children become roots at
// their canvas position and the group is deleted. Groups are processed in
// selection order against the progressively updated collection. The new
// selection is every freed child.
func Ungroup(ids []string, c shape.Collection) (out shape.Collection, selection []string, ok bool) {
	if !CanUngroup(ids, c) {
		return c, ids, false
	}

	out = c
	var freed, removed []string
	for _, id := range ids {
		g, found := out.Get(id)
		if !found || g.Kind != shape.KindGroup {
			continue
		}
		cur := out
		out = out.Map(func(s shape.Shape) shape.Shape {
			if s.ParentID != g.ID {
				return s
			}
			pos := geometry.GlobalPosition(s, cur)
			freed = append(freed, s.ID)
			s = s.Clone()
			s.ParentID = ""
			s.X, s.Y = pos.X, pos.Y
			return s
		})
		out = out.Remove(g.ID)
		removed = append(removed, g.ID)
	}

	out = hierarchy.SyncChildren(out)
	touched := append([]string(nil), freed...)
	for _, id := range freed {
		desc, err := hierarchy.AllDescendants(id, out)
		if err != nil {
			continue
		}
		for _, d := range desc {
			touched = append(touched, d.ID)
		}
	}
	out = arrow.RerouteMany(append(touched, removed...), out)
	return out, freed, true
}
