package editor

import (
	"math"

	"wirecanvas/internal/arrow"
	"wirecanvas/internal/geometry"
	"wirecanvas/internal/grouping"
	"wirecanvas/internal/hierarchy"
	"wirecanvas/internal/shape"
)

// Transform is the result of an interactive resize/rotate. X and Y are
// parent-relative; a zero scale counts as 1.
type Transform struct {
	X, Y           float64
	Rotation       float64
	ScaleX, ScaleY float64
}

// AddShapes commits freshly drawn shapes. Positions are canvas coordinates;
// a shape whose ParentID names an existing container is converted into that
// container's space. A ParentID naming another shape of the same batch is
// kept as is, anything else is dropped. Shapes without an id, or with one
// already on the canvas, get a fresh id. It returns the ids added.
func (e *Editor) AddShapes(shapes ...shape.Shape) []string {
	cur := e.Shapes()
	batch := make(map[string]bool, len(shapes))
	for _, s := range shapes {
		if s.ID != "" && !cur.Has(s.ID) {
			batch[s.ID] = true
		}
	}

	added := make([]shape.Shape, 0, len(shapes))
	for _, s := range shapes {
		s = s.Clone()
		if s.ID == "" || cur.Has(s.ID) {
			s.ID = e.newID()
		}
		if s.ParentID != "" && !batch[s.ParentID] {
			parent, ok := cur.Get(s.ParentID)
			switch {
			case !ok || !parent.CanContain():
				s.ParentID = ""
			case s.Kind != shape.KindSmartArrow:
				local := geometry.GlobalToLocal(s.X, s.Y, s.ParentID, cur)
				s.X, s.Y = local.X, local.Y
			}
		}
		added = append(added, s)
	}
	if len(added) == 0 {
		return nil
	}

	next := cur.Append(added...)
	ids := make([]string, len(added))
	for i, s := range added {
		ids[i] = s.ID
	}
	e.commit(arrow.RerouteMany(ids, recomputeArrows(ids, next)))
	return ids
}

// recomputeArrows refreshes the listed smart arrows, dropping any whose
// endpoints are missing.
func recomputeArrows(ids []string, c shape.Collection) shape.Collection {
	var dead []string
	for _, id := range ids {
		s, ok := c.Get(id)
		if !ok || s.Kind != shape.KindSmartArrow {
			continue
		}
		a, ok := arrow.Recompute(s, c)
		if !ok {
			dead = append(dead, id)
			continue
		}
		c = c.Replace(a)
	}
	return c.Remove(dead...)
}

// InsertLibraryShapes adds a prefabricated set of shapes centred on the
// viewport and selects them.
func (e *Editor) InsertLibraryShapes(shapes []shape.Shape, vp Viewport) []string {
	if len(shapes) == 0 {
		return nil
	}
	set := shape.NewCollection(shapes...)
	var offset shape.Point
	if bounds, ok := geometry.BoundsOf(set.IDs(), set); ok {
		offset = vp.Center().Sub(bounds.Center())
	}

	moved := make([]shape.Shape, 0, len(shapes))
	for _, s := range shapes {
		s = s.Clone()
		if s.ParentID == "" || !set.Has(s.ParentID) {
			s.ParentID = ""
			s.X += offset.X
			s.Y += offset.Y
		}
		moved = append(moved, s)
	}

	ids := e.AddShapes(moved...)
	e.Select(ids...)
	return ids
}

// MoveShape is the end of a drag. x and y are parent-relative and are
// snapped when grid snapping is on. Locked shapes do not move.
func (e *Editor) MoveShape(id string, x, y float64) bool {
	cur := e.Shapes()
	s, ok := cur.Get(id)
	if !ok || s.Locked {
		return false
	}
	x, y = e.snap(x, y)

	next := cur.Update(id, func(s *shape.Shape) { s.X, s.Y = x, y })
	return e.commitWithReroute(id, next)
}

// Nudge moves a shape by dx, dy from its current position.
func (e *Editor) Nudge(id string, dx, dy float64) bool {
	s, ok := e.Shapes().Get(id)
	if !ok {
		return false
	}
	return e.MoveShape(id, s.X+dx, s.Y+dy)
}

// TransformShape applies the end of a resize/rotate interaction.
func (e *Editor) TransformShape(id string, t Transform) bool {
	cur := e.Shapes()
	s, ok := cur.Get(id)
	if !ok || s.Locked {
		return false
	}
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	x, y := e.snap(t.X, t.Y)

	next := cur.Update(id, func(s *shape.Shape) {
		s.X, s.Y = x, y
		s.Rotation = t.Rotation
		switch s.Kind {
		case shape.KindRect, shape.KindImage, shape.KindGroup:
			s.Width *= sx
			s.Height *= sy
		case shape.KindCircle:
			s.Radius *= math.Max(sx, sy)
		case shape.KindText:
			if s.FontSize == 0 {
				s.FontSize = geometry.DefaultFontSize
			}
			s.FontSize *= sx
		}
	})
	return e.commitWithReroute(id, next)
}

// UpdateShape edits properties of one shape. A smart arrow is recomputed
// afterwards, so changing its anchors or style takes effect immediately.
func (e *Editor) UpdateShape(id string, fn func(*shape.Shape)) bool {
	cur := e.Shapes()
	if !cur.Has(id) {
		return false
	}
	next := cur.Update(id, func(s *shape.Shape) {
		fn(s)
		s.ID = id
	})
	next = recomputeArrows([]string{id}, next)
	return e.commitWithReroute(id, next)
}

// commitWithReroute reroutes every arrow attached to id or its descendants
// and commits.
func (e *Editor) commitWithReroute(id string, next shape.Collection) bool {
	if !next.Has(id) {
		e.commit(arrow.Reroute(id, next))
		return true
	}
	ids, ok := e.withDescendants(id, next)
	if !ok {
		return false
	}
	e.commit(arrow.RerouteMany(ids, next))
	return true
}

func (e *Editor) snap(x, y float64) (float64, float64) {
	if !e.settings.SnapToGrid {
		return x, y
	}
	p := geometry.SnapPoint(shape.Point{X: x, Y: y}, e.settings.GridSize)
	return p.X, p.Y
}

// DeleteSelected removes the unlocked part of the selection. Locked shapes
// stay and remain selected. Children of removed containers become roots at
// their stored coordinates, arrows to removed shapes are dropped and arrows
// on the orphaned subtrees are rerouted.
func (e *Editor) DeleteSelected() bool {
	cur := e.Shapes()
	var doomed, kept []string
	for _, id := range e.selection {
		s, ok := cur.Get(id)
		if !ok {
			continue
		}
		if s.Locked {
			kept = append(kept, id)
			continue
		}
		doomed = append(doomed, id)
	}
	if len(doomed) == 0 {
		return false
	}

	gone := make(map[string]bool, len(doomed))
	for _, id := range doomed {
		gone[id] = true
	}
	var orphans []string
	next := cur.Remove(doomed...).Map(func(s shape.Shape) shape.Shape {
		if s.ParentID == "" || !gone[s.ParentID] {
			return s
		}
		orphans = append(orphans, s.ID)
		s = s.Clone()
		s.ParentID = ""
		return s
	})

	// orphans and everything below them change canvas position
	moved := doomed
	for _, id := range orphans {
		ids, ok := e.withDescendants(id, next)
		if !ok {
			return false
		}
		moved = append(moved, ids...)
	}
	e.commit(arrow.RerouteMany(moved, next))
	e.selection = kept
	return true
}

// Clear removes every shape.
func (e *Editor) Clear() bool {
	if e.Shapes().Len() == 0 {
		return false
	}
	e.commit(shape.NewCollection())
	e.selection = nil
	return true
}

// ToggleLock flips the lock of every selected shape.
func (e *Editor) ToggleLock() bool {
	if len(e.selection) == 0 {
		return false
	}
	next := e.Shapes()
	for _, id := range e.selection {
		next = next.Update(id, func(s *shape.Shape) { s.Locked = !s.Locked })
	}
	e.commit(next)
	return true
}

func (e *Editor) CanGroup() bool {
	return grouping.CanGroup(e.selection, e.Shapes())
}

func (e *Editor) CanUngroup() bool {
	return grouping.CanUngroup(e.selection, e.Shapes())
}

// Group wraps the selection in a new group and selects it.
func (e *Editor) Group() bool {
	cur := e.Shapes()
	if err := hierarchy.Check(cur); err != nil {
		e.logger.Warn("corrupt hierarchy", "op", "group", "err", err)
		return false
	}
	if !grouping.CanGroup(e.selection, cur) {
		return false
	}
	next, sel, ok := grouping.GroupWithID(e.newID(), e.selection, cur)
	if !ok {
		return false
	}
	e.commit(next)
	e.selection = sel
	return true
}

// Ungroup dissolves the selected groups and selects their former children.
func (e *Editor) Ungroup() bool {
	cur := e.Shapes()
	if err := hierarchy.Check(cur); err != nil {
		e.logger.Warn("corrupt hierarchy", "op", "ungroup", "err", err)
		return false
	}
	next, sel, ok := grouping.Ungroup(e.selection, cur)
	if !ok {
		return false
	}
	e.commit(next)
	e.selection = sel
	return true
}
