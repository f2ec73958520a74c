package editor

import (
	"wirecanvas/internal/clipboard"
	"wirecanvas/internal/geometry"
	"wirecanvas/internal/shape"
)

// PasteOffset is how far pasted shapes land from their originals.
var PasteOffset = shape.Point{X: 20, Y: 20}

// Copy returns the selected shapes plus everything below them, in
// collection order. Shapes whose parent is not part of the copy are
// detached and carry their canvas position.
func (e *Editor) Copy() []shape.Shape {
	cur := e.Shapes()
	include := make(map[string]bool)
	for _, id := range e.selection {
		ids, ok := e.withDescendants(id, cur)
		if !ok {
			return nil
		}
		for _, x := range ids {
			include[x] = true
		}
	}

	var out []shape.Shape
	for i := 0; i < cur.Len(); i++ {
		s := cur.At(i)
		if !include[s.ID] {
			continue
		}
		s = s.Clone()
		if s.ParentID != "" && !include[s.ParentID] {
			if s.Kind != shape.KindSmartArrow {
				g := geometry.GlobalPosition(s, cur)
				s.X, s.Y = g.X, g.Y
			}
			s.ParentID = ""
		}
		out = append(out, s)
	}
	return out
}

// Paste inserts copies of shapes under fresh ids. References between the
// pasted shapes are remapped, smart arrows whose endpoints were not copied
// are dropped and root shapes are shifted by offset. The pasted roots become
// the selection.
func (e *Editor) Paste(shapes []shape.Shape, offset shape.Point) []string {
	remap := make(map[string]string, len(shapes))
	for _, s := range shapes {
		remap[s.ID] = e.newID()
	}

	var out []shape.Shape
	var roots []string
	for _, s := range shapes {
		if s.Kind == shape.KindSmartArrow {
			_, fromOK := remap[s.FromShapeID]
			_, toOK := remap[s.ToShapeID]
			if !fromOK || !toOK {
				continue
			}
		}
		s = s.Clone()
		s.ID = remap[s.ID]
		if parent, ok := remap[s.ParentID]; ok {
			s.ParentID = parent
		} else {
			s.ParentID = ""
			if s.Kind != shape.KindSmartArrow {
				s.X += offset.X
				s.Y += offset.Y
			}
			roots = append(roots, s.ID)
		}
		var children []string
		for _, id := range s.Children {
			if n, ok := remap[id]; ok {
				children = append(children, n)
			}
		}
		s.Children = children
		if s.Kind == shape.KindSmartArrow {
			s.FromShapeID = remap[s.FromShapeID]
			s.ToShapeID = remap[s.ToShapeID]
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}

	ids := make([]string, len(out))
	for i, s := range out {
		ids[i] = s.ID
	}
	e.commit(recomputeArrows(ids, e.Shapes().Append(out...)))
	e.selection = roots
	return roots
}

// CopyTo writes the copy of the selection to b.
func (e *Editor) CopyTo(b clipboard.Backend) error {
	return clipboard.WriteShapes(b, e.Copy())
}

// PasteFrom reads shapes written by CopyTo and pastes them at PasteOffset.
func (e *Editor) PasteFrom(b clipboard.Backend) ([]string, error) {
	shapes, err := clipboard.ReadShapes(b)
	if err != nil {
		return nil, err
	}
	return e.Paste(shapes, PasteOffset), nil
}
