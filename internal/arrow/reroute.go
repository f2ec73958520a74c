package arrow

import "wirecanvas/internal/shape"

// Recompute refreshes the cached points of a smart arrow. ok is false when
// either endpoint no longer exists and the arrow has to go.
func Recompute(a shape.Shape, c shape.Collection) (shape.Shape, bool) {
	from, ok := c.Get(a.FromShapeID)
	if !ok {
		return a, false
	}
	to, ok := c.Get(a.ToShapeID)
	if !ok {
		return a, false
	}
	a = a.Clone()
	a.Points = Path(from, to, a.FromAnchor, a.ToAnchor, a.Style, c)
	return a, true
}

// Reroute recomputes every smart arrow attached to id and removes those
// whose other endpoint (or id itself) is gone. Unrelated shapes pass through.
func Reroute(id string, c shape.Collection) shape.Collection {
	return rerouteWhere(c, func(a shape.Shape) bool { return a.References(id) })
}

// RerouteMany is Reroute for several ids in one pass.
func RerouteMany(ids []string, c shape.Collection) shape.Collection {
	touched := make(map[string]bool, len(ids))
	for _, id := range ids {
		touched[id] = true
	}
	return rerouteWhere(c, func(a shape.Shape) bool {
		return touched[a.FromShapeID] || touched[a.ToShapeID]
	})
}

// RerouteAll refreshes every smart arrow in c.
func RerouteAll(c shape.Collection) shape.Collection {
	return rerouteWhere(c, func(shape.Shape) bool { return true })
}

func rerouteWhere(c shape.Collection, match func(shape.Shape) bool) shape.Collection {
	var dead []string
	out := c.Map(func(s shape.Shape) shape.Shape {
		if s.Kind != shape.KindSmartArrow || !match(s) {
			return s
		}
		a, ok := Recompute(s, c)
		if !ok {
			dead = append(dead, s.ID)
		}
		return a
	})
	if len(dead) == 0 {
		return out
	}
	return out.Remove(dead...)
}

// Connected lists the smart arrows attached to id.
func Connected(id string, c shape.Collection) []shape.Shape {
	var out []shape.Shape
	for i := 0; i < c.Len(); i++ {
		if s := c.At(i); s.References(id) {
			out = append(out, s)
		}
	}
	return out
}
