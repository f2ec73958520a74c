package arrow

import "wirecanvas/internal/shape"

// StraightPath is the segment [x1 y1 x2 y2] between the two anchors.
func StraightPath(from, to shape.Shape, fromAnchor, toAnchor shape.Anchor, c shape.Collection) []float64 {
	a := AnchorPoint(from, fromAnchor, c)
	b := AnchorPoint(to, toAnchor, c)
	return []float64{a.X, a.Y, b.X, b.Y}
}

// ElbowPath is a four-waypoint orthogonal route. Two side anchors jog
// vertically at the mid x, two top/bottom anchors jog horizontally at the
// mid y, and a mixed pair follows the kind of fromAnchor.
func ElbowPath(from, to shape.Shape, fromAnchor, toAnchor shape.Anchor, c shape.Collection) []float64 {
	a := AnchorPoint(from, fromAnchor, c)
	b := AnchorPoint(to, toAnchor, c)
	midX := (a.X + b.X) / 2
	midY := (a.Y + b.Y) / 2

	verticalJog := fromAnchor.Horizontal()
	switch {
	case fromAnchor.Horizontal() && toAnchor.Horizontal():
		verticalJog = true
	case fromAnchor.Vertical() && toAnchor.Vertical():
		verticalJog = false
	}

	if verticalJog {
		return []float64{
			a.X, a.Y,
			midX, a.Y,
			midX, b.Y,
			b.X, b.Y,
		}
	}
	return []float64{
		a.X, a.Y,
		a.X, midY,
		b.X, midY,
		b.X, b.Y,
	}
}

// Path dispatches on style; anything but elbow is straight.
func Path(from, to shape.Shape, fromAnchor, toAnchor shape.Anchor, style shape.ArrowStyle, c shape.Collection) []float64 {
	if style == shape.StyleElbow {
		return ElbowPath(from, to, fromAnchor, toAnchor, c)
	}
	return StraightPath(from, to, fromAnchor, toAnchor, c)
}

// New builds a smart arrow between two shapes with its points computed.
func New(id string, from, to shape.Shape, fromAnchor, toAnchor shape.Anchor, style shape.ArrowStyle, c shape.Collection) shape.Shape {
	if style == "" {
		style = shape.StyleStraight
	}
	return shape.Shape{
		ID:          id,
		Kind:        shape.KindSmartArrow,
		FromShapeID: from.ID,
		ToShapeID:   to.ID,
		FromAnchor:  fromAnchor,
		ToAnchor:    toAnchor,
		Style:       style,
		Points:      Path(from, to, fromAnchor, toAnchor, style, c),
	}
}
