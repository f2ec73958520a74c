package geometry

import (
	"math"
	"unicode/utf8"

	"wirecanvas/internal/shape"
)

const (
	DefaultFontSize  = 20
	textWidthFactor  = 0.6
	textHeightFactor = 1.2
)

// Extent returns the canvas-space box of a single shape.
//
//   - rect, image, group: width x height from the origin
//   - circle: a 2r square centred on the origin
//   - text: explicit width or chars*fontSize*0.6, height fontSize*1.2
//   - strokes and arrows: extrema of the point sequence
//
// ok is false for line-like shapes without points.
func Extent(s shape.Shape, c shape.Collection) (r shape.Rect, ok bool) {
	if s.Kind.IsLineLike() {
		return pointsExtent(s, c)
	}

	g := GlobalPosition(s, c)
	switch s.Kind {
	case shape.KindCircle:
		return shape.Rect{X: g.X - s.Radius, Y: g.Y - s.Radius, Width: 2 * s.Radius, Height: 2 * s.Radius}, true
	case shape.KindText:
		w, h := TextSize(s)
		return shape.Rect{X: g.X, Y: g.Y, Width: w, Height: h}, true
	case shape.KindRect, shape.KindImage, shape.KindGroup:
		return shape.Rect{X: g.X, Y: g.Y, Width: s.Width, Height: s.Height}, true
	}
	return shape.Rect{X: g.X, Y: g.Y}, true
}

// TextSize approximates the rendered size of a text shape.
func TextSize(s shape.Shape) (width, height float64) {
	fontSize := s.FontSize
	if fontSize == 0 {
		fontSize = DefaultFontSize
	}
	width = s.Width
	if width == 0 {
		width = float64(utf8.RuneCountInString(s.Text)) * fontSize * textWidthFactor
	}
	return width, fontSize * textHeightFactor
}

// pointsExtent covers the raw point sequence. Smart-arrow points are already
// canvas coordinates; other kinds are offset by the shape's global position.
func pointsExtent(s shape.Shape, c shape.Collection) (shape.Rect, bool) {
	if len(s.Points) < 2 {
		return shape.Rect{}, false
	}
	var off shape.Point
	if s.Kind != shape.KindSmartArrow {
		off = GlobalPosition(s, c)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i+1 < len(s.Points); i += 2 {
		x := off.X + s.Points[i]
		y := off.Y + s.Points[i+1]
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return shape.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// BoundsOf returns the union of the extents of the listed shapes. ok is false
// when ids is empty or none of them resolve.
func BoundsOf(ids []string, c shape.Collection) (bounds shape.Rect, ok bool) {
	for _, id := range ids {
		s, found := c.Get(id)
		if !found {
			continue
		}
		r, has := Extent(s, c)
		if !has {
			continue
		}
		if !ok {
			bounds, ok = r, true
			continue
		}
		bounds = bounds.Union(r)
	}
	return bounds, ok
}
