// Package arrow routes smart arrows between shapes. An arrow's Points are a
// cache of Path applied to its endpoints and is refreshed by Reroute after
// any change that can move or delete an endpoint.
package arrow

import (
	"math"

	"wirecanvas/internal/geometry"
	"wirecanvas/internal/shape"
)

// DefaultNearThreshold is the hover distance used by IsNearAnchor callers.
const DefaultNearThreshold = 10

// Box is the axis-aligned box anchors are placed on. Shapes without an
// extent collapse to their global position.
func Box(s shape.Shape, c shape.Collection) shape.Rect {
	if r, ok := geometry.Extent(s, c); ok {
		return r
	}
	g := geometry.GlobalPosition(s, c)
	return shape.Rect{X: g.X, Y: g.Y}
}

// AnchorPoint returns the canvas point of anchor on the box of s.
func AnchorPoint(s shape.Shape, anchor shape.Anchor, c shape.Collection) shape.Point {
	r := Box(s, c)
	switch anchor {
	case shape.AnchorTop:
		return shape.Point{X: r.X + r.Width/2, Y: r.Y}
	case shape.AnchorBottom:
		return shape.Point{X: r.X + r.Width/2, Y: r.Y + r.Height}
	case shape.AnchorLeft:
		return shape.Point{X: r.X, Y: r.Y + r.Height/2}
	case shape.AnchorRight:
		return shape.Point{X: r.X + r.Width, Y: r.Y + r.Height/2}
	}
	return r.Center()
}

type Pair struct {
	From, To shape.Anchor
}

// BestAnchorPair faces the two shapes at each other along the dominant axis
// between their centres. Equal offsets fall to the vertical pair.
func BestAnchorPair(from, to shape.Shape, c shape.Collection) Pair {
	fc := Box(from, c).Center()
	tc := Box(to, c).Center()

	dx := tc.X - fc.X
	dy := tc.Y - fc.Y
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return Pair{From: shape.AnchorRight, To: shape.AnchorLeft}
		}
		return Pair{From: shape.AnchorLeft, To: shape.AnchorRight}
	}
	if dy > 0 {
		return Pair{From: shape.AnchorBottom, To: shape.AnchorTop}
	}
	return Pair{From: shape.AnchorTop, To: shape.AnchorBottom}
}

type Match struct {
	Anchor   shape.Anchor
	Distance float64
}

// ClosestAnchor finds the anchor of s nearest to p. Anchors are tried in
// shape.Anchors order and a later anchor wins a tie, so the centre beats an
// edge at equal distance.
func ClosestAnchor(p shape.Point, s shape.Shape, c shape.Collection) Match {
	best := Match{Anchor: shape.AnchorCenter, Distance: math.Inf(1)}
	for _, a := range shape.Anchors {
		d := p.Distance(AnchorPoint(s, a, c))
		if d <= best.Distance {
			best = Match{Anchor: a, Distance: d}
		}
	}
	return best
}

// IsNearAnchor reports whether p lies strictly within threshold of anchor.
func IsNearAnchor(p shape.Point, s shape.Shape, anchor shape.Anchor, threshold float64, c shape.Collection) bool {
	return p.Distance(AnchorPoint(s, anchor, c)) < threshold
}
