package editor

import (
	"wirecanvas/internal/arrow"
	"wirecanvas/internal/shape"
)

// BeginArrow starts a smart arrow at an anchor of shapeID.
func (e *Editor) BeginArrow(shapeID string, anchor shape.Anchor) bool {
	if !e.Shapes().Has(shapeID) {
		return false
	}
	e.connector.Begin(shapeID, anchor)
	return true
}

// PendingArrow reports the start of an arrow in progress.
func (e *Editor) PendingArrow() (shapeID string, anchor shape.Anchor, ok bool) {
	return e.connector.Armed()
}

func (e *Editor) CancelArrow() { e.connector.Cancel() }

// CompleteArrow ends the pending arrow at an anchor of toID and commits it
// with the current pen. Ending on the start shape cancels.
func (e *Editor) CompleteArrow(toID string, toAnchor shape.Anchor) (string, bool) {
	a, ok := e.connector.Complete(e.newID(), toID, toAnchor, e.Shapes())
	if !ok {
		return "", false
	}
	a.Stroke = e.stroke
	a.StrokeWidth = e.strokeWidth
	e.commit(e.Shapes().Append(a))
	return a.ID, true
}

// Connect joins two shapes with a smart arrow between the anchors that face
// each other.
func (e *Editor) Connect(fromID, toID string, style shape.ArrowStyle) (string, bool) {
	cur := e.Shapes()
	from, ok := cur.Get(fromID)
	if !ok {
		return "", false
	}
	to, ok := cur.Get(toID)
	if !ok || fromID == toID {
		return "", false
	}
	pair := arrow.BestAnchorPair(from, to, cur)
	a := arrow.New(e.newID(), from, to, pair.From, pair.To, style, cur)
	a.Stroke = e.stroke
	a.StrokeWidth = e.strokeWidth
	e.commit(cur.Append(a))
	return a.ID, true
}
