package arrow

import "wirecanvas/internal/shape"

// Connector tracks interactive smart-arrow creation:
//
//	idle --Begin--> armed --Complete(other shape)--> idle, arrow emitted
//	                armed --Complete(same shape)---> idle
//	                armed --Cancel-----------------> idle
//
// The zero value is idle.
type Connector struct {
	armed  bool
	fromID string
	anchor shape.Anchor
}

// Begin arms the connector at the given endpoint. Beginning again while
// armed moves the start point.
func (k *Connector) Begin(shapeID string, anchor shape.Anchor) {
	k.armed = true
	k.fromID = shapeID
	k.anchor = anchor
}

// Armed returns the pending start point.
func (k *Connector) Armed() (shapeID string, anchor shape.Anchor, ok bool) {
	return k.fromID, k.anchor, k.armed
}

func (k *Connector) Cancel() {
	*k = Connector{}
}

// Complete finishes the arrow at toID and returns it with straight routing.
// The connector is idle afterwards whether or not an arrow was produced;
// ok is false when idle, when toID is the start shape, or when either
// endpoint is missing from c.
func (k *Connector) Complete(id, toID string, toAnchor shape.Anchor, c shape.Collection) (shape.Shape, bool) {
	fromID, fromAnchor, armed := k.Armed()
	k.Cancel()
	if !armed || fromID == toID {
		return shape.Shape{}, false
	}
	from, ok := c.Get(fromID)
	if !ok {
		return shape.Shape{}, false
	}
	to, ok := c.Get(toID)
	if !ok {
		return shape.Shape{}, false
	}
	return New(id, from, to, fromAnchor, toAnchor, shape.StyleStraight, c), true
}
