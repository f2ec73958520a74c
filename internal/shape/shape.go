package shape

import "github.com/google/uuid"

// Kind is the drawing tool that produced a shape. The values match the
// "tool" field of saved projects.
type Kind string

const (
	KindPen        Kind = "pen"
	KindMarker     Kind = "marker"
	KindEraser     Kind = "eraser"
	KindArrow      Kind = "arrow"
	KindSmartArrow Kind = "smart-arrow"
	KindRect       Kind = "rect"
	KindCircle     Kind = "circle"
	KindText       Kind = "text"
	KindImage      Kind = "image"
	KindGroup      Kind = "group"
)

// IsStroke reports whether k is a freehand stroke.
func (k Kind) IsStroke() bool {
	return k == KindPen || k == KindMarker || k == KindEraser
}

// IsLineLike reports whether the extent of k comes from its point sequence.
func (k Kind) IsLineLike() bool {
	return k.IsStroke() || k == KindArrow || k == KindSmartArrow
}

type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorBottom Anchor = "bottom"
	AnchorLeft   Anchor = "left"
	AnchorRight  Anchor = "right"
	AnchorCenter Anchor = "center"
)

// Anchors lists every anchor in evaluation order.
var Anchors = [...]Anchor{AnchorTop, AnchorBottom, AnchorLeft, AnchorRight, AnchorCenter}

// Horizontal reports whether a sits on the left or right edge.
func (a Anchor) Horizontal() bool {
	return a == AnchorLeft || a == AnchorRight
}

// Vertical reports whether a sits on the top or bottom edge.
func (a Anchor) Vertical() bool {
	return a == AnchorTop || a == AnchorBottom
}

type ArrowStyle string

const (
	StyleStraight ArrowStyle = "straight"
	StyleElbow    ArrowStyle = "elbow"
)

type Layer string

const (
	LayerBackground Layer = "background"
	LayerDrawing    Layer = "drawing"
)

type CompositeOp string

const (
	CompositeSourceOver     CompositeOp = "source-over"
	CompositeDestinationOut CompositeOp = "destination-out"
)

// Shape is one element of the canvas. Fields that do not apply to Kind stay
// at their zero value and are omitted from JSON.
//
// X and Y are relative to the parent when ParentID is set, otherwise they are
// canvas coordinates. Circles are positioned by their centre. Smart-arrow
// points are canvas coordinates regardless of the arrow's own position.
type Shape struct {
	ID                 string      `json:"id"`
	ParentID           string      `json:"parentId,omitempty"`
	Kind               Kind        `json:"tool"`
	X                  float64     `json:"x"`
	Y                  float64     `json:"y"`
	Rotation           float64     `json:"rotation"`
	Stroke             string      `json:"stroke"`
	StrokeWidth        float64     `json:"strokeWidth"`
	Opacity            *float64    `json:"opacity,omitempty"`
	Locked             bool        `json:"locked,omitempty"`
	Layer              Layer       `json:"layer,omitempty"`
	CompositeOperation CompositeOp `json:"compositeOperation,omitempty"`

	// pen, marker, eraser, arrow, smart-arrow
	Points []float64 `json:"points,omitempty"`

	// rect, image, group; text uses Width as an optional wrap width
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Fill   string  `json:"fill,omitempty"`

	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`

	Src         string   `json:"src,omitempty"`
	IsTemplate  bool     `json:"isTemplate,omitempty"`
	IsContainer bool     `json:"isContainer,omitempty"`
	Children    []string `json:"children,omitempty"`

	FromShapeID string     `json:"fromShapeId,omitempty"`
	ToShapeID   string     `json:"toShapeId,omitempty"`
	FromAnchor  Anchor     `json:"fromAnchor,omitempty"`
	ToAnchor    Anchor     `json:"toAnchor,omitempty"`
	Style       ArrowStyle `json:"style,omitempty"`
}

// CanContain reports whether s may own children: every group, and images
// flagged as containers.
func (s Shape) CanContain() bool {
	return s.Kind == KindGroup || (s.Kind == KindImage && s.IsContainer)
}

// Position returns the stored (parent-relative) position.
func (s Shape) Position() Point {
	return Point{X: s.X, Y: s.Y}
}

// References reports whether s is a smart arrow attached to id.
func (s Shape) References(id string) bool {
	return s.Kind == KindSmartArrow && (s.FromShapeID == id || s.ToShapeID == id)
}

// Clone returns a copy of s that shares no slices or pointers with it.
func (s Shape) Clone() Shape {
	c := s
	if s.Points != nil {
		c.Points = append([]float64(nil), s.Points...)
	}
	if s.Children != nil {
		c.Children = append([]string(nil), s.Children...)
	}
	if s.Opacity != nil {
		o := *s.Opacity
		c.Opacity = &o
	}
	return c
}

// NewID returns a fresh shape identifier.
func NewID() string {
	return uuid.NewString()
}
