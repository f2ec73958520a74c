package editor

import (
	"context"
	"errors"
	"fmt"

	"wirecanvas/internal/arrow"
	"wirecanvas/internal/clipboard"
	"wirecanvas/internal/detection"
	"wirecanvas/internal/geometry"
	"wirecanvas/internal/imageref"
	"wirecanvas/internal/shape"
)

var ErrNotDetectable = errors.New("not a detectable image")

// ImportImage places an image of the given size centred on the viewport and
// selects it.
func (e *Editor) ImportImage(src string, width, height float64, vp Viewport) string {
	return e.placeImage(src, width, height, vp, false)
}

// AddTemplate is ImportImage for a device frame: the image paints above
// everything else and can hold child shapes.
func (e *Editor) AddTemplate(src string, width, height float64, vp Viewport) string {
	return e.placeImage(src, width, height, vp, true)
}

func (e *Editor) placeImage(src string, width, height float64, vp Viewport, template bool) string {
	center := vp.Center()
	s := shape.Shape{
		ID:          e.newID(),
		Kind:        shape.KindImage,
		X:           center.X - width/2,
		Y:           center.Y - height/2,
		Width:       width,
		Height:      height,
		Stroke:      "transparent",
		Src:         src,
		IsTemplate:  template,
		IsContainer: template,
	}
	e.commit(e.Shapes().Append(s))
	e.selection = []string{s.ID}
	return s.ID
}

// ImportImageSource reads the size of src and imports it.
func (e *Editor) ImportImageSource(src string, vp Viewport) (string, error) {
	w, h, err := imageref.Size(src)
	if err != nil {
		return "", fmt.Errorf("import image: %w", err)
	}
	return e.ImportImage(src, float64(w), float64(h), vp), nil
}

// PasteImage imports the image currently on the clipboard.
func (e *Editor) PasteImage(b clipboard.Backend, vp Viewport) (string, error) {
	src, err := clipboard.ReadImageSource(b)
	if err != nil {
		return "", err
	}
	return e.ImportImageSource(src, vp)
}

// DetectableImage returns the first image that object detection can run on.
func (e *Editor) DetectableImage() (shape.Shape, bool) {
	c := e.Shapes()
	for i := 0; i < c.Len(); i++ {
		if s := c.At(i); detectable(s) {
			return s, true
		}
	}
	return shape.Shape{}, false
}

func detectable(s shape.Shape) bool {
	return s.Kind == shape.KindImage && !s.IsTemplate
}

// DetectObjects runs d on the image and applies the result. The result is
// applied to whatever canvas is current when detection returns.
func (e *Editor) DetectObjects(ctx context.Context, d detection.Detector, imageID string, sensitivity int) ([]string, error) {
	img, ok := e.Shapes().Get(imageID)
	if !ok || !detectable(img) {
		return nil, ErrNotDetectable
	}
	res, err := d.Detect(ctx, img.Src, sensitivity)
	if err != nil {
		return nil, fmt.Errorf("detect objects: %w", err)
	}
	return e.ApplyDetection(imageID, res)
}

// ApplyDetection swaps the image for a locked background plus one image per
// detected object, placed at the object's offset inside the original. The
// new objects become the selection.
func (e *Editor) ApplyDetection(imageID string, res detection.Result) ([]string, error) {
	cur := e.Shapes()
	img, ok := cur.Get(imageID)
	if !ok || !detectable(img) {
		return nil, ErrNotDetectable
	}
	if len(res.Objects) == 0 {
		return nil, detection.ErrNoObjects
	}

	background := shape.Shape{
		ID:       e.newID(),
		ParentID: img.ParentID,
		Kind:     shape.KindImage,
		X:        img.X,
		Y:        img.Y,
		Width:    img.Width,
		Height:   img.Height,
		Stroke:   "transparent",
		Src:      res.Background,
		Locked:   true,
	}
	added := []shape.Shape{background}
	ids := make([]string, 0, len(res.Objects))
	for _, obj := range res.Objects {
		s := shape.Shape{
			ID:       e.newID(),
			ParentID: img.ParentID,
			Kind:     shape.KindImage,
			X:        img.X + obj.X,
			Y:        img.Y + obj.Y,
			Width:    obj.Width,
			Height:   obj.Height,
			Stroke:   "transparent",
			Src:      obj.Src,
		}
		added = append(added, s)
		ids = append(ids, s.ID)
	}

	// anything the image contained is released at its canvas position
	next := cur.Map(func(s shape.Shape) shape.Shape {
		if s.ParentID != imageID {
			return s
		}
		g := geometry.GlobalPosition(s, cur)
		s = s.Clone()
		s.ParentID = ""
		s.X, s.Y = g.X, g.Y
		return s
	})
	next = next.Remove(imageID).Append(added...)
	e.commit(arrow.Reroute(imageID, next))
	e.selection = ids
	return ids, nil
}
