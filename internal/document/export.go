package document

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"wirecanvas/internal/geometry"
	"wirecanvas/internal/hierarchy"
	"wirecanvas/internal/imageref"
	"wirecanvas/internal/shape"
)

var ErrNothingToExport = errors.New("nothing to export")

const markerOpacity = 0.5

type ExportOptions struct {
	// Scale multiplies canvas units into pixels.
	Scale float64
	// Padding is added around the content bounds, in canvas units.
	Padding float64
	// Background is a hex colour or "transparent".
	Background string
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{Scale: 1, Padding: 20, Background: "#ffffff"}
}

var parseMono = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// ExportPNG renders c and writes it to path.
func ExportPNG(path string, c shape.Collection, opts ExportOptions) error {
	img, err := Render(c, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}

// Render rasterises every shape of c in paint order, cropped to the content
// bounds plus padding.
func Render(c shape.Collection, opts ExportOptions) (image.Image, error) {
	bounds, ok := geometry.BoundsOf(c.IDs(), c)
	if !ok {
		return nil, ErrNothingToExport
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	imageWidth := int(math.Ceil((bounds.Width + 2*opts.Padding) * opts.Scale))
	imageHeight := int(math.Ceil((bounds.Height + 2*opts.Padding) * opts.Scale))
	imageWidth = max(imageWidth, 1)
	imageHeight = max(imageHeight, 1)

	ttf, err := parseMono()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	bg, hasBG := parseColor(opts.Background, 1)
	if hasBG {
		dc.SetColor(bg)
		dc.Clear()
	} else {
		bg = color.Transparent
	}
	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(opts.Padding-bounds.X, opts.Padding-bounds.Y)

	r := &renderer{
		dc:    dc,
		c:     c,
		bg:    bg,
		ttf:   ttf,
		faces: make(map[float64]font.Face),
	}
	ordered := hierarchy.PaintOrder(c)
	for i := 0; i < ordered.Len(); i++ {
		r.draw(ordered.At(i))
	}
	return dc.Image(), nil
}

type renderer struct {
	dc    *gg.Context
	c     shape.Collection
	bg    color.Color
	ttf   *truetype.Font
	faces map[float64]font.Face
}

func (r *renderer) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[size] = f
	return f
}

func opacity(s shape.Shape) float64 {
	if s.Opacity != nil {
		return *s.Opacity
	}
	if s.Kind == shape.KindMarker {
		return markerOpacity
	}
	return 1
}

func (r *renderer) draw(s shape.Shape) {
	dc := r.dc
	alpha := opacity(s)
	pos := geometry.GlobalPosition(s, r.c)

	if s.Rotation != 0 && s.Kind != shape.KindSmartArrow {
		dc.Push()
		dc.RotateAbout(gg.Radians(s.Rotation), pos.X, pos.Y)
		defer dc.Pop()
	}

	switch s.Kind {
	case shape.KindPen, shape.KindMarker, shape.KindArrow:
		r.polyline(s.Points, pos, s.Stroke, s.StrokeWidth, alpha)
		if s.Kind == shape.KindArrow {
			r.arrowHead(s.Points, pos, s.Stroke, s.StrokeWidth, alpha)
		}
	case shape.KindEraser:
		// erasing paints the background back in
		dc.SetColor(r.bg)
		r.strokePath(s.Points, pos, s.StrokeWidth)
	case shape.KindSmartArrow:
		r.polyline(s.Points, shape.Point{}, s.Stroke, s.StrokeWidth, alpha)
		r.arrowHead(s.Points, shape.Point{}, s.Stroke, s.StrokeWidth, alpha)
	case shape.KindRect:
		dc.DrawRectangle(pos.X, pos.Y, s.Width, s.Height)
		r.fillAndStroke(s, alpha)
	case shape.KindCircle:
		dc.DrawCircle(pos.X, pos.Y, s.Radius)
		r.fillAndStroke(s, alpha)
	case shape.KindText:
		r.text(s, pos, alpha)
	case shape.KindImage:
		r.image(s, pos, alpha)
	}
}

func (r *renderer) strokePath(points []float64, off shape.Point, width float64) {
	if len(points) < 4 {
		return
	}
	dc := r.dc
	dc.SetLineWidth(math.Max(width, 1))
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.MoveTo(off.X+points[0], off.Y+points[1])
	for i := 2; i+1 < len(points); i += 2 {
		dc.LineTo(off.X+points[i], off.Y+points[i+1])
	}
	dc.Stroke()
}

func (r *renderer) polyline(points []float64, off shape.Point, stroke string, width, alpha float64) {
	col, ok := parseColor(stroke, alpha)
	if !ok {
		return
	}
	r.dc.SetColor(col)
	r.strokePath(points, off, width)
}

// arrowHead draws a filled head on the last segment of points.
func (r *renderer) arrowHead(points []float64, off shape.Point, stroke string, width, alpha float64) {
	n := len(points)
	if n < 4 {
		return
	}
	col, ok := parseColor(stroke, alpha)
	if !ok {
		return
	}
	fx, fy := off.X+points[n-4], off.Y+points[n-3]
	tx, ty := off.X+points[n-2], off.Y+points[n-1]

	dx := tx - fx
	dy := ty - fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	arrowSize := math.Max(6, 3*width)
	arrowAngle := 0.5

	dc := r.dc
	dc.SetColor(col)
	dc.MoveTo(tx, ty)
	dc.LineTo(tx-arrowSize*dx+arrowSize*dy*arrowAngle, ty-arrowSize*dy-arrowSize*dx*arrowAngle)
	dc.LineTo(tx-arrowSize*dx-arrowSize*dy*arrowAngle, ty-arrowSize*dy+arrowSize*dx*arrowAngle)
	dc.ClosePath()
	dc.Fill()
}

// fillAndStroke paints the current path.
func (r *renderer) fillAndStroke(s shape.Shape, alpha float64) {
	dc := r.dc
	if fill, ok := parseColor(s.Fill, alpha); ok {
		dc.SetColor(fill)
		dc.FillPreserve()
	}
	if stroke, ok := parseColor(s.Stroke, alpha); ok && s.StrokeWidth > 0 {
		dc.SetColor(stroke)
		dc.SetLineWidth(s.StrokeWidth)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

func (r *renderer) text(s shape.Shape, pos shape.Point, alpha float64) {
	if s.Text == "" {
		return
	}
	col, ok := parseColor(s.Fill, alpha)
	if !ok {
		if col, ok = parseColor(s.Stroke, alpha); !ok {
			col = color.NRGBA{A: uint8(math.Round(alpha * 255))}
		}
	}
	size := s.FontSize
	if size == 0 {
		size = geometry.DefaultFontSize
	}

	dc := r.dc
	dc.SetFontFace(r.face(size))
	dc.SetColor(col)
	if s.Width > 0 {
		dc.DrawStringWrapped(s.Text, pos.X, pos.Y, 0, 0, s.Width, 1.2, gg.AlignLeft)
		return
	}
	dc.DrawStringAnchored(s.Text, pos.X, pos.Y, 0, 1)
}

// image draws the bitmap behind s.Src resized to the shape's box. A source
// that cannot be decoded leaves a grey frame in its place.
func (r *renderer) image(s shape.Shape, pos shape.Point, alpha float64) {
	dc := r.dc
	img, err := imageref.Decode(s.Src)
	if err != nil {
		dc.DrawRectangle(pos.X, pos.Y, s.Width, s.Height)
		dc.SetColor(color.NRGBA{R: 160, G: 160, B: 160, A: 255})
		dc.SetLineWidth(1)
		dc.Stroke()
		return
	}

	w, h := int(math.Round(s.Width)), int(math.Round(s.Height))
	b := img.Bounds()
	if w > 0 && h > 0 && (w != b.Dx() || h != b.Dy()) {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	if alpha < 1 {
		img = fade(img, alpha)
	}
	dc.DrawImage(img, int(math.Round(pos.X)), int(math.Round(pos.Y)))
}

func fade(img image.Image, alpha float64) image.Image {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(float64(out.Pix[i]) * alpha)
	}
	return out
}

var namedColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
	"gray":  "#808080",
	"grey":  "#808080",
}

// parseColor reads a "#rgb" or "#rrggbb" colour (or a few CSS names) and
// applies alpha. ok is false for empty, "transparent" and unparseable input.
func parseColor(value string, alpha float64) (color.Color, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "transparent" {
		return nil, false
	}
	if hex, ok := namedColors[value]; ok {
		value = hex
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return nil, false
	}
	red, green, blue := c.RGB255()
	alpha = math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: red, G: green, B: blue, A: uint8(math.Round(alpha * 255))}, true
}
