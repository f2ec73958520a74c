// Package detection describes the contract with the object-detection
// collaborator: it receives an image source and returns the rectangles of
// the UI elements it found plus a background with those elements removed.
// The detection algorithm itself lives outside this module.
package detection

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"wirecanvas/internal/imageref"
)

var ErrNoObjects = errors.New("no objects detected")

// Region is a detected rectangle in the source image's pixel space.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Region) rect() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}

// Object is one detected element with its cropped image source.
type Object struct {
	Region
	Src string `json:"src"`
}

type Result struct {
	Objects    []Object `json:"objects"`
	Background string   `json:"background"`
}

// Detector runs detection on an image source. sensitivity is 0..100.
type Detector interface {
	Detect(ctx context.Context, src string, sensitivity int) (Result, error)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(ctx context.Context, src string, sensitivity int) (Result, error)

func (f DetectorFunc) Detect(ctx context.Context, src string, sensitivity int) (Result, error) {
	return f(ctx, src, sensitivity)
}

// Split crops every region out of src and pairs the crops with an already
// inpainted background source.
func Split(src string, regions []Region, background string) (Result, error) {
	if len(regions) == 0 {
		return Result{}, ErrNoObjects
	}
	img, err := imageref.Decode(src)
	if err != nil {
		return Result{}, fmt.Errorf("load source: %w", err)
	}
	origin := img.Bounds().Min

	res := Result{Background: background, Objects: make([]Object, 0, len(regions))}
	for i, r := range regions {
		crop, err := imageref.Crop(img, r.rect().Add(origin))
		if err != nil {
			return Result{}, fmt.Errorf("region %d: %w", i, err)
		}
		cropSrc, err := imageref.DataURL(crop)
		if err != nil {
			return Result{}, fmt.Errorf("region %d: %w", i, err)
		}
		res.Objects = append(res.Objects, Object{Region: r, Src: cropSrc})
	}
	return res, nil
}
