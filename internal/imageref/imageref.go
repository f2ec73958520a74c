// Package imageref resolves the image source strings stored on image shapes.
// A source is either a data URL or a path on disk.
package imageref

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	ErrNotDataURL        = errors.New("not a base64 data URL")
	ErrRegionOutOfBounds = errors.New("region outside image bounds")
)

// IsDataURL reports whether src is an inline data: URL.
func IsDataURL(src string) bool {
	return strings.HasPrefix(src, "data:")
}

// DecodeDataURL returns the raw bytes and media type of a data URL. Both
// base64 and percent-encoded payloads are accepted.
func DecodeDataURL(src string) (data []byte, mediaType string, err error) {
	rest, ok := strings.CutPrefix(src, "data:")
	if !ok {
		return nil, "", ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrNotDataURL
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decode base64 payload: %w", err)
		}
		return data, mediaType, nil
	}
	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("unescape payload: %w", err)
	}
	return []byte(unescaped), mediaType, nil
}

// Decode loads the raster image behind src.
func Decode(src string) (image.Image, error) {
	if !IsDataURL(src) {
		img, err := imaging.Open(src, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("open image %s: %w", src, err)
		}
		return img, nil
	}

	data, _, err := DecodeDataURL(src)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}
	return img, nil
}

// Size returns the pixel dimensions of the image behind src.
func Size(src string) (width, height int, err error) {
	img, err := Decode(src)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// DataURL encodes img as a PNG data URL.
func DataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Crop cuts r out of img. r is in the image's own pixel space and must lie
// inside its bounds.
func Crop(img image.Image, r image.Rectangle) (image.Image, error) {
	b := img.Bounds()
	if r.Empty() || !r.In(b) {
		return nil, fmt.Errorf("%w: %v not in %v", ErrRegionOutOfBounds, r, b)
	}
	return imaging.Crop(img, r), nil
}
