// Package clipboard moves shapes, text and images between the editor and the
// OS clipboard.
package clipboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"wirecanvas/internal/imageref"
	"wirecanvas/internal/shape"
)

// shapesPrefix marks clipboard text written by WriteShapes.
const shapesPrefix = "wirecanvas/shapes+json;"

var (
	ErrNoShapes = errors.New("clipboard holds no shapes")
	ErrNoImage  = errors.New("clipboard holds no image")
)

type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type system struct{}

// System returns the OS clipboard.
func System() Backend { return system{} }

func (system) ReadAll() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func (system) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Memory is a process-local Backend.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

type payload struct {
	Shapes []shape.Shape `json:"shapes"`
}

// WriteShapes serialises shapes onto the clipboard.
func WriteShapes(b Backend, shapes []shape.Shape) error {
	if len(shapes) == 0 {
		return ErrNoShapes
	}
	data, err := json.Marshal(payload{Shapes: shapes})
	if err != nil {
		return fmt.Errorf("encode shapes: %w", err)
	}
	if err := b.WriteAll(shapesPrefix + string(data)); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// ReadShapes returns the shapes written by WriteShapes. Any other clipboard
// content yields ErrNoShapes.
func ReadShapes(b Backend) ([]shape.Shape, error) {
	text, err := b.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read clipboard: %w", err)
	}
	body, ok := strings.CutPrefix(text, shapesPrefix)
	if !ok {
		return nil, ErrNoShapes
	}
	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("decode shapes: %w", err)
	}
	if len(p.Shapes) == 0 {
		return nil, ErrNoShapes
	}
	return p.Shapes, nil
}

// ReadText returns the clipboard as plain text, unwrapping RTF and HTML.
func ReadText(b Backend) (string, error) {
	text, err := b.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return PlainText(text), nil
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true,
}

// ReadImageSource returns an image source usable by imageref: either an
// image data URL or the path of an existing image file.
func ReadImageSource(b Backend) (string, error) {
	text, err := b.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	text = strings.TrimSpace(text)
	if imageref.IsDataURL(text) {
		if !strings.HasPrefix(text, "data:image/") {
			return "", ErrNoImage
		}
		return text, nil
	}

	path := strings.TrimPrefix(text, "file://")
	if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
		return "", ErrNoImage
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", ErrNoImage
	}
	return path, nil
}
