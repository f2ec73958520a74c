// Package document reads and writes project files and renders a shape
// collection to PNG.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wirecanvas/internal/shape"
)

const (
	Version   = "1.0"
	Extension = ".wirecanvas"
)

var ErrUnsupportedVersion = errors.New("unsupported project version")

type Settings struct {
	GridSize   float64 `json:"gridSize"`
	ShowGrid   bool    `json:"showGrid"`
	SnapToGrid bool    `json:"snapToGrid"`
}

func DefaultSettings() Settings {
	return Settings{GridSize: 20}
}

type Metadata struct {
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Title      string    `json:"title,omitempty"`
}

type Document struct {
	Version  string           `json:"version"`
	Shapes   shape.Collection `json:"shapes"`
	Settings Settings         `json:"settings"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

// wireDocument lets missing settings fall back field by field.
type wireDocument struct {
	Version  string           `json:"version"`
	Shapes   shape.Collection `json:"shapes"`
	Settings *struct {
		GridSize   *float64 `json:"gridSize"`
		ShowGrid   *bool    `json:"showGrid"`
		SnapToGrid *bool    `json:"snapToGrid"`
	} `json:"settings"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

func Encode(w io.Writer, doc Document) error {
	if doc.Version == "" {
		doc.Version = Version
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func Decode(r io.Reader) (Document, error) {
	var wire wireDocument
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return Document{}, fmt.Errorf("decode project: %w", err)
	}

	major, _, _ := strings.Cut(wire.Version, ".")
	if wire.Version != "" && major != "1" {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedVersion, wire.Version)
	}

	doc := Document{
		Version:  wire.Version,
		Shapes:   wire.Shapes,
		Settings: DefaultSettings(),
		Metadata: wire.Metadata,
	}
	if doc.Version == "" {
		doc.Version = Version
	}
	if s := wire.Settings; s != nil {
		if s.GridSize != nil {
			doc.Settings.GridSize = *s.GridSize
		}
		if s.ShowGrid != nil {
			doc.Settings.ShowGrid = *s.ShowGrid
		}
		if s.SnapToGrid != nil {
			doc.Settings.SnapToGrid = *s.SnapToGrid
		}
	}
	return doc, nil
}

func LoadFile(path string) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer file.Close()

	doc, err := Decode(file)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// SaveFile writes doc next to path and renames it into place, so a failed
// write never truncates an existing project.
func SaveFile(path string, doc Document) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".wirecanvas-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		return fmt.Errorf("write project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
