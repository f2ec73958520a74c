// Package editor is the application controller. It owns the undo history,
// the selection and the dirty flag, and turns each user action into exactly
// one committed snapshot.
package editor

import (
	"io"
	"log/slog"
	"slices"
	"time"

	"wirecanvas/internal/arrow"
	"wirecanvas/internal/document"
	"wirecanvas/internal/hierarchy"
	"wirecanvas/internal/history"
	"wirecanvas/internal/shape"
)

const (
	DefaultStroke      = "#ef4444"
	DefaultStrokeWidth = 4
)

// Viewport describes the visible part of the stage. StageX/StageY are the
// stage offset in screen pixels, Width/Height the screen size.
type Viewport struct {
	StageX, StageY float64
	Width, Height  float64
	Scale          float64
}

// Center is the canvas point at the middle of the screen.
func (v Viewport) Center() shape.Point {
	scale := v.Scale
	if scale == 0 {
		scale = 1
	}
	return shape.Point{
		X: (-v.StageX + v.Width/2) / scale,
		Y: (-v.StageY + v.Height/2) / scale,
	}
}

type Editor struct {
	history   *history.History
	selection []string
	dirty     bool
	settings  document.Settings
	connector arrow.Connector
	created   time.Time

	stroke      string
	strokeWidth float64

	logger *slog.Logger
	newID  func() string
	now    func() time.Time
}

type Option func(*Editor)

// WithLogger sets the diagnostic logger. Corrupt hierarchies are reported
// here.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithSettings(s document.Settings) Option {
	return func(e *Editor) { e.settings = s }
}

// WithPen sets the stroke used for new smart arrows.
func WithPen(stroke string, width float64) Option {
	return func(e *Editor) {
		e.stroke = stroke
		e.strokeWidth = width
	}
}

func WithIDFunc(fn func() string) Option {
	return func(e *Editor) { e.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(e *Editor) { e.now = fn }
}

// New returns an editor on an empty canvas.
func New(opts ...Option) *Editor {
	e := &Editor{
		history:     history.New(),
		settings:    document.DefaultSettings(),
		stroke:      DefaultStroke,
		strokeWidth: DefaultStrokeWidth,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:       shape.NewID,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.created = e.now()
	return e
}

// Load replaces the canvas with doc. History restarts with the loaded
// shapes as its only snapshot and the editor is clean.
func (e *Editor) Load(doc document.Document) {
	shapes := doc.Shapes
	// a cyclic document is still installed, there is no earlier canvas to keep
	if err := hierarchy.Check(shapes); err != nil {
		e.logger.Warn("corrupt hierarchy", "err", err)
	}
	shapes = hierarchy.SyncChildren(arrow.RerouteAll(shapes))

	e.history = history.NewWith(shapes)
	e.settings = doc.Settings
	e.selection = nil
	e.dirty = false
	e.connector.Cancel()
	e.created = e.now()
	if doc.Metadata != nil && !doc.Metadata.CreatedAt.IsZero() {
		e.created = doc.Metadata.CreatedAt
	}
	e.logger.Debug("document loaded", "shapes", shapes.Len())
}

// Document captures the current canvas for saving.
func (e *Editor) Document(title string) document.Document {
	return document.Document{
		Version:  document.Version,
		Shapes:   e.Shapes(),
		Settings: e.settings,
		Metadata: &document.Metadata{
			CreatedAt:  e.created,
			ModifiedAt: e.now(),
			Title:      title,
		},
	}
}

func (e *Editor) MarkSaved() { e.dirty = false }

func (e *Editor) Dirty() bool { return e.dirty }

// Shapes is the active snapshot.
func (e *Editor) Shapes() shape.Collection { return e.history.Current() }

func (e *Editor) Selection() []string {
	return slices.Clone(e.selection)
}

// Select replaces the selection. Unknown and repeated ids are dropped.
func (e *Editor) Select(ids ...string) {
	e.selection = e.existing(ids)
}

// Toggle adds id to the selection or removes it.
func (e *Editor) Toggle(id string) {
	if i := slices.Index(e.selection, id); i >= 0 {
		e.selection = slices.Delete(slices.Clone(e.selection), i, i+1)
		return
	}
	e.Select(append(e.Selection(), id)...)
}

func (e *Editor) IsSelected(id string) bool {
	return slices.Contains(e.selection, id)
}

func (e *Editor) existing(ids []string) []string {
	c := e.Shapes()
	var out []string
	for _, id := range ids {
		if c.Has(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func (e *Editor) Settings() document.Settings { return e.settings }

// SetSettings changes the grid settings. Settings are saved with the
// document but are not part of the undo history.
func (e *Editor) SetSettings(s document.Settings) {
	if s == e.settings {
		return
	}
	e.settings = s
	e.dirty = true
}

// Pen returns the stroke used for new smart arrows.
func (e *Editor) Pen() (stroke string, width float64) {
	return e.stroke, e.strokeWidth
}

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Undo restores the previous snapshot. The selection keeps only ids that
// still exist.
func (e *Editor) Undo() bool {
	if _, ok := e.history.Undo(); !ok {
		return false
	}
	e.afterTravel()
	return true
}

func (e *Editor) Redo() bool {
	if _, ok := e.history.Redo(); !ok {
		return false
	}
	e.afterTravel()
	return true
}

func (e *Editor) afterTravel() {
	e.selection = e.existing(e.selection)
	e.connector.Cancel()
}

// commit records c as the new active snapshot.
func (e *Editor) commit(c shape.Collection) {
	c = hierarchy.SyncChildren(c)
	e.history.Commit(c)
	e.dirty = true
	e.logger.Debug("commit", "shapes", c.Len(), "cursor", e.history.Cursor())
}

// withDescendants returns id followed by every shape below it. A cyclic
// hierarchy is logged and reported as !ok.
func (e *Editor) withDescendants(id string, c shape.Collection) ([]string, bool) {
	desc, err := hierarchy.AllDescendants(id, c)
	if err != nil {
		e.logger.Warn("corrupt hierarchy", "id", id, "err", err)
		return nil, false
	}
	ids := []string{id}
	for _, d := range desc {
		ids = append(ids, d.ID)
	}
	return ids, true
}
