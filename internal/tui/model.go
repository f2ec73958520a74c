// Package tui is a terminal front end for the editor: an outline of the
// canvas with keyboard commands for the editing operations.
package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"wirecanvas/internal/clipboard"
	"wirecanvas/internal/document"
	"wirecanvas/internal/editor"
	"wirecanvas/internal/hierarchy"
	"wirecanvas/internal/shape"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeConfirm
)

// Config wires the model to its surroundings.
type Config struct {
	Path          string // document file; empty disables save and export
	Title         string
	Board         clipboard.Backend
	ExportScale   float64
	Confirmations bool
	Viewport      editor.Viewport
	Logger        *slog.Logger
}

// DefaultViewport is the stage new shapes are centred on.
var DefaultViewport = editor.Viewport{Width: 1280, Height: 800, Scale: 1}

const defaultNudge = 10

type Model struct {
	editor *editor.Editor
	cfg    Config

	width      int
	height     int
	cursor     int
	mode       Mode
	help       bool
	helpScroll int

	errorMessage   string
	successMessage string
}

func New(e *editor.Editor, cfg Config) Model {
	if cfg.Board == nil {
		cfg.Board = clipboard.System()
	}
	if cfg.ExportScale <= 0 {
		cfg.ExportScale = 1
	}
	if cfg.Viewport.Width == 0 || cfg.Viewport.Height == 0 {
		cfg.Viewport = DefaultViewport
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Model{editor: e, cfg: cfg}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Mode reports the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Cursor is the id of the shape under the cursor, if any.
func (m Model) Cursor() (string, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return "", false
	}
	return rows[m.cursor].shape.ID, true
}

type row struct {
	shape shape.Shape
	depth int
}

// rows lists the canvas as an outline: every container is followed by its
// children, siblings keep paint order.
func (m Model) rows() []row {
	c := hierarchy.PaintOrder(m.editor.Shapes())
	children := make(map[string][]shape.Shape)
	var roots []shape.Shape
	for _, s := range c.All() {
		if p, ok := hierarchy.Parent(s, c); ok {
			children[p.ID] = append(children[p.ID], s)
		} else {
			roots = append(roots, s)
		}
	}

	out := make([]row, 0, c.Len())
	seen := make(map[string]bool, c.Len())
	var walk func(s shape.Shape)
	walk = func(s shape.Shape) {
		if seen[s.ID] {
			return
		}
		seen[s.ID] = true
		out = append(out, row{shape: s, depth: hierarchy.Depth(s, c)})
		for _, child := range children[s.ID] {
			walk(child)
		}
	}
	for _, s := range roots {
		walk(s)
	}
	// shapes caught in a parent cycle are unreachable from any root
	for _, s := range c.All() {
		if !seen[s.ID] {
			walk(s)
		}
	}
	return out
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// targets is the selection, or the cursor shape when nothing is selected.
func (m Model) targets() []string {
	if sel := m.editor.Selection(); len(sel) > 0 {
		return sel
	}
	if id, ok := m.Cursor(); ok {
		return []string{id}
	}
	return nil
}

func (m Model) nudgeStep() float64 {
	if g := m.editor.Settings().GridSize; g > 0 {
		return g
	}
	return defaultNudge
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.updateHelp(msg)
		}
		m.errorMessage = ""
		m.successMessage = ""

		var cmd tea.Cmd
		switch m.mode {
		case ModeMove:
			m = m.updateMove(msg)
		case ModeConfirm:
			m, cmd = m.updateConfirm(msg)
		default:
			m, cmd = m.updateNormal(msg)
		}
		m.clampCursor()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := len(helpLines) - m.visibleHeight()
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "y" {
		return m, tea.Quit
	}
	m.mode = ModeNormal
	return m, nil
}

func (m Model) updateMove(msg tea.KeyMsg) Model {
	id, ok := m.Cursor()
	if !ok || msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
		m.mode = ModeNormal
		return m
	}
	step := m.nudgeStep()
	var dx, dy float64
	switch msg.String() {
	case "h", "left":
		dx = -step
	case "l", "right":
		dx = step
	case "k", "up":
		dy = -step
	case "j", "down":
		dy = step
	case "m", "q":
		m.mode = ModeNormal
		return m
	default:
		return m
	}
	if !m.editor.Nudge(id, dx, dy) {
		m.errorMessage = "shape is locked"
		m.mode = ModeNormal
	}
	return m
}

func (m Model) updateNormal(msg tea.KeyMsg) (Model, tea.Cmd) {
	e := m.editor
	if msg.Type == tea.KeyEsc {
		e.CancelArrow()
		e.Select()
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		if m.cfg.Confirmations && e.Dirty() {
			m.mode = ModeConfirm
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	case " ":
		if id, ok := m.Cursor(); ok {
			e.Toggle(id)
		}
	case "m":
		if id, ok := m.Cursor(); ok {
			if s, _ := e.Shapes().Get(id); s.Locked {
				m.errorMessage = "shape is locked"
			} else {
				m.mode = ModeMove
			}
		}
	case "g":
		if !e.Group() {
			m.errorMessage = "select two or more root shapes to group"
		}
	case "G":
		if !e.Ungroup() {
			m.errorMessage = "select a group to ungroup"
		}
	case "a":
		m.arrow()
	case "u":
		if !e.Undo() {
			m.errorMessage = "nothing to undo"
		}
	case "ctrl+r", "U":
		if !e.Redo() {
			m.errorMessage = "nothing to redo"
		}
	case "d":
		e.Select(m.targets()...)
		if !e.DeleteSelected() {
			m.errorMessage = "nothing to delete"
		}
	case "L":
		e.Select(m.targets()...)
		e.ToggleLock()
	case "y":
		e.Select(m.targets()...)
		if err := e.CopyTo(m.cfg.Board); errors.Is(err, clipboard.ErrNoShapes) {
			m.errorMessage = "nothing to copy"
		} else {
			m.report(err, "copied")
		}
	case "p":
		ids, err := e.PasteFrom(m.cfg.Board)
		m.report(err, fmt.Sprintf("pasted %d", len(ids)))
	case "i":
		_, err := e.PasteImage(m.cfg.Board, m.cfg.Viewport)
		m.report(err, "image pasted")
	case "r":
		m.insert(shape.Shape{Kind: shape.KindRect, Width: 120, Height: 80})
	case "o":
		m.insert(shape.Shape{Kind: shape.KindCircle, Radius: 50})
	case "t":
		text, err := clipboard.ReadText(m.cfg.Board)
		if err == nil && strings.TrimSpace(text) == "" {
			err = errors.New("clipboard has no text")
		}
		if err != nil {
			m.report(err, "")
			break
		}
		m.insert(shape.Shape{Kind: shape.KindText, Text: text, FontSize: 20})
	case "s":
		m.save()
	case "e":
		m.export()
	}
	return m, nil
}

func (m *Model) arrow() {
	e := m.editor
	id, ok := m.Cursor()
	if !ok {
		return
	}
	from, _, pending := e.PendingArrow()
	if !pending {
		e.BeginArrow(id, shape.AnchorCenter)
		m.successMessage = "pick the target and press a"
		return
	}
	e.CancelArrow()
	if _, ok := e.Connect(from, id, shape.StyleStraight); !ok {
		m.errorMessage = "cannot connect a shape to itself"
	}
}

func (m *Model) insert(s shape.Shape) {
	stroke, width := m.editor.Pen()
	s.ID = shape.NewID()
	s.Stroke = stroke
	s.StrokeWidth = width
	if s.Kind == shape.KindText {
		s.Fill = stroke
		s.StrokeWidth = 0
	}
	ids := m.editor.InsertLibraryShapes([]shape.Shape{s}, m.cfg.Viewport)
	if len(ids) == 1 {
		m.moveCursorTo(ids[0])
	}
}

func (m *Model) moveCursorTo(id string) {
	for i, r := range m.rows() {
		if r.shape.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) save() {
	if m.cfg.Path == "" {
		m.errorMessage = "no file name"
		return
	}
	if err := document.SaveFile(m.cfg.Path, m.editor.Document(m.cfg.Title)); err != nil {
		m.cfg.Logger.Error("save failed", "path", m.cfg.Path, "error", err)
		m.errorMessage = err.Error()
		return
	}
	m.editor.MarkSaved()
	m.successMessage = "saved " + filepath.Base(m.cfg.Path)
}

// ExportPath is where the PNG of a document file is written.
func ExportPath(docPath string) string {
	return strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".png"
}

func (m *Model) export() {
	if m.cfg.Path == "" {
		m.errorMessage = "no file name"
		return
	}
	out := ExportPath(m.cfg.Path)
	opts := document.DefaultExportOptions()
	opts.Scale = m.cfg.ExportScale
	if err := document.ExportPNG(out, m.editor.Shapes(), opts); err != nil {
		m.cfg.Logger.Error("export failed", "path", out, "error", err)
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "exported " + filepath.Base(out)
}

func (m *Model) report(err error, success string) {
	switch {
	case errors.Is(err, clipboard.ErrNoShapes):
		m.errorMessage = "nothing to paste"
	case errors.Is(err, clipboard.ErrNoImage):
		m.errorMessage = "clipboard has no image"
	case err != nil:
		m.errorMessage = err.Error()
	default:
		m.successMessage = success
	}
}
