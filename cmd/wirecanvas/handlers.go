package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"wirecanvas/internal/clipboard"
	"wirecanvas/internal/document"
	"wirecanvas/internal/editor"
	"wirecanvas/internal/geometry"
	"wirecanvas/internal/hierarchy"
	"wirecanvas/internal/imageref"
	"wirecanvas/internal/shape"
	"wirecanvas/internal/tui"
)

const untitled = "untitled"

// stage is the screen size assumed when there is no real viewport.
var stage = editor.Viewport{Width: 1280, Height: 800, Scale: 1}

func (a *app) newEditor() *editor.Editor {
	return editor.New(
		editor.WithLogger(a.logger),
		editor.WithSettings(document.Settings{
			GridSize:   a.cfg.GridSize,
			ShowGrid:   a.cfg.ShowGrid,
			SnapToGrid: a.cfg.SnapToGrid,
		}),
		editor.WithPen(a.cfg.DefaultStroke, a.cfg.DefaultStrokeWidth),
	)
}

// openProject loads path into a new editor. A missing file gives an empty
// canvas when allowMissing is set.
func (a *app) openProject(path string, allowMissing bool) (*editor.Editor, error) {
	e := a.newEditor()
	doc, err := document.LoadFile(path)
	switch {
	case err == nil:
		e.Load(doc)
		a.logger.Debug("project loaded", "path", path, "shapes", doc.Shapes.Len())
	case allowMissing && errors.Is(err, fs.ErrNotExist):
		a.logger.Info("new project", "path", path)
	default:
		return nil, fmt.Errorf("open project: %w", err)
	}
	return e, nil
}

func title(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func (a *app) projectPath(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		name = untitled
	}
	if filepath.Ext(name) == "" {
		name += document.Extension
	}
	return a.cfg.SavePath(name)
}

func runEdit(a *app, name string) error {
	path, err := a.projectPath(name)
	if err != nil {
		return err
	}
	e, err := a.openProject(path, true)
	if err != nil {
		return err
	}

	model := tui.New(e, tui.Config{
		Path:          path,
		Title:         title(path),
		Board:         clipboard.System(),
		ExportScale:   a.cfg.ExportScale,
		Confirmations: a.cfg.Confirmations,
		Viewport:      stage,
		Logger:        a.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

func runExport(w io.Writer, a *app, path, out string, scale float64) error {
	e, err := a.openProject(path, false)
	if err != nil {
		return err
	}
	opts := document.DefaultExportOptions()
	opts.Scale = scale
	if err := document.ExportPNG(out, e.Shapes(), opts); err != nil {
		return err
	}
	fmt.Fprintf(w, "exported %s\n", out)
	return nil
}

func runTree(w io.Writer, a *app, path string) error {
	e, err := a.openProject(path, false)
	if err != nil {
		return err
	}
	c := hierarchy.SortByHierarchy(e.Shapes())
	seen := make(map[string]bool, c.Len())
	for _, root := range hierarchy.Roots(c) {
		printTree(w, root, c, 0, seen)
	}
	// dangling parents and cycles
	for _, s := range c.All() {
		printTree(w, s, c, 0, seen)
	}
	if err := hierarchy.Check(c); err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}
	return nil
}

func printTree(w io.Writer, s shape.Shape, c shape.Collection, depth int, seen map[string]bool) {
	if seen[s.ID] {
		return
	}
	seen[s.ID] = true

	g := geometry.GlobalPosition(s, c)
	line := fmt.Sprintf("%s%s %s @ (%g,%g)", strings.Repeat("  ", depth), s.Kind, s.ID, g.X, g.Y)
	if s.Kind == shape.KindSmartArrow {
		line += fmt.Sprintf(" %s -> %s", s.FromShapeID, s.ToShapeID)
	}
	if s.IsTemplate {
		line += " [template]"
	}
	if s.Locked {
		line += " [locked]"
	}
	fmt.Fprintln(w, line)

	for _, child := range hierarchy.DirectChildren(s.ID, c) {
		printTree(w, child, c, depth+1, seen)
	}
}

func runImportImage(w io.Writer, a *app, path, src string, template bool) error {
	e, err := a.openProject(path, true)
	if err != nil {
		return err
	}

	img, err := imageref.Decode(src)
	if err != nil {
		return fmt.Errorf("import image: %w", err)
	}
	// projects carry their images inline
	if !imageref.IsDataURL(src) {
		if src, err = imageref.DataURL(img); err != nil {
			return fmt.Errorf("import image: %w", err)
		}
	}

	size := img.Bounds().Size()
	id := place(e, src, size, template)
	if err := document.SaveFile(path, e.Document(title(path))); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	e.MarkSaved()
	fmt.Fprintf(w, "added %s to %s\n", id, path)
	return nil
}

func place(e *editor.Editor, src string, size image.Point, template bool) string {
	if template {
		return e.AddTemplate(src, float64(size.X), float64(size.Y), stage)
	}
	return e.ImportImage(src, float64(size.X), float64(size.Y), stage)
}
