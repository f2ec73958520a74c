package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wirecanvas/internal/geometry"
	"wirecanvas/internal/shape"
)

var (
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	lockedStyle   = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

var helpLines = []string{
	"wirecanvas help",
	"===============",
	"",
	"Outline:",
	"--------",
	"  j/↓ k/↑          Move the cursor",
	"  space            Toggle selection of the shape under the cursor",
	"  esc              Clear selection / cancel the pending arrow",
	"",
	"Shapes:",
	"-------",
	"  r                Add a rectangle",
	"  o                Add a circle",
	"  t                Add the clipboard text",
	"  i                Add the clipboard image",
	"  m                Move the shape under the cursor",
	"  d                Delete the selection (or the cursor shape)",
	"  L                Lock / unlock",
	"  g                Group the selection",
	"  G                Ungroup the selected group",
	"",
	"Move Mode:",
	"----------",
	"  h/j/k/l          Move by one grid step",
	"  Enter/Esc        Return to normal mode",
	"",
	"Arrows:",
	"-------",
	"  a                Start an arrow at the cursor shape,",
	"                   press again on the target to connect",
	"",
	"Clipboard:",
	"----------",
	"  y                Copy the selection",
	"  p                Paste",
	"",
	"File:",
	"-----",
	"  s                Save",
	"  e                Export PNG next to the document",
	"",
	"General:",
	"  u                Undo",
	"  ctrl+r / U       Redo",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m Model) visibleHeight() int {
	h := m.height - 1 // status line
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) View() string {
	if m.help {
		return m.helpView()
	}

	rows := m.rows()
	var b strings.Builder
	if len(rows) == 0 {
		b.WriteString(emptyStyle.Render("empty canvas: r adds a rectangle, ? for help"))
		b.WriteString("\n")
	}

	// keep the cursor row on screen
	start := 0
	if visible := m.visibleHeight(); m.height > 0 && m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := len(rows)
	if m.height > 0 && end > start+m.visibleHeight() {
		end = start + m.visibleHeight()
	}

	c := m.editor.Shapes()
	for i := start; i < end; i++ {
		r := rows[i]
		mark := " "
		if m.editor.IsSelected(r.shape.ID) {
			mark = "*"
		}
		line := strings.Repeat("  ", r.depth) + mark + " " + describe(r.shape, c)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case m.editor.IsSelected(r.shape.ID):
			line = selectedStyle.Render(line)
		case r.shape.Locked:
			line = lockedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	return b.String()
}

func describe(s shape.Shape, c shape.Collection) string {
	var b strings.Builder
	if s.Kind == shape.KindText {
		fmt.Fprintf(&b, "text %q", s.Text)
	} else {
		b.WriteString(string(s.Kind))
	}
	fmt.Fprintf(&b, " %s", shortID(s.ID))

	switch s.Kind {
	case shape.KindSmartArrow:
		fmt.Fprintf(&b, " %s → %s", shortID(s.FromShapeID), shortID(s.ToShapeID))
	default:
		if r, ok := geometry.Extent(s, c); ok {
			fmt.Fprintf(&b, " (%g,%g) %gx%g", r.X, r.Y, r.Width, r.Height)
		}
	}
	if s.IsTemplate {
		b.WriteString(" [template]")
	}
	if s.Locked {
		b.WriteString(" [locked]")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m Model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m Model) statusLine() string {
	if m.mode == ModeConfirm {
		return statusStyle.Render("Mode: CONFIRM | Quit with unsaved changes? (y/n)")
	}

	status := fmt.Sprintf("Mode: %s | %d shapes", m.modeString(), m.editor.Shapes().Len())
	if n := len(m.editor.Selection()); n > 0 {
		status += fmt.Sprintf(" | %d selected", n)
	}
	if from, _, ok := m.editor.PendingArrow(); ok {
		status += fmt.Sprintf(" | Arrow from %s (select target)", shortID(from))
	}
	if m.editor.Dirty() {
		status += " | modified"
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		return statusStyle.Render(status+" | ") + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return statusStyle.Render(status)
}

func (m Model) helpView() string {
	visibleHeight := m.visibleHeight()
	startLine := m.helpScroll
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}
	if startLine > endLine {
		startLine = endLine
	}

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
