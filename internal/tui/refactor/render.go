package refactor

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/refract/internal/core/styles"
	"github.com/colonyops/refract/internal/tui/components"
	"github.com/colonyops/refract/internal/tui/editor"
)

const ellipsis = "…"

// Render draws the session into a width by height area. The bottom row
// holds the status line; every other row shows the origin label of the
// document row in the gutter followed by its text. An active info box is
// drawn last, over the bottom-right corner of the text area.
func (s *Session) Render(ed *editor.Editor, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	area := height - 1
	gutter := min(s.gutterWidth, width)
	ed.Resize(width-gutter, area)

	offset := ed.View().Offset
	gutterStyle := styles.GutterStyle.Background(ed.Background())

	rows := ed.RenderText(width-gutter, area)
	lines := make([]string, 0, height)
	for i, row := range rows {
		label := fitLabel(s.label(offset+i), gutter-1)
		cell := label + strings.Repeat(" ", gutter-ansi.StringWidth(label))
		lines = append(lines, gutterStyle.Render(cell)+row)
	}

	out := strings.Join(lines, "\n")
	if info := ed.AutoInfo(); info != nil && area > 0 {
		out = components.NewInfoBox(*info).Overlay(out, width, area)
	}

	if area > 0 {
		out += "\n"
	}
	return out + ed.StatusLine(width)
}

// label returns the origin of a document row, or "" for rows without one.
func (s *Session) label(row int) string {
	if s.closed || row >= s.doc.Text().LenLines() {
		return ""
	}
	loc, ok := s.lines.Origin(row)
	if !ok {
		return ""
	}
	return loc.Label()
}

// fitLabel truncates label from the left so it fits in width cells, marking
// the cut with an ellipsis.
func fitLabel(label string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(label)
	if w <= width {
		return label
	}
	return ansi.TruncateLeft(label, w-width+1, ellipsis)
}
