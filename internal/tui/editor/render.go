package editor

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/refract/internal/core/highlight"
	"github.com/colonyops/refract/internal/core/keymap"
	"github.com/colonyops/refract/internal/core/styles"
	"github.com/colonyops/refract/internal/core/text"
)

const tabWidth = 4

// RenderText draws the visible lines of the focused document, one string of
// exactly width cells per row, starting at the view offset. Rows past the
// end of the document are blank.
func (e *Editor) RenderText(width, height int) []string {
	rows := make([]string, 0, height)
	bg := lipgloss.NewStyle().Background(e.background)
	blank := bg.Render(strings.Repeat(" ", max(width, 0)))

	if e.doc == nil || width <= 0 {
		for range height {
			rows = append(rows, blank)
		}
		return rows
	}

	buf := e.doc.Text()
	var spans [][]highlight.Span
	if e.highlighter != nil {
		spans = e.highlighter.Lines(buf.String())
	}

	for i := range height {
		row := e.view.Offset + i
		raw, ok := buf.Line(row)
		if !ok {
			rows = append(rows, blank)
			continue
		}

		var lineSpans []highlight.Span
		if row < len(spans) {
			lineSpans = spans[row]
		} else if line := text.TrimTerminator(raw); line != "" {
			lineSpans = []highlight.Span{{Text: line, Style: styles.TextStyle}}
		}

		cursor := -1
		if row == e.view.Row {
			cursor = e.view.Col
		}
		rows = append(rows, e.renderLine(lineSpans, cursor, width, bg))
	}
	return rows
}

func (e *Editor) renderLine(spans []highlight.Span, cursor, width int, bg lipgloss.Style) string {
	var sb strings.Builder
	col, idx := 0, 0

	for _, span := range spans {
		st := span.Style.Background(e.background)
		var run strings.Builder
		for _, r := range strings.TrimSuffix(span.Text, "\r") {
			cell := string(r)
			if r == '\t' {
				cell = strings.Repeat(" ", tabWidth-col%tabWidth)
			}
			if idx == cursor {
				sb.WriteString(st.Render(run.String()))
				run.Reset()
				sb.WriteString(styles.CursorStyle.Render(cell))
			} else {
				run.WriteString(cell)
			}
			col += ansi.StringWidth(cell)
			idx++
		}
		sb.WriteString(st.Render(run.String()))
	}

	if cursor >= idx {
		sb.WriteString(styles.CursorStyle.Render(" "))
		col++
	}

	line := ansi.Truncate(sb.String(), width, "")
	if pad := width - min(col, width); pad > 0 {
		line += bg.Render(strings.Repeat(" ", pad))
	}
	return line
}

// StatusLine draws the mode badge, the status message and the cursor
// position in width cells.
func (e *Editor) StatusLine(width int) string {
	badge := styles.ModeNormalStyle.Render("NOR")
	if e.mode == keymap.ModeInsert {
		badge = styles.ModeInsertStyle.Render("INS")
	}

	right := ""
	if e.doc != nil {
		name := "[scratch]"
		if !e.doc.Scratch() {
			name = e.doc.Path()
		}
		if e.doc.Modified() {
			name += " [+]"
		}
		right = fmt.Sprintf("%s %d:%d ", name, e.view.Row+1, e.view.Col+1)
	}

	msg := " " + e.status
	gap := width - lipgloss.Width(badge) - ansi.StringWidth(msg) - ansi.StringWidth(right)
	if gap < 1 {
		right = ""
		gap = max(width-lipgloss.Width(badge)-ansi.StringWidth(msg), 0)
	}

	line := badge + styles.StatusMsgStyle.Render(msg) + strings.Repeat(" ", gap) + right
	return styles.StatusLineStyle.Render(ansi.Truncate(line, width, ""))
}
