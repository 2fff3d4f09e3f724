package editor

import (
	"fmt"
	"unicode"

	"github.com/colonyops/refract/internal/core/keymap"
	"github.com/colonyops/refract/internal/core/text"
)

type command func(e *Editor)

// commands maps command names to the editing primitives the editor
// implements. Catalogued commands missing here report that they have no
// handler.
var commands = map[string]command{
	"move_char_left":        func(e *Editor) { e.moveHorizontal(-1) },
	"move_char_right":       func(e *Editor) { e.moveHorizontal(1) },
	"move_line_up":          func(e *Editor) { e.moveVertical(-1) },
	"move_line_down":        func(e *Editor) { e.moveVertical(1) },
	"move_next_word_start":  func(e *Editor) { e.setCursorPos(nextWordStart(e.runes(), e.cursorPos())) },
	"move_prev_word_start":  func(e *Editor) { e.setCursorPos(prevWordStart(e.runes(), e.cursorPos())) },
	"move_next_word_end":    func(e *Editor) { e.setCursorPos(nextWordEnd(e.runes(), e.cursorPos())) },
	"page_up":               func(e *Editor) { e.scrollPage(-e.view.Height) },
	"page_down":             func(e *Editor) { e.scrollPage(e.view.Height) },
	"page_cursor_half_up":   func(e *Editor) { e.scrollPage(-max(e.view.Height/2, 1)) },
	"page_cursor_half_down": func(e *Editor) { e.scrollPage(max(e.view.Height/2, 1)) },
	"goto_file_start":       func(e *Editor) { e.setCursorPos(0) },
	"goto_file_end":         func(e *Editor) { e.setCursorPos(e.doc.Text().Len()) },
	"goto_last_line":        func(e *Editor) { e.gotoLine(e.doc.Text().LenLines() - 1) },
	"goto_line_start":       func(e *Editor) { e.setCol(0) },
	"goto_line_end":         func(e *Editor) { e.setCol(e.doc.Text().LineLen(e.view.Row)) },

	keymap.CommandNormalMode: func(e *Editor) { e.SetMode(keymap.ModeNormal) },
	"insert_mode":            func(e *Editor) { e.SetMode(keymap.ModeInsert) },
	"append_mode": func(e *Editor) {
		e.SetMode(keymap.ModeInsert)
		if e.doc.Text().LineLen(e.view.Row) > 0 {
			e.setCol(e.view.Col + 1)
		}
	},
	"insert_at_line_start": func(e *Editor) {
		e.SetMode(keymap.ModeInsert)
		e.setCol(firstNonBlank(e.line(e.view.Row)))
	},
	"insert_at_line_end": func(e *Editor) {
		e.SetMode(keymap.ModeInsert)
		e.setCol(e.doc.Text().LineLen(e.view.Row))
	},
	"open_below": func(e *Editor) {
		e.SetMode(keymap.ModeInsert)
		end := e.lineEnd(e.view.Row)
		e.apply(text.Insert(end, "\n"), end+1)
	},
	"open_above": func(e *Editor) {
		e.SetMode(keymap.ModeInsert)
		start := e.doc.Text().LineToChar(e.view.Row)
		e.apply(text.Insert(start, "\n"), start)
	},

	"delete_selection": func(e *Editor) { e.deleteUnderCursor(true) },
	"change_selection": func(e *Editor) {
		e.deleteUnderCursor(false)
		e.SetMode(keymap.ModeInsert)
	},
	"delete_char_backward": func(e *Editor) {
		if pos := e.cursorPos(); pos > 0 {
			e.apply(text.Delete(pos-1, pos), pos-1)
		}
	},
	"delete_char_forward": func(e *Editor) {
		if pos := e.cursorPos(); pos < e.doc.Text().Len() {
			e.apply(text.Delete(pos, pos+1), pos)
		}
	},
	"delete_word_backward": func(e *Editor) {
		pos := e.cursorPos()
		if start := prevWordStart(e.runes(), pos); start < pos {
			e.apply(text.Delete(start, pos), start)
		}
	},
	"kill_to_line_end": func(e *Editor) {
		pos, end := e.cursorPos(), e.lineEnd(e.view.Row)
		if pos == end && end < e.doc.Text().Len() {
			end++
		}
		if end > pos {
			e.apply(text.Delete(pos, end), pos)
		}
	},
	"insert_newline": func(e *Editor) { e.InsertText("\n") },
	"insert_tab":     func(e *Editor) { e.InsertText("\t") },

	"undo": func(e *Editor) {
		tx, ok := e.doc.Undo()
		if !ok {
			e.SetStatus("Already at oldest change")
			return
		}
		e.cursorAfter(tx)
	},
	"redo": func(e *Editor) {
		tx, ok := e.doc.Redo()
		if !ok {
			e.SetStatus("Already at newest change")
			return
		}
		e.cursorAfter(tx)
	},
}

// Execute runs commands in order against the focused document.
func (e *Editor) Execute(names ...string) {
	if e.doc == nil {
		return
	}
	for _, name := range names {
		cmd, ok := commands[name]
		if !ok {
			if _, known := keymap.LookupCommand(name); known {
				e.SetStatus(fmt.Sprintf("No handler for %s", name))
			} else {
				e.SetStatus(fmt.Sprintf("Unknown command: %s", name))
			}
			e.logger.Debug().Str("command", name).Msg("command not executed")
			continue
		}
		cmd(e)
	}
	e.EnsureCursorInView()
}

// Dispatch handles a key event the session did not consume. Commands the
// key resolved to run in order; otherwise escape returns to normal mode and,
// in insert mode, the key's text is inserted.
func (e *Editor) Dispatch(ev keymap.KeyEvent, names []string) {
	if e.doc == nil {
		return
	}

	switch {
	case len(names) > 0:
		e.Execute(names...)
	case ev.IsEscape():
		e.SetMode(keymap.ModeNormal)
	case e.mode == keymap.ModeInsert && ev.Text != "":
		e.InsertText(ev.Text)
	}
}

// InsertText inserts s at the cursor and moves the cursor past it.
func (e *Editor) InsertText(s string) {
	if e.doc == nil || s == "" {
		return
	}
	pos := e.cursorPos()
	e.apply(text.Insert(pos, s), pos+len([]rune(s)))
	e.EnsureCursorInView()
}

// Commands returns the names of the commands the editor implements.
func Commands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	return names
}

func (e *Editor) apply(tx text.Transaction, cursor int) {
	if err := e.doc.Apply(tx); err != nil {
		e.logger.Error().Err(err).Msg("apply edit")
		e.SetStatus(err.Error())
		return
	}
	e.setCursorPos(cursor)
}

// cursorAfter places the cursor at the end of the first change of an
// applied transaction.
func (e *Editor) cursorAfter(tx text.Transaction) {
	changes := tx.Changes()
	if len(changes) == 0 {
		return
	}
	e.setCursorPos(changes[0].From + len([]rune(changes[0].Text)))
}

func (e *Editor) moveHorizontal(n int) {
	e.setCol(e.view.Col + n)
}

func (e *Editor) setCol(col int) {
	e.view.Col = col
	e.clampCursor()
	e.goal = e.view.Col
}

func (e *Editor) moveVertical(n int) {
	e.view.Row += n
	e.view.Col = e.goal
	e.clampCursor()
}

func (e *Editor) gotoLine(row int) {
	e.view.Row = row
	e.clampCursor()
	e.setCol(0)
}

// scrollPage moves the view and the cursor by n lines.
func (e *Editor) scrollPage(n int) {
	last := e.doc.Text().LenLines() - 1
	e.view.Offset = min(max(e.view.Offset+n, 0), max(last, 0))
	e.moveVertical(n)
}

func (e *Editor) deleteUnderCursor(joinLines bool) {
	pos := e.cursorPos()
	if e.view.Col < e.doc.Text().LineLen(e.view.Row) || (joinLines && pos < e.doc.Text().Len()) {
		e.apply(text.Delete(pos, pos+1), pos)
	}
}

func (e *Editor) runes() []rune {
	return []rune(e.doc.Text().String())
}

// line returns the text of row without its terminator.
func (e *Editor) line(row int) string {
	s, _ := e.doc.Text().Line(row)
	return text.TrimTerminator(s)
}

// lineEnd returns the offset just before the terminator of row.
func (e *Editor) lineEnd(row int) int {
	return e.doc.Text().LineToChar(row) + e.doc.Text().LineLen(row)
}

func firstNonBlank(s string) int {
	for i, r := range []rune(s) {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len([]rune(s))
}

type charClass int

const (
	classSpace charClass = iota
	classWord
	classPunct
	classEOL
)

func classOf(r rune) charClass {
	switch {
	case r == '\n':
		return classEOL
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	}
	return classPunct
}

// nextWordStart returns the start of the word after pos.
func nextWordStart(rs []rune, pos int) int {
	n := len(rs)
	if pos >= n {
		return n
	}
	i := pos
	start := classOf(rs[i])
	for i < n && classOf(rs[i]) == start && start != classEOL {
		i++
	}
	if start == classEOL {
		i++
	}
	for i < n && (classOf(rs[i]) == classSpace || classOf(rs[i]) == classEOL) {
		i++
	}
	return i
}

// prevWordStart returns the start of the word before pos.
func prevWordStart(rs []rune, pos int) int {
	i := min(pos, len(rs)) - 1
	for i >= 0 && (classOf(rs[i]) == classSpace || classOf(rs[i]) == classEOL) {
		i--
	}
	if i < 0 {
		return 0
	}
	c := classOf(rs[i])
	for i > 0 && classOf(rs[i-1]) == c {
		i--
	}
	return i
}

// nextWordEnd returns the last character of the word after pos.
func nextWordEnd(rs []rune, pos int) int {
	n := len(rs)
	i := pos + 1
	for i < n && (classOf(rs[i]) == classSpace || classOf(rs[i]) == classEOL) {
		i++
	}
	if i >= n {
		return max(n-1, 0)
	}
	c := classOf(rs[i])
	for i+1 < n && classOf(rs[i+1]) == c {
		i++
	}
	return i
}
