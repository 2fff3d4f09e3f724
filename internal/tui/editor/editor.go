// Package editor is the editing layer the refactor session sits on: one
// focused document, its view, the current mode, the status line and the
// auto-info box. Key events the session does not consume are dispatched here.
package editor

import (
	"image/color"

	"github.com/rs/zerolog"

	"github.com/colonyops/refract/internal/core/highlight"
	"github.com/colonyops/refract/internal/core/keymap"
	"github.com/colonyops/refract/internal/core/styles"
	"github.com/colonyops/refract/internal/core/workspace"
)

// Options configure an editor.
type Options struct {
	ScrollOff   int
	AutoInfo    bool
	SyntaxTheme string
	Keymaps     keymap.Keymaps
}

// View is the visible window onto the focused document. Offset is the first
// visible line; Row and Col locate the cursor in lines and characters.
type View struct {
	Offset int
	Row    int
	Col    int
	Width  int
	Height int
}

// Editor hosts the focused document.
type Editor struct {
	ws     *workspace.Workspace
	opts   Options
	logger zerolog.Logger

	doc  *workspace.Document
	view View
	goal int // column vertical moves try to keep

	mode     keymap.Mode
	status   string
	autoInfo *keymap.Info

	highlighter *highlight.Highlighter
	background  color.Color
}

// New creates an editor over ws with nothing focused.
func New(ws *workspace.Workspace, opts Options, logger zerolog.Logger) *Editor {
	if opts.Keymaps == nil {
		opts.Keymaps = keymap.Default()
	}
	if opts.SyntaxTheme == "" {
		opts.SyntaxTheme = highlight.DefaultSyntaxTheme
	}

	bg := highlight.Background(opts.SyntaxTheme)
	if bg == nil {
		bg = styles.ColorBackground
	}

	return &Editor{
		ws:         ws,
		opts:       opts,
		logger:     logger,
		mode:       keymap.ModeNormal,
		background: bg,
	}
}

// Workspace returns the workspace documents are opened in.
func (e *Editor) Workspace() *workspace.Workspace { return e.ws }

// Document returns the focused document, or nil.
func (e *Editor) Document() *workspace.Document { return e.doc }

// Focus makes doc the focused document with a fresh view: cursor at the
// start of the document, normal mode. The view keeps its size.
func (e *Editor) Focus(doc *workspace.Document) {
	e.doc = doc
	e.view = View{Width: e.view.Width, Height: e.view.Height}
	e.goal = 0
	e.mode = keymap.ModeNormal
	e.highlighter = nil
	if doc != nil && doc.Language() != "" {
		e.SetLanguage(doc.Language())
	}
}

// SetLanguage sets the language of the focused document and loads its
// highlighter. An unknown language is logged and leaves the document
// without highlighting.
func (e *Editor) SetLanguage(lang string) {
	if e.doc == nil {
		return
	}

	h, err := highlight.New(lang, e.opts.SyntaxTheme)
	if err != nil {
		e.logger.Warn().Err(err).Str("language", lang).Msg("highlighting disabled")
		e.highlighter = nil
		return
	}
	e.doc.SetLanguage(lang)
	e.highlighter = h
}

// Highlighted reports whether the focused document is syntax highlighted.
func (e *Editor) Highlighted() bool { return e.highlighter != nil }

// CloseDocument discards the focused document without saving it and clears
// the auto-info box.
func (e *Editor) CloseDocument() {
	if e.doc != nil {
		if err := e.ws.Close(e.doc.ID()); err != nil {
			e.logger.Debug().Err(err).Msg("close document")
		}
	}
	e.doc = nil
	e.highlighter = nil
	e.autoInfo = nil
}

// Keymaps returns the effective keymaps.
func (e *Editor) Keymaps() keymap.Keymaps { return e.opts.Keymaps }

// Mode returns the editing mode.
func (e *Editor) Mode() keymap.Mode { return e.mode }

// SetMode switches the editing mode and clamps the cursor for it.
func (e *Editor) SetMode(m keymap.Mode) {
	e.mode = m
	e.clampCursor()
}

// Status returns the status line message.
func (e *Editor) Status() string { return e.status }

// SetStatus replaces the status line message.
func (e *Editor) SetStatus(msg string) { e.status = msg }

// AutoInfo returns the active auto-info box, or nil.
func (e *Editor) AutoInfo() *keymap.Info { return e.autoInfo }

// SetAutoInfo shows info in the auto-info box. It is a no-op when auto-info
// is disabled.
func (e *Editor) SetAutoInfo(info keymap.Info) {
	if !e.opts.AutoInfo {
		return
	}
	e.autoInfo = &info
}

// ClearAutoInfo hides the auto-info box.
func (e *Editor) ClearAutoInfo() { e.autoInfo = nil }

// View returns the current view.
func (e *Editor) View() View { return e.view }

// Background returns the color the text area is cleared with.
func (e *Editor) Background() color.Color { return e.background }

// Resize sets the size of the text area.
func (e *Editor) Resize(width, height int) {
	e.view.Width = max(width, 0)
	e.view.Height = max(height, 0)
}

// EnsureCursorInView scrolls so that the cursor row is visible with at least
// the configured number of context lines above and below it.
func (e *Editor) EnsureCursorInView() {
	if e.doc == nil || e.view.Height <= 0 {
		return
	}

	so := min(e.opts.ScrollOff, (e.view.Height-1)/2)
	so = max(so, 0)

	if e.view.Row-so < e.view.Offset {
		e.view.Offset = e.view.Row - so
	}
	if e.view.Row+so >= e.view.Offset+e.view.Height {
		e.view.Offset = e.view.Row + so - e.view.Height + 1
	}

	last := e.doc.Text().LenLines() - 1
	e.view.Offset = min(max(e.view.Offset, 0), last)
}

// cursorPos returns the cursor as a character offset.
func (e *Editor) cursorPos() int {
	return e.doc.Text().LineToChar(e.view.Row) + e.view.Col
}

// setCursorPos moves the cursor to a character offset.
func (e *Editor) setCursorPos(pos int) {
	buf := e.doc.Text()
	pos = min(max(pos, 0), buf.Len())
	row := buf.CharToLine(pos)
	e.view.Row = row
	e.view.Col = pos - buf.LineToChar(row)
	e.clampCursor()
	e.goal = e.view.Col
}

func (e *Editor) maxCol(row int) int {
	n := e.doc.Text().LineLen(row)
	if e.mode == keymap.ModeInsert {
		return n
	}
	return max(n-1, 0)
}

func (e *Editor) clampCursor() {
	if e.doc == nil {
		return
	}
	lines := e.doc.Text().LenLines()
	e.view.Row = min(max(e.view.Row, 0), lines-1)
	e.view.Col = min(max(e.view.Col, 0), e.maxCol(e.view.Row))
}
