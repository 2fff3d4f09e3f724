// Package refactor is the multi-file refactor view: matches from many files
// shown as one editable scratch document, committed back to their files on
// confirmation.
package refactor

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/refract/internal/core/keymap"
	"github.com/colonyops/refract/internal/core/match"
	reconcile "github.com/colonyops/refract/internal/core/refactor"
	"github.com/colonyops/refract/internal/core/workspace"
	"github.com/colonyops/refract/internal/tui/editor"
)

// Status messages shown by the session.
const (
	StatusUnsupported = "Command not supported in refactor view"
	StatusConfirm     = "Apply changes to documents? (y/n): "
	StatusAborted     = "Aborted"
	statusRefactored  = "Refactored %d documents, %d lines changed."
)

// DefaultGutterWidth is the width of the origin label column.
const DefaultGutterWidth = 15

// State is the input state of a session.
type State int

const (
	// Browsing resolves keys against the mode's top-level keymap.
	Browsing State = iota
	// Sticky resolves keys against a pending keymap node first.
	Sticky
	// ConfirmPending waits for the answer to the apply prompt.
	ConfirmPending
)

func (s State) String() string {
	switch s {
	case Sticky:
		return "sticky"
	case ConfirmPending:
		return "confirm"
	}
	return "browsing"
}

// Outcome tells the host what became of a key event. Events that were not
// consumed belong to the host, which runs Commands if there are any.
type Outcome struct {
	Consumed bool
	Close    bool
	Commands []string
}

// Options configure a session.
type Options struct {
	Language    string
	GutterWidth int
}

// Session is one refactor view over a match snapshot.
type Session struct {
	snap        match.Snapshot
	lines       match.LineMap
	doc         *workspace.Document
	gutterWidth int
	logger      zerolog.Logger

	state  State
	sticky *keymap.Node

	result  reconcile.Result
	applied bool
	closed  bool
}

// New builds the synthetic document for snap, installs it in ed as a
// scratch document and focuses it. An empty snapshot yields an empty
// document.
func New(ed *editor.Editor, snap match.Snapshot, opts Options, logger zerolog.Logger) *Session {
	if opts.GutterWidth <= 0 {
		opts.GutterWidth = DefaultGutterWidth
	}

	agg := match.Build(snap)
	doc := ed.Workspace().Scratch(agg.Text, "")
	ed.Focus(doc)
	if opts.Language != "" {
		ed.SetLanguage(opts.Language)
	}

	logger.Debug().
		Int("files", len(snap)).
		Int("rows", agg.Lines.Len()).
		Str("language", opts.Language).
		Msg("refactor view opened")

	return &Session{
		snap:        snap,
		lines:       agg.Lines,
		doc:         doc,
		gutterWidth: opts.GutterWidth,
		logger:      logger,
	}
}

// State returns the input state.
func (s *Session) State() State { return s.state }

// Document returns the synthetic document.
func (s *Session) Document() *workspace.Document { return s.doc }

// Lines returns the row mapping of the synthetic document.
func (s *Session) Lines() match.LineMap { return s.lines }

// Result returns the reconciliation result and whether changes were applied.
func (s *Session) Result() (reconcile.Result, bool) { return s.result, s.applied }

// Closed reports whether the session has closed its view.
func (s *Session) Closed() bool { return s.closed }

// HandleKey runs one key event through the session.
func (s *Session) HandleKey(ed *editor.Editor, ev keymap.KeyEvent) Outcome {
	if s.closed {
		return Outcome{}
	}
	ed.EnsureCursorInView()

	if ev.IsEscape() {
		s.sticky = nil
		if s.state == Sticky {
			s.state = Browsing
		}
		return Outcome{}
	}

	if s.state == ConfirmPending {
		if ch, ok := ev.Char(); ok && (ch == 'y' || ch == 'Y') {
			s.apply(ed)
			return s.close(ed)
		}
		ed.SetStatus(StatusAborted)
		s.state = Browsing
		return Outcome{Consumed: true}
	}

	t, ok := s.resolve(ed, ev)
	if !ok {
		return Outcome{}
	}

	switch t := t.(type) {
	case *keymap.Leaf:
		switch {
		case reconcile.IsUnsupported(t.Command):
			ed.SetStatus(StatusUnsupported)
			return Outcome{Consumed: true}
		case t.Command == keymap.CommandCloseView:
			return s.close(ed)
		case t.Command == keymap.CommandCommandMode:
			ed.SetStatus(StatusConfirm)
			s.sticky = nil
			s.state = ConfirmPending
			return Outcome{Consumed: true}
		}
		s.sticky = nil
		s.state = Browsing
		ed.ClearAutoInfo()
		return Outcome{Commands: []string{t.Command}}

	case *keymap.Sequence:
		return Outcome{Commands: t.Commands}

	case *keymap.Node:
		s.sticky = t
		s.state = Sticky
		ed.SetAutoInfo(t.Info())
		return Outcome{Consumed: true}
	}

	return Outcome{}
}

// resolve looks the key up in the sticky node, then in the top-level keymap
// of the current mode.
func (s *Session) resolve(ed *editor.Editor, ev keymap.KeyEvent) (keymap.Trie, bool) {
	if t, ok := s.sticky.Get(ev.Name); ok {
		return t, true
	}
	root, _ := ed.Keymaps().Get(ed.Mode())
	return root.Get(ev.Name)
}

func (s *Session) apply(ed *editor.Editor) {
	s.result = reconcile.Reconcile(s.doc.Text(), s.snap, s.lines, ed.Workspace(), s.logger)
	s.applied = true
	ed.SetStatus(fmt.Sprintf(statusRefactored, s.result.Files, s.result.Lines))
	s.logger.Info().
		Int("documents", s.result.Files).
		Int("lines", s.result.Lines).
		Msg("refactor applied")
}

func (s *Session) close(ed *editor.Editor) Outcome {
	ed.CloseDocument()
	s.sticky = nil
	s.state = Browsing
	s.closed = true
	return Outcome{Consumed: true, Close: true}
}
