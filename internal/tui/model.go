// Package tui runs the refactor view as a bubbletea program.
package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/refract/internal/core/keymap"
	"github.com/colonyops/refract/internal/core/match"
	reconcile "github.com/colonyops/refract/internal/core/refactor"
	"github.com/colonyops/refract/internal/core/workspace"
	"github.com/colonyops/refract/internal/tui/editor"
	"github.com/colonyops/refract/internal/tui/refactor"
)

// Fallback dimensions used before the first window size message.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures the TUI.
type Options struct {
	Editor  editor.Options
	Session refactor.Options
}

type keyMap struct {
	Interrupt key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit without applying")),
	}
}

// Model is the bubbletea model hosting one refactor session.
type Model struct {
	ed      *editor.Editor
	session *refactor.Session
	keys    keyMap

	width  int
	height int

	quitting    bool
	interrupted bool
}

// New opens a refactor session over snap in a fresh editor on ws.
func New(ws *workspace.Workspace, snap match.Snapshot, opts Options, logger zerolog.Logger) Model {
	ed := editor.New(ws, opts.Editor, logger)
	return Model{
		ed:      ed,
		session: refactor.New(ed, snap, opts.Session, logger),
		keys:    defaultKeyMap(),
	}
}

// Result returns the reconciliation result and whether changes were applied.
func (m Model) Result() (reconcile.Result, bool) {
	return m.session.Result()
}

// Interrupted reports whether the program was stopped with ctrl+c.
func (m Model) Interrupted() bool { return m.interrupted }

// Status returns the last status line message.
func (m Model) Status() string { return m.ed.Status() }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.PasteMsg:
		if m.ed.Mode() == keymap.ModeInsert {
			m.ed.InsertText(msg.Content)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Interrupt) {
		m.interrupted = true
		return m.quit()
	}

	ev := keyEvent(msg)
	out := m.session.HandleKey(m.ed, ev)
	if out.Close {
		return m.quit()
	}
	if !out.Consumed {
		m.ed.Dispatch(ev, out.Commands)
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// keyEvent converts a key press into the names keymaps are written in.
func keyEvent(msg tea.KeyPressMsg) keymap.KeyEvent {
	return keymap.KeyEvent{Name: msg.String(), Text: msg.Text}
}

// View renders the model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	w, h := m.width, m.height
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}

	v := tea.NewView(m.session.Render(m.ed, w, h))
	v.AltScreen = true
	return v
}
