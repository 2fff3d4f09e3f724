package refactor

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/refract/internal/core/keymap"
	"github.com/colonyops/refract/internal/core/match"
	"github.com/colonyops/refract/internal/core/workspace"
	"github.com/colonyops/refract/internal/tui/editor"
)

func ev(name string) keymap.KeyEvent {
	e := keymap.KeyEvent{Name: name}
	if len([]rune(name)) == 1 {
		e.Text = name
	}
	return e
}

// press runs keys through the session the way the host does: events the
// session leaves alone go to the editor.
func press(s *Session, ed *editor.Editor, keys ...string) Outcome {
	var out Outcome
	for _, k := range keys {
		e := ev(k)
		out = s.HandleKey(ed, e)
		if !out.Consumed {
			ed.Dispatch(e, out.Commands)
		}
	}
	return out
}

type harness struct {
	ed   *editor.Editor
	s    *Session
	a, b string
}

func newHarness(t *testing.T, km keymap.Keymaps) *harness {
	t.Helper()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("foo\nkeep\nbar\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("zero\nbaz\n"), 0o644))

	snap := match.Snapshot{
		{Path: a, Matches: []match.Match{{Line: 0, Text: "foo"}, {Line: 2, Text: "bar"}}},
		{Path: b, Matches: []match.Match{{Line: 1, Text: "baz"}}},
	}

	ws := workspace.New(zerolog.Nop())
	ed := editor.New(ws, editor.Options{ScrollOff: 1, AutoInfo: true, Keymaps: km}, zerolog.Nop())
	ed.Resize(40, 10)

	return &harness{ed: ed, s: New(ed, snap, Options{}, zerolog.Nop()), a: a, b: b}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewBuildsDocument(t *testing.T) {
	h := newHarness(t, nil)

	doc := h.s.Document()
	require.NotNil(t, doc)
	assert.True(t, doc.Scratch())
	assert.Same(t, doc, h.ed.Document())
	assert.Equal(t, "foo\nbar\nbaz", doc.Text().String())
	assert.Equal(t, 3, h.s.Lines().Len())
	assert.Equal(t, Browsing, h.s.State())
}

func TestNewEmptySnapshot(t *testing.T) {
	ws := workspace.New(zerolog.Nop())
	ed := editor.New(ws, editor.Options{}, zerolog.Nop())

	s := New(ed, nil, Options{Language: "go"}, zerolog.Nop())
	assert.Empty(t, s.Document().Text().String())
	assert.Equal(t, "go", s.Document().Language())
}

func TestEditAndApply(t *testing.T) {
	h := newHarness(t, nil)

	press(h.s, h.ed, "i", "x", "esc")
	assert.Equal(t, "xfoo\nbar\nbaz", h.s.Document().Text().String())
	assert.Equal(t, keymap.ModeNormal, h.ed.Mode())

	out := press(h.s, h.ed, ":")
	assert.True(t, out.Consumed)
	assert.Equal(t, ConfirmPending, h.s.State())
	assert.Equal(t, StatusConfirm, h.ed.Status())

	out = press(h.s, h.ed, "y")
	assert.True(t, out.Consumed)
	assert.True(t, out.Close)
	assert.True(t, h.s.Closed())
	assert.Nil(t, h.ed.Document())
	assert.Equal(t, fmt.Sprintf(statusRefactored, 1, 1), h.ed.Status())

	res, applied := h.s.Result()
	assert.True(t, applied)
	assert.Equal(t, 1, res.Files)
	assert.Equal(t, 1, res.Lines)

	saved, failed := h.ed.Workspace().SaveModified()
	assert.Empty(t, failed)
	assert.Equal(t, []string{h.a}, saved)
	assert.Equal(t, "xfoo\nkeep\nbar\n", readFile(t, h.a))
	assert.Equal(t, "zero\nbaz\n", readFile(t, h.b))
}

func TestConfirmAcceptsUpperCase(t *testing.T) {
	h := newHarness(t, nil)

	press(h.s, h.ed, ":")
	out := press(h.s, h.ed, "Y")
	assert.True(t, out.Close)

	res, applied := h.s.Result()
	assert.True(t, applied)
	assert.Zero(t, res.Files, "nothing was edited")
}

func TestConfirmAborted(t *testing.T) {
	h := newHarness(t, nil)

	press(h.s, h.ed, ":")
	out := press(h.s, h.ed, "n")

	assert.True(t, out.Consumed)
	assert.False(t, out.Close)
	assert.Equal(t, StatusAborted, h.ed.Status())
	assert.Equal(t, Browsing, h.s.State())
	assert.False(t, h.s.Closed())

	_, applied := h.s.Result()
	assert.False(t, applied)

	out = press(h.s, h.ed, "j")
	assert.False(t, out.Consumed)
	assert.Equal(t, []string{"move_line_down"}, out.Commands)
}

func TestEscapeKeepsConfirmPending(t *testing.T) {
	h := newHarness(t, nil)

	press(h.s, h.ed, ":")
	out := h.s.HandleKey(h.ed, ev("esc"))

	assert.False(t, out.Consumed)
	assert.Equal(t, ConfirmPending, h.s.State())
	assert.Equal(t, StatusConfirm, h.ed.Status())
}

func TestStickyNode(t *testing.T) {
	h := newHarness(t, nil)

	out := h.s.HandleKey(h.ed, ev("g"))
	assert.True(t, out.Consumed)
	assert.Equal(t, Sticky, h.s.State())
	require.NotNil(t, h.ed.AutoInfo())
	assert.Equal(t, "Goto", h.ed.AutoInfo().Title)

	out = h.s.HandleKey(h.ed, ev("g"))
	assert.False(t, out.Consumed)
	assert.Equal(t, []string{"goto_file_start"}, out.Commands)
	assert.Equal(t, Browsing, h.s.State())
	assert.Nil(t, h.ed.AutoInfo())
}

func TestStickyFallsBackToTopLevel(t *testing.T) {
	h := newHarness(t, nil)

	h.s.HandleKey(h.ed, ev("g"))
	out := h.s.HandleKey(h.ed, ev("j"))

	assert.Equal(t, []string{"move_line_down"}, out.Commands)
	assert.Equal(t, Browsing, h.s.State())
}

func TestEscapeClearsSticky(t *testing.T) {
	h := newHarness(t, nil)

	h.s.HandleKey(h.ed, ev("space"))
	require.Equal(t, Sticky, h.s.State())

	out := h.s.HandleKey(h.ed, ev("esc"))
	assert.False(t, out.Consumed)
	assert.Empty(t, out.Commands)
	assert.Equal(t, Browsing, h.s.State())
}

func TestUnsupportedCommand(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want State
	}{
		{name: "goto node", keys: []string{"g", "d"}, want: Sticky},
		{name: "space node", keys: []string{"space", "f"}, want: Sticky},
		{name: "top level", keys: []string{"G"}, want: Browsing},
		{name: "top level after node", keys: []string{"g", "esc", "home"}, want: Browsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)

			last := len(tt.keys) - 1
			press(h.s, h.ed, tt.keys[:last]...)
			before := h.s.State()
			out := h.s.HandleKey(h.ed, ev(tt.keys[last]))

			assert.True(t, out.Consumed)
			assert.Empty(t, out.Commands)
			assert.Equal(t, StatusUnsupported, h.ed.Status())
			assert.Equal(t, before, h.s.State())
			assert.Equal(t, tt.want, h.s.State())
			assert.False(t, h.s.Closed())
		})
	}
}

func TestWindowClose(t *testing.T) {
	h := newHarness(t, nil)

	press(h.s, h.ed, "i", "x", "esc")
	out := press(h.s, h.ed, "ctrl+w", "q")

	assert.True(t, out.Consumed)
	assert.True(t, out.Close)
	assert.True(t, h.s.Closed())

	_, applied := h.s.Result()
	assert.False(t, applied, "closing without confirmation discards edits")
	assert.Equal(t, "foo\nkeep\nbar\n", readFile(t, h.a))

	assert.Equal(t, Outcome{}, h.s.HandleKey(h.ed, ev("j")), "closed sessions ignore input")
}

func TestInsertModeKeys(t *testing.T) {
	h := newHarness(t, nil)

	press(h.s, h.ed, "A")
	require.Equal(t, keymap.ModeInsert, h.ed.Mode())

	out := h.s.HandleKey(h.ed, ev("ctrl+w"))
	assert.Equal(t, []string{"delete_word_backward"}, out.Commands, "insert mode has its own ctrl+w")

	out = h.s.HandleKey(h.ed, ev("z"))
	assert.False(t, out.Consumed)
	assert.Empty(t, out.Commands, "unbound keys are left to the host")
}

func TestSequenceBinding(t *testing.T) {
	km := keymap.Default().Merge(map[keymap.Mode]*keymap.Node{
		keymap.ModeNormal: keymap.NewNode("").
			Bind("Z", &keymap.Sequence{Commands: []string{"goto_file_end", "insert_at_line_end"}}),
	})
	h := newHarness(t, km)

	h.s.HandleKey(h.ed, ev("g"))
	out := h.s.HandleKey(h.ed, ev("Z"))
	assert.False(t, out.Consumed)
	assert.Equal(t, []string{"goto_file_end", "insert_at_line_end"}, out.Commands)
	assert.Equal(t, Sticky, h.s.State(), "sequences leave the pending node alone")

	h.ed.Dispatch(ev("Z"), out.Commands)
	assert.Equal(t, keymap.ModeInsert, h.ed.Mode())
	assert.Equal(t, 2, h.ed.View().Row)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "browsing", Browsing.String())
	assert.Equal(t, "sticky", Sticky.String())
	assert.Equal(t, "confirm", ConfirmPending.String())
}
