package refactor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/refract/internal/core/match"
	"github.com/colonyops/refract/internal/core/text"
	"github.com/colonyops/refract/internal/core/workspace"
)

type fixture struct {
	ws   *workspace.Workspace
	snap match.Snapshot
	agg  match.Aggregate
	buf  *text.Buffer
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "foo\nkeep\nbar\n")
	b := writeFile(t, dir, "b.txt", "zero\nbaz\n")

	snap := match.Snapshot{
		{Path: a, Matches: []match.Match{{Line: 0, Text: "foo"}, {Line: 2, Text: "bar"}}},
		{Path: b, Matches: []match.Match{{Line: 1, Text: "baz"}}},
	}
	agg := match.Build(snap)

	return &fixture{
		ws:   workspace.New(zerolog.Nop()),
		snap: snap,
		agg:  agg,
		buf:  text.NewBuffer(agg.Text),
	}
}

func (f *fixture) editRow(t *testing.T, row int, replacement string) {
	t.Helper()
	line, ok := f.buf.Line(row)
	require.True(t, ok)
	start := f.buf.LineToChar(row)
	end := start + len([]rune(text.TrimTerminator(line)))
	tx, err := text.NewTransaction(text.Change{From: start, To: end, Text: replacement})
	require.NoError(t, err)
	_, err = tx.Apply(f.buf)
	require.NoError(t, err)
}

func (f *fixture) reconcile(opener Opener) Result {
	return Reconcile(f.buf, f.snap, f.agg.Lines, opener, zerolog.Nop())
}

func docText(t *testing.T, ws *workspace.Workspace, path string) string {
	t.Helper()
	doc, err := ws.Open(path)
	require.NoError(t, err)
	return doc.Text().String()
}

func TestReconcileWithoutEdits(t *testing.T) {
	f := newFixture(t)

	res := f.reconcile(f.ws)

	assert.Equal(t, Result{}, res)
	assert.Empty(t, f.ws.Documents(), "no file is opened when nothing changed")
}

func TestReconcileScenario(t *testing.T) {
	f := newFixture(t)
	f.editRow(t, 1, "qux")

	res := f.reconcile(f.ws)

	assert.Equal(t, Result{Files: 1, Lines: 1}, res)
	assert.Equal(t, "foo\nkeep\nqux\n", docText(t, f.ws, f.snap[0].Path))
	require.Len(t, f.ws.Documents(), 1, "b.txt is never opened")

	onDisk, err := os.ReadFile(f.snap[1].Path)
	require.NoError(t, err)
	assert.Equal(t, "zero\nbaz\n", string(onDisk))
}

func TestReconcileSeveralFiles(t *testing.T) {
	f := newFixture(t)
	f.editRow(t, 0, "FOO")
	f.editRow(t, 1, "BAR")
	f.editRow(t, 2, "")

	res := f.reconcile(f.ws)

	assert.Equal(t, Result{Files: 2, Lines: 3}, res)
	assert.Equal(t, "FOO\nkeep\nBAR\n", docText(t, f.ws, f.snap[0].Path))
	assert.Equal(t, "zero\n\n", docText(t, f.ws, f.snap[1].Path))
}

func TestReconcileDifferentLength(t *testing.T) {
	f := newFixture(t)
	f.editRow(t, 0, "a much longer line")

	res := f.reconcile(f.ws)

	assert.Equal(t, Result{Files: 1, Lines: 1}, res)
	assert.Equal(t, "a much longer line\nkeep\nbar\n", docText(t, f.ws, f.snap[0].Path))
}

func TestReconcileMultibyte(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "u.txt", "héllo wörld\nnext\n")
	snap := match.Snapshot{{Path: p, Matches: []match.Match{{Line: 0, Text: "héllo wörld"}}}}
	agg := match.Build(snap)
	buf := text.NewBuffer("héllo wörld!")
	ws := workspace.New(zerolog.Nop())

	res := Reconcile(buf, snap, agg.Lines, ws, zerolog.Nop())

	assert.Equal(t, Result{Files: 1, Lines: 1}, res)
	assert.Equal(t, "héllo wörld!\nnext\n", docText(t, ws, p))
}

func TestReconcileRemovedRowsBecomeEmpty(t *testing.T) {
	f := newFixture(t)
	// Drop the last row entirely: "foo\nbar\nbaz" -> "foo\nbar".
	tx, err := text.NewTransaction(text.Change{From: 7, To: 11})
	require.NoError(t, err)
	_, err = tx.Apply(f.buf)
	require.NoError(t, err)
	require.Equal(t, "foo\nbar", f.buf.String())

	res := f.reconcile(f.ws)

	assert.Equal(t, Result{Files: 1, Lines: 1}, res)
	assert.Equal(t, "zero\n\n", docText(t, f.ws, f.snap[1].Path))
}

func TestReconcileDropsVanishedLines(t *testing.T) {
	f := newFixture(t)
	f.editRow(t, 2, "changed")
	// b.txt shrank to a single line after the snapshot was taken.
	require.NoError(t, os.WriteFile(f.snap[1].Path, []byte("zero"), 0o644))

	res := f.reconcile(f.ws)

	assert.Equal(t, Result{Files: 1, Lines: 0}, res)
	assert.Equal(t, "zero", docText(t, f.ws, f.snap[1].Path))

	doc, err := f.ws.Open(f.snap[1].Path)
	require.NoError(t, err)
	assert.False(t, doc.Modified())
}

func TestReconcileDropsOnlyVanishedLines(t *testing.T) {
	f := newFixture(t)
	f.editRow(t, 0, "first")
	f.editRow(t, 1, "third")
	require.NoError(t, os.WriteFile(f.snap[0].Path, []byte("foo\nkeep"), 0o644))

	res := f.reconcile(f.ws)

	assert.Equal(t, Result{Files: 1, Lines: 1}, res)
	assert.Equal(t, "first\nkeep", docText(t, f.ws, f.snap[0].Path))
}

func TestReconcileSkipsFileNoLongerUTF8(t *testing.T) {
	f := newFixture(t)
	f.editRow(t, 2, "changed")
	raw := []byte("zero\nb\xe4z\n")
	require.NoError(t, os.WriteFile(f.snap[1].Path, raw, 0o644))

	res := f.reconcile(f.ws)
	assert.Equal(t, Result{}, res)

	saved, failed := f.ws.SaveModified()
	assert.Empty(t, saved)
	assert.Empty(t, failed)

	got, err := os.ReadFile(f.snap[1].Path)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

type failingOpener struct {
	fail string
	ws   *workspace.Workspace
}

func (o failingOpener) Open(path string) (*workspace.Document, error) {
	if path == o.fail {
		return nil, errors.New("permission denied")
	}
	return o.ws.Open(path)
}

func TestReconcileSkipsUnopenableFile(t *testing.T) {
	f := newFixture(t)
	f.editRow(t, 0, "FOO")
	f.editRow(t, 2, "BAZ")

	res := f.reconcile(failingOpener{fail: f.snap[0].Path, ws: f.ws})

	assert.Equal(t, Result{Files: 1, Lines: 1}, res)
	assert.Equal(t, "zero\nBAZ\n", docText(t, f.ws, f.snap[1].Path))
}

func TestReconcileMissingFile(t *testing.T) {
	f := newFixture(t)
	f.editRow(t, 0, "FOO")
	f.editRow(t, 2, "BAZ")
	require.NoError(t, os.Remove(f.snap[0].Path))

	res := f.reconcile(f.ws)

	assert.Equal(t, Result{Files: 1, Lines: 1}, res)
}

func TestReconcileIsUndoable(t *testing.T) {
	f := newFixture(t)
	f.editRow(t, 0, "FOO")
	f.editRow(t, 1, "BAR")

	f.reconcile(f.ws)

	doc, err := f.ws.Open(f.snap[0].Path)
	require.NoError(t, err)
	require.True(t, doc.Modified())

	_, ok := doc.Undo()
	require.True(t, ok, "both lines are one revision")
	assert.Equal(t, "foo\nkeep\nbar\n", doc.Text().String())
	assert.False(t, doc.Modified())
}

func TestReconcileClampsRangeToDocument(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "short.txt", "ab")
	snap := match.Snapshot{{Path: p, Matches: []match.Match{{Line: 0, Text: "abcdef"}}}}
	agg := match.Build(snap)
	buf := text.NewBuffer("xyz")
	ws := workspace.New(zerolog.Nop())

	res := Reconcile(buf, snap, agg.Lines, ws, zerolog.Nop())

	assert.Equal(t, Result{Files: 1, Lines: 1}, res)
	assert.Equal(t, "xyz", docText(t, ws, p))
}

func TestIsUnsupported(t *testing.T) {
	for _, name := range []string{"global_search", "file_picker", "goto_definition", "hsplit", "dap_launch", "shell_pipe", "record_macro", "suspend", "command_palette"} {
		assert.True(t, IsUnsupported(name), name)
	}
	for _, name := range []string{"move_line_down", "undo", "insert_mode", "command_mode", "wclose", "normal_mode"} {
		assert.False(t, IsUnsupported(name), name)
	}
}
