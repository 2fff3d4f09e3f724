package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/refract/internal/core/git"
	"github.com/colonyops/refract/internal/core/match"
	"github.com/colonyops/refract/pkg/executil"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func relPaths(t *testing.T, dir string, snap match.Snapshot) []string {
	t.Helper()
	paths := make([]string, 0, len(snap))
	for _, p := range snap.Paths() {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths
}

func TestSearchWalk(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.txt":          "zero\nfoo two\n",
		"a.txt":          "foo\nbar\nfood\n",
		"sub/c.go":       "package sub // foo\n",
		"none.txt":       "nothing here\n",
		".hidden/x.txt":  "foo\n",
		".git/config":    "foo\n",
		"bin/data.bin":   "foo\x00bar",
		"crlf/win.txt":   "foo\r\nbar\r\n",
		"sub/.dotfile":   "foo\n",
		"sub/deep/d.txt": "nope\n",
	})

	s := New(nil, zerolog.Nop())
	snap, err := s.Search(context.Background(), Options{Pattern: "foo", Paths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.txt", "crlf/win.txt", "sub/c.go"}, relPaths(t, dir, snap))
	assert.Equal(t, []match.Match{{Line: 0, Text: "foo"}, {Line: 2, Text: "food"}}, snap[0].Matches)
	assert.Equal(t, []match.Match{{Line: 1, Text: "foo two"}}, snap[1].Matches)
	assert.Equal(t, []match.Match{{Line: 0, Text: "foo"}}, snap[2].Matches, "carriage returns stay in the file")
	require.NoError(t, snap.Validate())
}

func TestSearchSkipsInvalidUTF8(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"latin1.txt": "caf\xe9 foo\nother\n",
		"utf8.txt":   "caf\u00e9 foo\n",
	})

	s := New(nil, zerolog.Nop())
	snap, err := s.Search(context.Background(), Options{Pattern: "foo", Paths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, []string{"utf8.txt"}, relPaths(t, dir, snap))
	require.NoError(t, snap.Validate())
}

func TestSearchHidden(t *testing.T) {
	dir := writeTree(t, map[string]string{
		".hidden/x.txt": "foo\n",
		".git/HEAD":     "foo\n",
	})

	s := New(nil, zerolog.Nop())
	snap, err := s.Search(context.Background(), Options{Pattern: "foo", Paths: []string{dir}, Hidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden/x.txt"}, relPaths(t, dir, snap))
}

func TestSearchIgnoreCase(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "Foo\nfoo\nFOO\nbar\n"})
	s := New(nil, zerolog.Nop())

	snap, err := s.Search(context.Background(), Options{Pattern: "foo", Paths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Count())

	snap, err = s.Search(context.Background(), Options{Pattern: "foo", Paths: []string{dir}, IgnoreCase: true})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Count())
}

func TestSearchGlobs(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.go":             "foo\n",
		"pkg/util.go":         "foo\n",
		"pkg/util_test.go":    "foo\n",
		"docs/readme.md":      "foo\n",
		"vendor/lib/x/lib.go": "foo\n",
	})
	s := New(nil, zerolog.Nop())

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{name: "no filters", want: []string{"docs/readme.md", "main.go", "pkg/util.go", "pkg/util_test.go", "vendor/lib/x/lib.go"}},
		{name: "base name include", include: []string{"*.go"}, want: []string{"main.go", "pkg/util.go", "pkg/util_test.go", "vendor/lib/x/lib.go"}},
		{name: "path include", include: []string{"pkg/**"}, want: []string{"pkg/util.go", "pkg/util_test.go"}},
		{name: "exclude", include: []string{"**/*.go"}, exclude: []string{"vendor/**", "*_test.go"}, want: []string{"main.go", "pkg/util.go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := s.Search(context.Background(), Options{
				Pattern: "foo",
				Paths:   []string{dir},
				Include: tt.include,
				Exclude: tt.exclude,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, dir, snap))
		})
	}
}

func TestSearchExplicitFileAndDuplicates(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "foo\n", "b.txt": "foo\n"})
	s := New(nil, zerolog.Nop())

	snap, err := s.Search(context.Background(), Options{
		Pattern: "foo",
		Paths:   []string{filepath.Join(dir, "a.txt"), dir},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, relPaths(t, dir, snap))
}

func TestSearchMaxFileSize(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"small.txt": "foo\n",
		"large.txt": "foo\n" + strings.Repeat("x", 100),
	})
	s := New(nil, zerolog.Nop())

	snap, err := s.Search(context.Background(), Options{Pattern: "foo", Paths: []string{dir}, MaxFileSize: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{"small.txt"}, relPaths(t, dir, snap))
}

func TestSearchUsesGitListing(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"tracked.go":    "foo\n",
		"ignored.go":    "foo\n",
		".github/x.yml": "foo\n",
	})
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{
			"git rev-parse": []byte(dir + "\n"),
			"git ls-files":  []byte("tracked.go\x00.github/x.yml\x00"),
		},
	}
	s := New(git.NewExecutor("git", rec), zerolog.Nop())

	snap, err := s.Search(context.Background(), Options{Pattern: "foo", Paths: []string{dir}, UseGit: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"tracked.go"}, relPaths(t, dir, snap))

	require.Len(t, rec.Commands, 2)
	assert.Equal(t, dir, rec.Commands[1].Dir)
}

func TestSearchFallsBackWithoutRepo(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.go": "foo\n"})
	rec := &executil.RecordingExecutor{
		Errors: map[string]error{"git": errors.New("not a git repository")},
	}
	s := New(git.NewExecutor("git", rec), zerolog.Nop())

	snap, err := s.Search(context.Background(), Options{Pattern: "foo", Paths: []string{dir}, UseGit: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, relPaths(t, dir, snap))
}

func TestSearchErrors(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "foo\n"})
	s := New(nil, zerolog.Nop())
	ctx := context.Background()

	_, err := s.Search(ctx, Options{Paths: []string{dir}})
	require.ErrorIs(t, err, ErrEmptyPattern)

	_, err = s.Search(ctx, Options{Pattern: "(", Paths: []string{dir}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile pattern")

	_, err = s.Search(ctx, Options{Pattern: "foo", Paths: []string{dir}, Include: []string{"[a-"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob")

	_, err = s.Search(ctx, Options{Pattern: "foo", Paths: []string{filepath.Join(dir, "missing")}})
	require.Error(t, err)
}

func TestSearchCancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "foo\n"})
	s := New(nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, Options{Pattern: "foo", Paths: []string{dir}})
	require.ErrorIs(t, err, context.Canceled)
}
