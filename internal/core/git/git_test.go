package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/refract/pkg/executil"
)

func TestParseNullList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "a.go\x00", want: []string{"a.go"}},
		{name: "several", in: "a.go\x00dir/b.go\x00c d.txt\x00", want: []string{"a.go", "dir/b.go", "c d.txt"}},
		{name: "duplicates", in: "a.go\x00a.go\x00b.go", want: []string{"a.go", "b.go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseNullList([]byte(tt.in)))
		})
	}
}

func TestExecutorLsFiles(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"git ls-files": []byte("main.go\x00pkg/util.go\x00")},
	}
	g := NewExecutor("git", rec)

	files, err := g.LsFiles(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "pkg/util.go"}, files)

	require.Len(t, rec.Commands, 1)
	assert.Equal(t, "/repo", rec.Commands[0].Dir)
	assert.Equal(t, "git", rec.Commands[0].Cmd)
	assert.Equal(t, []string{"ls-files", "-z", "--cached", "--others", "--exclude-standard"}, rec.Commands[0].Args)
}

func TestExecutorRoot(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"git rev-parse": []byte("/repo\n")},
	}
	g := NewExecutor("/usr/bin/git", rec)

	root, err := g.Root(context.Background(), "/repo/sub")
	require.NoError(t, err)
	assert.Equal(t, "/repo", root)
	assert.Equal(t, "/usr/bin/git", rec.Commands[0].Cmd)
}

func TestExecutorErrors(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Errors: map[string]error{"git": errors.New("not a git repository")},
	}
	g := NewExecutor("git", rec)

	_, err := g.Root(context.Background(), "/tmp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git rev-parse")

	_, err = g.LsFiles(context.Background(), "/tmp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}
