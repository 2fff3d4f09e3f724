package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() Snapshot {
	return Snapshot{
		{Path: "a.txt", Matches: []Match{{Line: 0, Text: "foo"}, {Line: 2, Text: "bar"}}},
		{Path: "b.txt", Matches: []Match{{Line: 1, Text: "baz"}}},
	}
}

func TestBuildScenario(t *testing.T) {
	agg := Build(scenario())

	assert.Equal(t, "foo\nbar\nbaz", agg.Text)
	assert.Equal(t, 3, agg.Lines.Len())

	want := map[Location]int{
		{Path: "a.txt", Line: 0}: 0,
		{Path: "a.txt", Line: 2}: 1,
		{Path: "b.txt", Line: 1}: 2,
	}
	for loc, row := range want {
		got, ok := agg.Lines.Row(loc.Path, loc.Line)
		require.True(t, ok, loc)
		assert.Equal(t, row, got, loc)

		origin, ok := agg.Lines.Origin(row)
		require.True(t, ok)
		assert.Equal(t, loc, origin)
	}
}

func TestBuildEmpty(t *testing.T) {
	agg := Build(nil)

	assert.Empty(t, agg.Text)
	assert.Equal(t, 0, agg.Lines.Len())
	_, ok := agg.Lines.Row("a.txt", 0)
	assert.False(t, ok)
	_, ok = agg.Lines.Origin(0)
	assert.False(t, ok)
}

func TestBuildIsBijection(t *testing.T) {
	snap := Snapshot{
		{Path: "x.go", Matches: []Match{{Line: 9, Text: "nine"}, {Line: 3, Text: "three"}, {Line: 4, Text: ""}}},
		{Path: "y.go", Matches: []Match{{Line: 0, Text: "zero"}}},
		{Path: "z.go"},
		{Path: "w.go", Matches: []Match{{Line: 9, Text: "nine again"}}},
	}
	agg := Build(snap)
	total := snap.Count()

	seen := make(map[int]bool)
	for _, fm := range snap {
		for _, m := range fm.Matches {
			row, ok := agg.Lines.Row(fm.Path, m.Line)
			require.True(t, ok)
			assert.False(t, seen[row], "row %d assigned twice", row)
			seen[row] = true
			assert.GreaterOrEqual(t, row, 0)
			assert.Less(t, row, total)
		}
	}
	assert.Len(t, seen, total)
}

func TestBuildRowsReadBack(t *testing.T) {
	snap := scenario()
	agg := Build(snap)
	rows := strings.Split(agg.Text, "\n")

	for _, fm := range snap {
		for _, m := range fm.Matches {
			row, ok := agg.Lines.Row(fm.Path, m.Line)
			require.True(t, ok)
			assert.Equal(t, m.Text, rows[row])
		}
	}
}

func TestBuildKeepsFirstDuplicate(t *testing.T) {
	snap := Snapshot{
		{Path: "a.txt", Matches: []Match{{Line: 1, Text: "first"}, {Line: 1, Text: "second"}, {Line: 2, Text: "third"}}},
	}
	agg := Build(snap)

	assert.Equal(t, "first\nthird", agg.Text)
	row, ok := agg.Lines.Row("a.txt", 1)
	require.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 2, agg.Lines.Len())
}

func TestLocationLabel(t *testing.T) {
	assert.Equal(t, "src/main.go:1", Location{Path: "src/main.go", Line: 0}.Label())
	assert.Equal(t, "a.txt:43", Location{Path: "a.txt", Line: 42}.Label())
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		snap    Snapshot
		wantErr string
	}{
		{name: "valid", snap: scenario()},
		{name: "empty", snap: nil},
		{name: "missing path", snap: Snapshot{{Matches: []Match{{Line: 0}}}}, wantErr: "without path"},
		{name: "negative line", snap: Snapshot{{Path: "a", Matches: []Match{{Line: -1}}}}, wantErr: "negative line"},
		{name: "terminator", snap: Snapshot{{Path: "a", Matches: []Match{{Line: 0, Text: "x\ny"}}}}, wantErr: "line terminator"},
		{name: "carriage return", snap: Snapshot{{Path: "a", Matches: []Match{{Line: 0, Text: "x\r"}}}}, wantErr: "line terminator"},
		{name: "invalid utf8", snap: Snapshot{{Path: "a", Matches: []Match{{Line: 0, Text: "caf\xe9"}}}}, wantErr: "not valid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSnapshotCountAndPaths(t *testing.T) {
	snap := scenario()
	assert.Equal(t, 3, snap.Count())
	assert.Equal(t, []string{"a.txt", "b.txt"}, snap.Paths())
}
