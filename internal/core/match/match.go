// Package match turns per-file line matches into a single synthetic text and
// the line map that ties every row of that text back to its origin.
package match

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Match is one captured line of a file. Line is 0-based.
type Match struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// FileMatches holds the matches of one file in presentation order.
type FileMatches struct {
	Path    string  `json:"path"`
	Matches []Match `json:"matches"`
}

// Snapshot is the ordered match set captured when a session starts. It is
// the baseline edits are detected against and must not be mutated after the
// session is created.
type Snapshot []FileMatches

// Count returns the total number of matches.
func (s Snapshot) Count() int {
	n := 0
	for _, fm := range s {
		n += len(fm.Matches)
	}
	return n
}

// Paths returns the file paths in snapshot order.
func (s Snapshot) Paths() []string {
	paths := make([]string, 0, len(s))
	for _, fm := range s {
		paths = append(paths, fm.Path)
	}
	return paths
}

// Validate checks that every match can occupy exactly one row: lines are
// non-negative, texts are valid UTF-8 and hold no "\n" or "\r".
func (s Snapshot) Validate() error {
	for _, fm := range s {
		if fm.Path == "" {
			return fmt.Errorf("match set entry without path")
		}
		for _, m := range fm.Matches {
			if m.Line < 0 {
				return fmt.Errorf("%s: negative line %d", fm.Path, m.Line)
			}
			if !utf8.ValidString(m.Text) {
				return fmt.Errorf("%s:%d: text is not valid UTF-8", fm.Path, m.Line+1)
			}
			if strings.ContainsAny(m.Text, "\r\n") {
				return fmt.Errorf("%s:%d: text contains a line terminator", fm.Path, m.Line+1)
			}
		}
	}
	return nil
}

// Location identifies a line of a source file.
type Location struct {
	Path string
	Line int
}

// Label formats the location for display with a 1-based line number.
func (l Location) Label() string {
	return l.Path + ":" + strconv.Itoa(l.Line+1)
}

// LineMap maps source locations to rows of the synthetic text and back.
type LineMap struct {
	rows    map[Location]int
	origins []Location
}

// Row returns the synthetic row assigned to a location.
func (m LineMap) Row(path string, line int) (int, bool) {
	row, ok := m.rows[Location{Path: path, Line: line}]
	return row, ok
}

// Origin returns the location a synthetic row was built from.
func (m LineMap) Origin(row int) (Location, bool) {
	if row < 0 || row >= len(m.origins) {
		return Location{}, false
	}
	return m.origins[row], true
}

// Len returns the number of mapped rows.
func (m LineMap) Len() int {
	return len(m.origins)
}

// Aggregate is the synthetic text built from a snapshot together with its
// line map.
type Aggregate struct {
	Text  string
	Lines LineMap
}

// Build concatenates every match text of snap, one per row in snapshot
// order, and assigns rows with a strictly increasing counter. A repeated
// (path, line) pair keeps its first occurrence so that every location owns
// exactly one row.
func Build(snap Snapshot) Aggregate {
	var sb strings.Builder
	lm := LineMap{
		rows:    make(map[Location]int, snap.Count()),
		origins: make([]Location, 0, snap.Count()),
	}

	for _, fm := range snap {
		for _, m := range fm.Matches {
			loc := Location{Path: fm.Path, Line: m.Line}
			if _, dup := lm.rows[loc]; dup {
				continue
			}
			sb.WriteString(m.Text)
			sb.WriteByte('\n')
			lm.rows[loc] = len(lm.origins)
			lm.origins = append(lm.origins, loc)
		}
	}

	return Aggregate{
		Text:  strings.TrimSuffix(sb.String(), "\n"),
		Lines: lm,
	}
}
