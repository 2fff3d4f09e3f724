// Package refactor turns edits made in an aggregate match buffer back into
// per-file transactions.
//
// Reconciliation is positional: the row of each match is compared with the
// text captured when the session started, and a changed row replaces the
// same number of characters at the start of the original line. The real file
// is not re-checked against the snapshot before the replacement.
package refactor

import (
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/colonyops/refract/internal/core/match"
	"github.com/colonyops/refract/internal/core/text"
	"github.com/colonyops/refract/internal/core/workspace"
)

// Opener opens the document backing a file path.
type Opener interface {
	Open(path string) (*workspace.Document, error)
}

// Result counts what a reconciliation touched.
type Result struct {
	Files int
	Lines int
}

type pendingEdit struct {
	line      int
	deleteLen int
	text      string
}

// Reconcile compares buf with the snapshot and applies one transaction per
// file whose rows changed. Files counts every such file that opened; Lines
// counts only the rows that were applied. A file that cannot be opened or
// whose changes do not fit is skipped; the other files are still processed.
func Reconcile(buf *text.Buffer, snap match.Snapshot, lines match.LineMap, opener Opener, logger zerolog.Logger) Result {
	var res Result
	seen := make(map[match.Location]struct{}, snap.Count())

	for _, fm := range snap {
		pending := pendingEdits(buf, fm, lines, seen)
		if len(pending) == 0 {
			continue
		}

		doc, err := opener.Open(fm.Path)
		if err != nil {
			logger.Warn().Err(err).Str("path", fm.Path).Msg("skipping file")
			continue
		}

		n, err := applyFile(doc, pending, logger)
		if err != nil {
			logger.Warn().Err(err).Str("path", fm.Path).Msg("skipping file")
			continue
		}

		// An opened file counts even when all of its lines vanished.
		res.Files++
		res.Lines += n
		logger.Debug().Str("path", fm.Path).Int("lines", n).Msg("applied changes")
	}

	return res
}

func pendingEdits(buf *text.Buffer, fm match.FileMatches, lines match.LineMap, seen map[match.Location]struct{}) []pendingEdit {
	var pending []pendingEdit

	for _, m := range fm.Matches {
		loc := match.Location{Path: fm.Path, Line: m.Line}
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}

		row, ok := lines.Row(fm.Path, m.Line)
		if !ok {
			continue
		}

		current, _ := buf.Line(row)
		current = text.TrimTerminator(current)
		if current == m.Text {
			continue
		}

		pending = append(pending, pendingEdit{
			line:      m.Line,
			deleteLen: utf8.RuneCountInString(m.Text),
			text:      current,
		})
	}

	return pending
}

func applyFile(doc *workspace.Document, pending []pendingEdit, logger zerolog.Logger) (int, error) {
	buf := doc.Text()
	changes := make([]text.Change, 0, len(pending))

	for _, p := range pending {
		if p.line >= buf.LenLines() {
			logger.Debug().Str("path", doc.Path()).Int("line", p.line).Msg("line no longer exists")
			continue
		}
		start := buf.LineToChar(p.line)
		end := min(start+p.deleteLen, buf.Len())
		changes = append(changes, text.Change{From: start, To: end, Text: p.text})
	}

	if len(changes) == 0 {
		return 0, nil
	}

	tx, err := text.NewTransaction(changes...)
	if err != nil {
		return 0, fmt.Errorf("build transaction: %w", err)
	}
	if err := doc.Apply(tx); err != nil {
		return 0, fmt.Errorf("apply changes: %w", err)
	}

	return len(changes), nil
}
