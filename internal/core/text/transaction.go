package text

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrOverlap is returned when two changes of a transaction overlap.
	ErrOverlap = errors.New("overlapping changes")
	// ErrOutOfRange is returned when a change does not fit the buffer.
	ErrOutOfRange = errors.New("change out of range")
)

// Change replaces the characters in [From, To) with Text.
type Change struct {
	From int
	To   int
	Text string
}

// Transaction is an ordered set of non-overlapping changes applied to a
// buffer as one unit. Offsets of every change refer to the buffer before the
// transaction is applied.
type Transaction struct {
	changes []Change
}

// NewTransaction sorts changes by start offset and checks that none of them
// overlap.
func NewTransaction(changes ...Change) (Transaction, error) {
	sorted := slices.Clone(changes)
	slices.SortStableFunc(sorted, func(a, b Change) int { return a.From - b.From })

	prevEnd := 0
	for i, c := range sorted {
		if c.From < 0 || c.To < c.From {
			return Transaction{}, fmt.Errorf("change %d [%d,%d): %w", i, c.From, c.To, ErrOutOfRange)
		}
		if i > 0 && c.From < prevEnd {
			return Transaction{}, fmt.Errorf("change %d [%d,%d): %w", i, c.From, c.To, ErrOverlap)
		}
		prevEnd = c.To
	}

	return Transaction{changes: sorted}, nil
}

// Insert builds a single-change transaction inserting s at pos.
func Insert(pos int, s string) Transaction {
	return Transaction{changes: []Change{{From: pos, To: pos, Text: s}}}
}

// Delete builds a single-change transaction removing [from, to).
func Delete(from, to int) Transaction {
	return Transaction{changes: []Change{{From: from, To: to}}}
}

// Changes returns a copy of the changes in application order.
func (t Transaction) Changes() []Change {
	return slices.Clone(t.changes)
}

// IsEmpty reports whether the transaction carries no change.
func (t Transaction) IsEmpty() bool {
	return len(t.changes) == 0
}

// Apply applies every change to b, or none of them when any change does not
// fit. It returns the inverse transaction, which restores the previous text
// when applied to the result.
func (t Transaction) Apply(b *Buffer) (Transaction, error) {
	for i, c := range t.changes {
		if c.To > len(b.runes) {
			return Transaction{}, fmt.Errorf("change %d [%d,%d) on %d chars: %w", i, c.From, c.To, len(b.runes), ErrOutOfRange)
		}
	}

	out := make([]rune, 0, len(b.runes))
	inverse := make([]Change, 0, len(t.changes))
	last, delta := 0, 0

	for _, c := range t.changes {
		out = append(out, b.runes[last:c.From]...)
		inserted := []rune(c.Text)
		out = append(out, inserted...)

		from := c.From + delta
		inverse = append(inverse, Change{
			From: from,
			To:   from + len(inserted),
			Text: string(b.runes[c.From:c.To]),
		})

		delta += len(inserted) - (c.To - c.From)
		last = c.To
	}
	out = append(out, b.runes[last:]...)

	b.runes = out
	b.reindex()

	return Transaction{changes: inverse}, nil
}

// MapPos maps a position in the buffer before the transaction to the
// corresponding position after it. Positions inside a replaced range move to
// the end of the replacement.
func (t Transaction) MapPos(pos int) int {
	delta := 0
	for _, c := range t.changes {
		if pos < c.From {
			break
		}
		n := len([]rune(c.Text))
		if pos < c.To {
			return c.From + delta + n
		}
		delta += n - (c.To - c.From)
	}
	return pos + delta
}
