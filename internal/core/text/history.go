package text

type revision struct {
	forward Transaction
	inverse Transaction
}

// History records applied transactions for undo and redo.
type History struct {
	undo []revision
	redo []revision
}

// Apply applies tx to b and records it. Recording a new revision discards
// the redo stack.
func (h *History) Apply(b *Buffer, tx Transaction) error {
	if tx.IsEmpty() {
		return nil
	}
	inv, err := tx.Apply(b)
	if err != nil {
		return err
	}
	h.undo = append(h.undo, revision{forward: tx, inverse: inv})
	h.redo = nil
	return nil
}

// Undo reverts the most recent revision. It returns the transaction that was
// applied to b and false when there was nothing to undo.
func (h *History) Undo(b *Buffer) (Transaction, bool) {
	if len(h.undo) == 0 {
		return Transaction{}, false
	}
	rev := h.undo[len(h.undo)-1]
	if _, err := rev.inverse.Apply(b); err != nil {
		return Transaction{}, false
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, rev)
	return rev.inverse, true
}

// Redo reapplies the most recently undone revision.
func (h *History) Redo(b *Buffer) (Transaction, bool) {
	if len(h.redo) == 0 {
		return Transaction{}, false
	}
	rev := h.redo[len(h.redo)-1]
	if _, err := rev.forward.Apply(b); err != nil {
		return Transaction{}, false
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, rev)
	return rev.forward, true
}

// CanUndo reports whether an undo is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of revisions that can be undone.
func (h *History) Len() int { return len(h.undo) }
