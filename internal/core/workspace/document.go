package workspace

import (
	"github.com/colonyops/refract/internal/core/text"
)

// DocumentID identifies an open document within a workspace.
type DocumentID int

// Document is a text buffer with its undo history and, for file backed
// documents, the path it was loaded from.
type Document struct {
	id       DocumentID
	path     string
	language string
	buf      *text.Buffer
	history  text.History
	saved    string
}

// ID returns the document identifier.
func (d *Document) ID() DocumentID { return d.id }

// Path returns the file path, or "" for scratch documents.
func (d *Document) Path() string { return d.path }

// Language returns the language identifier used for highlighting.
func (d *Document) Language() string { return d.language }

// SetLanguage changes the language identifier.
func (d *Document) SetLanguage(lang string) { d.language = lang }

// Text returns the live buffer. Callers must mutate it only through Apply.
func (d *Document) Text() *text.Buffer { return d.buf }

// Apply applies tx as one undoable revision.
func (d *Document) Apply(tx text.Transaction) error {
	return d.history.Apply(d.buf, tx)
}

// Undo reverts the last revision and returns the transaction that was applied.
func (d *Document) Undo() (text.Transaction, bool) {
	return d.history.Undo(d.buf)
}

// Redo reapplies the last undone revision.
func (d *Document) Redo() (text.Transaction, bool) {
	return d.history.Redo(d.buf)
}

// Modified reports whether the text differs from what was loaded or last saved.
func (d *Document) Modified() bool {
	return d.buf.String() != d.saved
}

// Scratch reports whether the document has no backing file.
func (d *Document) Scratch() bool { return d.path == "" }
