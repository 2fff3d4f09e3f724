// Package workspace manages the set of open documents: scratch documents
// created from text, and file backed documents loaded and saved on demand.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/colonyops/refract/internal/core/text"
)

// ErrNotFound is returned when a document id is not open.
var ErrNotFound = errors.New("document not found")

// ErrInvalidUTF8 is returned when a file is not valid UTF-8. Such files are
// never loaded since saving them would rewrite every invalid byte.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

// SaveError records a document that could not be written.
type SaveError struct {
	Path string
	Err  error
}

func (e SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e SaveError) Unwrap() error { return e.Err }

// Workspace owns open documents. It is not safe for concurrent use.
type Workspace struct {
	docs   map[DocumentID]*Document
	byPath map[string]DocumentID
	nextID DocumentID
	logger zerolog.Logger
}

// New creates an empty workspace.
func New(logger zerolog.Logger) *Workspace {
	return &Workspace{
		docs:   make(map[DocumentID]*Document),
		byPath: make(map[string]DocumentID),
		nextID: 1,
		logger: logger,
	}
}

// Scratch creates a document without a backing file.
func (w *Workspace) Scratch(content, language string) *Document {
	return w.add("", content, language)
}

// Open returns the document for path, loading it from disk if it is not
// already open. Paths are resolved to absolute paths so two spellings of the
// same file share a document.
func (w *Workspace) Open(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	if id, ok := w.byPath[abs]; ok {
		return w.docs[id], nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("open %s: %w", path, ErrInvalidUTF8)
	}

	doc := w.add(abs, string(data), "")
	w.byPath[abs] = doc.id
	w.logger.Debug().Str("path", abs).Int("lines", doc.buf.LenLines()).Msg("document opened")
	return doc, nil
}

func (w *Workspace) add(path, content, language string) *Document {
	doc := &Document{
		id:       w.nextID,
		path:     path,
		language: language,
		buf:      text.NewBuffer(content),
		saved:    content,
	}
	w.docs[doc.id] = doc
	w.nextID++
	return doc
}

// Get returns an open document.
func (w *Workspace) Get(id DocumentID) (*Document, bool) {
	doc, ok := w.docs[id]
	return doc, ok
}

// Close discards a document without saving it.
func (w *Workspace) Close(id DocumentID) error {
	doc, ok := w.docs[id]
	if !ok {
		return fmt.Errorf("close %d: %w", id, ErrNotFound)
	}
	delete(w.docs, id)
	if doc.path != "" {
		delete(w.byPath, doc.path)
	}
	return nil
}

// Documents returns the open documents ordered by id.
func (w *Workspace) Documents() []*Document {
	docs := make([]*Document, 0, len(w.docs))
	for _, d := range w.docs {
		docs = append(docs, d)
	}
	slices.SortFunc(docs, func(a, b *Document) int { return int(a.id) - int(b.id) })
	return docs
}

// Save writes a file backed document to disk, keeping the file mode.
func (w *Workspace) Save(doc *Document) error {
	if doc.Scratch() {
		return fmt.Errorf("save document %d: no path", doc.id)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(doc.path); err == nil {
		mode = info.Mode().Perm()
	}

	content := doc.buf.String()
	if err := os.WriteFile(doc.path, []byte(content), mode); err != nil {
		return err
	}
	doc.saved = content
	w.logger.Debug().Str("path", doc.path).Msg("document saved")
	return nil
}

// SaveModified writes every modified file backed document. A failure on one
// document does not stop the others; it returns the paths written and any
// failures.
func (w *Workspace) SaveModified() ([]string, []SaveError) {
	var (
		saved  []string
		failed []SaveError
	)
	for _, doc := range w.Documents() {
		if doc.Scratch() || !doc.Modified() {
			continue
		}
		if err := w.Save(doc); err != nil {
			failed = append(failed, SaveError{Path: doc.path, Err: err})
			continue
		}
		saved = append(saved, doc.path)
	}
	return saved, failed
}
