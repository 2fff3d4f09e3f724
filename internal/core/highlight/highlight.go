// Package highlight turns text into styled spans with chroma lexers and
// styles.
package highlight

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultSyntaxTheme is the chroma style used when none is configured.
const DefaultSyntaxTheme = "monokai"

// ErrUnknownLanguage is returned for a language with no chroma lexer.
var ErrUnknownLanguage = errors.New("unknown language")

// Span is a run of text drawn with one style.
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Highlighter tokenizes a document and caches the result for the last text
// it saw.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	src   string
	lines [][]Span
	valid bool
}

// New returns a highlighter for language using the chroma style theme.
// Unknown themes fall back to chroma's default style.
func New(language, theme string) (*Highlighter, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	return &Highlighter{
		lexer: chroma.Coalesce(lexer),
		style: styles.Get(theme),
	}, nil
}

// Lines returns the spans of every line of src. The result has one entry per
// line of src and must not be modified.
func (h *Highlighter) Lines(src string) [][]Span {
	if h.valid && h.src == src {
		return h.lines
	}

	h.src = src
	h.lines = h.tokenize(src)
	h.valid = true
	return h.lines
}

func (h *Highlighter) tokenize(src string) [][]Span {
	want := strings.Count(src, "\n") + 1

	it, err := h.lexer.Tokenise(nil, src)
	if err != nil {
		return plain(src)
	}

	lines := make([][]Span, 1, want)
	for _, tok := range it.Tokens() {
		st := h.tokenStyle(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Span{Text: part, Style: st})
		}
	}

	// Lexers that ensure a trailing newline produce one extra line.
	for len(lines) < want {
		lines = append(lines, nil)
	}
	return lines[:want]
}

func (h *Highlighter) tokenStyle(t chroma.TokenType) lipgloss.Style {
	entry := h.style.Get(t)
	st := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

// Background returns the background color of theme, or nil if it sets none.
func Background(theme string) color.Color {
	st := styles.Get(theme)
	bg := st.Get(chroma.Background).Background
	if !bg.IsSet() {
		return nil
	}
	return lipgloss.Color(bg.String())
}

func plain(src string) [][]Span {
	raw := strings.Split(src, "\n")
	lines := make([][]Span, len(raw))
	for i, l := range raw {
		if l != "" {
			lines[i] = []Span{{Text: l, Style: lipgloss.NewStyle()}}
		}
	}
	return lines
}

// Detect returns the language shared by every path, judged by file name, or
// "" when the paths disagree or none is recognized.
func Detect(paths []string) string {
	lang := ""
	for _, p := range paths {
		lexer := lexers.Match(filepath.Base(p))
		if lexer == nil {
			return ""
		}
		name := languageID(lexer)
		if lang != "" && name != lang {
			return ""
		}
		lang = name
	}
	return lang
}

func languageID(l chroma.Lexer) string {
	cfg := l.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

// HasLanguage reports whether chroma knows language.
func HasLanguage(language string) bool {
	return lexers.Get(language) != nil
}

// HasTheme reports whether theme names a registered chroma style.
func HasTheme(theme string) bool {
	_, ok := styles.Registry[theme]
	return ok
}

// ThemeNames returns the registered chroma style names.
func ThemeNames() []string {
	return styles.Names()
}
