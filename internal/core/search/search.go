// Package search collects regular expression matches from files into a
// match snapshot.
package search

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/refract/internal/core/git"
	"github.com/colonyops/refract/internal/core/match"
)

// DefaultMaxFileSize is the size above which files are skipped.
const DefaultMaxFileSize int64 = 1 << 20

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8000

// ErrEmptyPattern is returned when no pattern is given.
var ErrEmptyPattern = errors.New("empty search pattern")

// Options control a search.
type Options struct {
	Pattern    string
	Paths      []string // files or directories; defaults to "."
	Include    []string // doublestar globs relative to each directory path
	Exclude    []string
	IgnoreCase bool
	Hidden     bool // descend into dot files and directories
	UseGit     bool // list candidates with git ls-files inside work trees
	// MaxFileSize skips larger files; zero means DefaultMaxFileSize.
	MaxFileSize int64
}

// Searcher finds matches on disk.
type Searcher struct {
	git    git.Git
	logger zerolog.Logger
}

// New creates a searcher. A nil git disables git based listing.
func New(g git.Git, logger zerolog.Logger) *Searcher {
	return &Searcher{git: g, logger: logger}
}

// Search returns every line matching opts.Pattern, grouped by file and
// sorted by path. Binary, non UTF-8 and oversized files are skipped. The context is
// checked between files.
func (s *Searcher) Search(ctx context.Context, opts Options) (match.Snapshot, error) {
	if opts.Pattern == "" {
		return nil, ErrEmptyPattern
	}

	expr := opts.Pattern
	if opts.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}

	if err := validateGlobs(opts.Include, opts.Exclude); err != nil {
		return nil, err
	}

	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := s.candidates(ctx, paths, opts)
	if err != nil {
		return nil, err
	}

	var snap match.Snapshot
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matches, err := s.searchFile(path, re, opts.MaxFileSize)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("skipping file")
			continue
		}
		if len(matches) > 0 {
			snap = append(snap, match.FileMatches{Path: path, Matches: matches})
		}
	}

	s.logger.Debug().
		Int("files", len(files)).
		Int("matched_files", len(snap)).
		Int("matches", snap.Count()).
		Msg("search complete")

	return snap, nil
}

func validateGlobs(groups ...[]string) error {
	for _, globs := range groups {
		for _, g := range globs {
			if !doublestar.ValidatePattern(g) {
				return fmt.Errorf("invalid glob %q", g)
			}
		}
	}
	return nil
}

// candidates lists the files to search, sorted and without duplicates.
func (s *Searcher) candidates(ctx context.Context, paths []string, opts Options) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		rels, err := s.listDir(ctx, root, opts.UseGit, opts.Hidden)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			if !selected(rel, opts) {
				continue
			}
			add(filepath.Join(root, filepath.FromSlash(rel)))
		}
	}

	slices.Sort(files)
	return files, nil
}

// listDir returns slash separated paths relative to dir.
func (s *Searcher) listDir(ctx context.Context, dir string, useGit, hidden bool) ([]string, error) {
	if useGit && s.git != nil {
		if _, err := s.git.Root(ctx, dir); err == nil {
			files, err := s.git.LsFiles(ctx, dir)
			if err == nil {
				return files, nil
			}
			s.logger.Warn().Err(err).Str("dir", dir).Msg("git listing failed, walking directory")
		} else {
			s.logger.Debug().Str("dir", dir).Msg("not a git work tree, walking directory")
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if name == ".git" || (!hidden && isHidden(name)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// selected applies the hidden, include and exclude filters to a slash
// separated relative path.
func selected(rel string, opts Options) bool {
	if !opts.Hidden {
		for _, part := range strings.Split(rel, "/") {
			if isHidden(part) {
				return false
			}
		}
	}

	if len(opts.Include) > 0 && !matchAny(opts.Include, rel) {
		return false
	}
	return !matchAny(opts.Exclude, rel)
}

func matchAny(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		// Globs without a slash match the base name anywhere in the tree.
		if !strings.Contains(g, "/") {
			if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
				return true
			}
		}
	}
	return false
}

func (s *Searcher) searchFile(path string, re *regexp.Regexp, maxSize int64) ([]match.Match, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		s.logger.Debug().Str("path", path).Int64("size", info.Size()).Msg("skipping large file")
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.IndexByte(data[:min(len(data), binarySniffLen)], 0) >= 0 {
		s.logger.Debug().Str("path", path).Msg("skipping binary file")
		return nil, nil
	}
	if !utf8.Valid(data) {
		s.logger.Debug().Str("path", path).Msg("skipping non UTF-8 file")
		return nil, nil
	}

	var matches []match.Match
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), int(maxSize)+1)
	for line := 0; sc.Scan(); line++ {
		text := sc.Text()
		if re.MatchString(text) {
			matches = append(matches, match.Match{Line: line, Text: text})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	return matches, nil
}
