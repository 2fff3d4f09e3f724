package config

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/sahilm/fuzzy"

	"github.com/colonyops/refract/internal/core/highlight"
	"github.com/colonyops/refract/internal/core/keymap"
	"github.com/colonyops/refract/internal/core/refactor"
	"github.com/colonyops/refract/internal/core/styles"
)

// maxSuggestions caps the "did you mean" list for unknown command names.
const maxSuggestions = 3

// minLabelWidth is the narrowest gutter that still fits a short label.
const minLabelWidth = 6

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// theme names, glob syntax, key bindings, and file accessibility. The configPath
// argument specifies the config file location to validate (empty string skips
// config file check). This calls Validate() first for basic structural
// validation, then adds the deeper checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateThemes(),
		c.validateGlobs(),
		c.validateKeys(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for _, mode := range sortedModes(c.Keys) {
		c.Keys[mode].Walk(func(path []string, t keymap.Trie) {
			for _, name := range commandsOf(t) {
				if refactor.IsUnsupported(name) {
					warnings = append(warnings, ValidationWarning{
						Category: "Keys",
						Item:     keyField(mode, path),
						Message:  fmt.Sprintf("%q is not available in the refactor view", name),
					})
				}
			}
		})
	}

	if c.GutterWidth < minLabelWidth {
		warnings = append(warnings, ValidationWarning{
			Category: "View",
			Item:     "gutter_width",
			Message:  fmt.Sprintf("gutter narrower than %d columns shows little of each path:line label", minLabelWidth),
		})
	}

	return warnings
}

// validateFileAccess checks config file and git executable.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("git_path", c.GitPath, gitExecutableExists),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// gitExecutableExists validates that the git path is executable.
func gitExecutableExists(path string) error {
	if path == "" {
		return nil
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("executable not found: %s", path)
	}
	return nil
}

func (c *Config) validateThemes() error {
	return criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, func(name string) error {
			if _, ok := styles.GetPalette(name); !ok {
				return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
			}
			return nil
		}),
		criterio.Run("syntax_theme", c.SyntaxTheme, func(name string) error {
			if !highlight.HasTheme(name) {
				return fmt.Errorf("unknown syntax theme %q%s", name, didYouMean(name, highlight.ThemeNames()))
			}
			return nil
		}),
	)
}

func (c *Config) validateGlobs() error {
	var errs criterio.FieldErrorsBuilder
	for i, g := range c.Search.Include {
		if !doublestar.ValidatePattern(g) {
			errs = errs.Append(fmt.Sprintf("search.include[%d]", i), fmt.Errorf("invalid glob %q", g))
		}
	}
	for i, g := range c.Search.Exclude {
		if !doublestar.ValidatePattern(g) {
			errs = errs.Append(fmt.Sprintf("search.exclude[%d]", i), fmt.Errorf("invalid glob %q", g))
		}
	}
	return errs.ToError()
}

// validateKeys checks that every bound command exists. Mode names are
// checked by Validate.
func (c *Config) validateKeys() error {
	var errs criterio.FieldErrorsBuilder
	names := keymap.CommandNames()

	for _, mode := range sortedModes(c.Keys) {
		c.Keys[mode].Walk(func(path []string, t keymap.Trie) {
			for _, name := range commandsOf(t) {
				if _, ok := keymap.LookupCommand(name); ok {
					continue
				}
				errs = errs.Append(keyField(mode, path), fmt.Errorf("unknown command %q%s", name, didYouMean(name, names)))
			}
		})
	}

	return errs.ToError()
}

// didYouMean formats up to maxSuggestions fuzzy matches of name, or "" when
// nothing is close.
func didYouMean(name string, candidates []string) string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, candidates[m.Index])
	}
	return fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
}

func commandsOf(t keymap.Trie) []string {
	switch t := t.(type) {
	case *keymap.Leaf:
		return []string{t.Command}
	case *keymap.Sequence:
		return t.Commands
	}
	return nil
}

func keyField(mode keymap.Mode, path []string) string {
	return fmt.Sprintf("keys.%s[%q]", mode, strings.Join(path, " "))
}

func sortedModes(keys map[keymap.Mode]*keymap.Node) []keymap.Mode {
	modes := make([]keymap.Mode, 0, len(keys))
	for m, n := range keys {
		if n != nil {
			modes = append(modes, m)
		}
	}
	slices.Sort(modes)
	return modes
}
