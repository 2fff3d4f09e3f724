package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/refract/internal/core/highlight"
	"github.com/colonyops/refract/internal/core/logging"
	"github.com/colonyops/refract/internal/core/match"
	"github.com/colonyops/refract/internal/core/styles"
	"github.com/colonyops/refract/internal/core/workspace"
	"github.com/colonyops/refract/internal/tui"
	"github.com/colonyops/refract/internal/tui/editor"
	"github.com/colonyops/refract/internal/tui/refactor"
	"github.com/colonyops/refract/pkg/iojson"
)

type EditCmd struct {
	flags    *Flags
	search   searchFlags
	input    iojson.FileReader[match.Snapshot]
	language string
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Flags returns the edit flags for registration on the root command
func (cmd *EditCmd) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "language",
			Aliases:     []string{"l"},
			Usage:       "syntax highlighting language (inferred from file names when omitted)",
			Destination: &cmd.language,
		},
		cmd.input.Flag(),
	}
	return append(flags, cmd.search.flags()...)
}

// Register adds the edit command to the application.
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Edit every match of a pattern in one buffer",
		UsageText: "refract edit [options] [pattern] [paths...]",
		Description: `Searches for pattern and opens the matching lines as one editable buffer,
each row labeled with the file and line it came from. Type ':' and confirm
with 'y' to write the edited rows back to their files, or close the view
with 'ctrl+w q' to discard the edits.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})
	return app
}

// Run executes the edit command. Exported for use as default command.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	snap, err := cmd.matches(ctx, c)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	if len(snap) == 0 {
		_, _ = fmt.Fprintln(os.Stderr, styles.MutedStyle.Render("No matches"))
		return nil
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("invalid matches: %w", err)
	}

	language := cmd.language
	if language == "" {
		language = highlight.Detect(snap.Paths())
	}

	ctx = logging.WithSessionID(ctx, uuid.NewString())
	logger := logging.Session(ctx, "refactor")

	cfg := cmd.flags.Config
	ws := workspace.New(logging.Session(ctx, "workspace"))
	m := tui.New(ws, snap, tui.Options{
		Editor: editor.Options{
			ScrollOff:   cfg.ScrollOff,
			AutoInfo:    cfg.AutoInfo,
			SyntaxTheme: cfg.SyntaxTheme,
			Keymaps:     cfg.Keymaps(),
		},
		Session: refactor.Options{
			Language:    language,
			GutterWidth: cfg.GutterWidth,
		},
	}, logger)

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return cmd.save(ws, finalModel.(tui.Model))
}

// matches loads the match set from --file or runs the search.
func (cmd *EditCmd) matches(ctx context.Context, c *cli.Command) (match.Snapshot, error) {
	if cmd.input.IsSet() {
		return cmd.input.Read()
	}

	args := c.Args().Slice()
	pattern := ""
	if len(args) > 0 {
		pattern, args = args[0], args[1:]
	}
	if pattern == "" {
		if err := runPatternForm(&pattern); err != nil {
			return nil, err
		}
	}

	cfg := cmd.flags.Config
	snap, err := newSearcher(cfg).Search(ctx, cmd.search.options(cfg, pattern, args))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return snap, nil
}

// save writes the documents the session modified and prints the summary.
// Every file is attempted before a failure is reported.
func (cmd *EditCmd) save(ws *workspace.Workspace, m tui.Model) error {
	w := os.Stderr

	if _, applied := m.Result(); !applied {
		_, _ = fmt.Fprintln(w, styles.MutedStyle.Render("No changes applied"))
		return nil
	}

	saved, failed := ws.SaveModified()
	for _, path := range saved {
		_, _ = fmt.Fprintf(w, "  %s %s\n", styles.SuccessStyle.Render("✔"), path)
	}
	for _, f := range failed {
		log.Error().Err(f.Err).Str("path", f.Path).Msg("failed to save document")
		_, _ = fmt.Fprintf(w, "  %s %s %s\n", styles.ErrorStyle.Render("✘"), f.Path, styles.MutedStyle.Render(f.Err.Error()))
	}

	_, _ = fmt.Fprintln(w, m.Status())

	if len(failed) > 0 {
		return fmt.Errorf("save documents: %d of %d failed", len(failed), len(saved)+len(failed))
	}
	return nil
}

func runPatternForm(pattern *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pattern").
				Description("Regular expression to search for").
				Validate(validatePattern).
				Value(pattern),
		),
	).Run()
}

func validatePattern(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("pattern is required")
	}
	if _, err := regexp.Compile(s); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	return nil
}
