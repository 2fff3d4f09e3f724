package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/refract/internal/core/match"
	"github.com/colonyops/refract/internal/core/styles"
	"github.com/colonyops/refract/pkg/iojson"
)

type SearchCmd struct {
	flags  *Flags
	search searchFlags
	json   bool
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags) *SearchCmd {
	return &SearchCmd{flags: flags}
}

// Register adds the search command to the application.
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Print the matches of a pattern",
		UsageText: "refract search [options] <pattern> [paths...]",
		Description: `Prints every matching line as path:line:text with 1-based line numbers.
With --json the matches are printed in the format 'refract edit --file' reads,
with 0-based line numbers.`,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print matches as JSON",
				Destination: &cmd.json,
			},
		}, cmd.search.flags()...),
		Action: cmd.run,
	})
	return app
}

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("missing pattern. Run 'refract search --help' for usage")
	}

	cfg := cmd.flags.Config
	snap, err := newSearcher(cfg).Search(ctx, cmd.search.options(cfg, args[0], args[1:]))
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if cmd.json {
		if snap == nil {
			snap = match.Snapshot{}
		}
		return iojson.WriteWith(c.Root().Writer, os.Stderr, snap)
	}

	w := c.Root().Writer
	for _, fm := range snap {
		path := styles.MatchPathStyle.Render(fm.Path)
		for _, m := range fm.Matches {
			line := styles.MatchLineStyle.Render(strconv.Itoa(m.Line + 1))
			_, _ = fmt.Fprintf(w, "%s:%s:%s\n", path, line, m.Text)
		}
	}
	return nil
}
