package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/refract/internal/core/keymap"
	reconcile "github.com/colonyops/refract/internal/core/refactor"
	"github.com/colonyops/refract/internal/core/styles"
)

const defaultWrapWidth = 100

type KeysCmd struct {
	flags *Flags
	mode  string
	raw   bool
}

// NewKeysCmd creates a new keys command
func NewKeysCmd(flags *Flags) *KeysCmd {
	return &KeysCmd{flags: flags}
}

// Register adds the keys command to the application.
func (cmd *KeysCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "keys",
		Usage:       "Show the effective key bindings",
		UsageText:   "refract keys [options]",
		Description: "Prints the built-in key bindings merged with the keys section of the config file.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "mode",
				Usage:       "only show one mode (normal, insert)",
				Destination: &cmd.mode,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without rendering it",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *KeysCmd) run(_ context.Context, c *cli.Command) error {
	modes := keymap.Modes
	if cmd.mode != "" {
		mode := keymap.Mode(cmd.mode)
		if _, ok := cmd.flags.Config.Keymaps().Get(mode); !ok {
			return fmt.Errorf("unknown mode %q", cmd.mode)
		}
		modes = []keymap.Mode{mode}
	}

	md := keymapMarkdown(cmd.flags.Config.Keymaps(), modes)
	if cmd.raw {
		_, err := fmt.Fprint(c.Root().Writer, md)
		return err
	}

	width := defaultWrapWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render keymap: %w", err)
	}

	_, err = fmt.Fprint(c.Root().Writer, out)
	return err
}

// keymapMarkdown renders one table per mode listing every bound key
// sequence, the commands it runs and whether the refactor view allows them.
func keymapMarkdown(km keymap.Keymaps, modes []keymap.Mode) string {
	var sb strings.Builder

	for i, mode := range modes {
		root, ok := km.Get(mode)
		if !ok {
			continue
		}
		if i > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "# %s mode\n\n", titleCase(string(mode)))
		sb.WriteString("| Keys | Command | Description | Refactor view |\n")
		sb.WriteString("|---|---|---|---|\n")

		root.Walk(func(path []string, t keymap.Trie) {
			names := trieCommands(t)
			descs := make([]string, 0, len(names))
			available := "yes"
			for _, name := range names {
				descs = append(descs, keymap.Describe(name))
				if reconcile.IsUnsupported(name) {
					available = "no"
				}
			}

			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				codeSpan(strings.Join(path, " ")),
				escapeCell(strings.Join(names, ", ")),
				escapeCell(strings.Join(descs, ", ")),
				available,
			)
		})
	}

	return sb.String()
}

func trieCommands(t keymap.Trie) []string {
	switch t := t.(type) {
	case *keymap.Leaf:
		return []string{t.Command}
	case *keymap.Sequence:
		return t.Commands
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func codeSpan(s string) string {
	if strings.Contains(s, "`") {
		return "`` " + escapeCell(s) + " ``"
	}
	return "`" + escapeCell(s) + "`"
}
