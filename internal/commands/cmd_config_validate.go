package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/refract/internal/core/config"
	"github.com/colonyops/refract/internal/core/styles"
	"github.com/colonyops/refract/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "refract config validate [options]",
				Description: "Validates the configuration file, checking theme names, glob patterns, key bindings, and the git executable.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	result := validationResult{
		Errors:   validationErrors(cfg.ValidateDeep(cmd.flags.ConfigPath)),
		Warnings: cfg.Warnings(),
	}
	result.Valid = len(result.Errors) == 0

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, result); err != nil {
			return err
		}
	} else {
		cmd.outputText(os.Stderr, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

// validationErrors flattens criterio field errors; other errors become a
// single entry without a field.
func validationErrors(err error) []validationError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationError{{Message: err.Error()}}
	}

	out := make([]validationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, validationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, result validationResult) {
	for _, warn := range result.Warnings {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.WarningStyle.Render("●"), warn.Category, warn.Message)
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", styles.MutedStyle.Render("Item: "+warn.Item))
		}
	}

	for _, e := range result.Errors {
		if e.Field == "" {
			_, _ = fmt.Fprintf(w, "%s %s\n", styles.ErrorStyle.Render("✘"), e.Message)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.ErrorStyle.Render("✘"), e.Field, e.Message)
	}

	_, _ = fmt.Fprintln(w)
	if result.Valid {
		_, _ = fmt.Fprintln(w, styles.SuccessStyle.Render("✔ Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}
