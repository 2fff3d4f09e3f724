// Package logging holds zerolog helpers shared by refract's components.
package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Session creates a component logger that also carries the session ID
// stored in ctx, if any.
func Session(ctx context.Context, name string) zerolog.Logger {
	l := Component(name)
	if id := GetSessionID(ctx); id != "" {
		l = l.With().Str("session_id", id).Logger()
	}
	return l
}
