package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithClient returns a context whose logger carries the connection's
// client and user ids, so downstream room and persistence logs
// identify the actor without re-tagging.
func WithClient(ctx context.Context, clientID, userID string) context.Context {
	l := Ctx(ctx)
	child := l.With().
		Str(FieldClientID, clientID).
		Str(FieldUserID, userID).
		Logger()
	return WithLogger(ctx, child)
}

// Ctx retrieves the logger from the context, falling back to the
// global logger when none was stored.
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return L()
}
