// Package logging defines the structured logger used across the client.
// The production implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware structured logger. Args are key/value pairs:
//
//	log.Info(ctx, "meal added", "id", id, "calories", kcal)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries args.
	With(args ...any) Logger
}
