package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// With creates a child logger with additional fields and returns a new context
func With(ctx context.Context, fields map[string]any) context.Context {
	childCtx := FromContext(ctx).With()
	for k, v := range fields {
		childCtx = childCtx.Interface(k, v)
	}
	return WithContext(ctx, childCtx.Logger())
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	return withStr(ctx, "component", component)
}

// WithOutput creates a child logger with an output field
func WithOutput(ctx context.Context, output string) context.Context {
	return withStr(ctx, "output", output)
}

// WithPeer creates a child logger with a peer field for socket connections
func WithPeer(ctx context.Context, peer string) context.Context {
	return withStr(ctx, "peer", peer)
}

func withStr(ctx context.Context, key, value string) context.Context {
	child := FromContext(ctx).With().Str(key, value).Logger()
	return WithContext(ctx, child)
}
