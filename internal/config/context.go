package config

import "context"

type contextKey struct{}

// WithConfig returns a context carrying the config.
func WithConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the config stored in the context, or an empty config
// when none was stored.
func FromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(contextKey{}).(Config); ok {
		return cfg
	}
	return Config{}
}
