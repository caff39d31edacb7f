package ledger

import (
	"context"
	"time"
)

const (
	// DefaultQuantityScale is the number of fractional digits kept for asset quantities.
	DefaultQuantityScale = 8
	// DefaultCurrencyScale is the number of fractional digits kept for cost, proceeds and gain.
	DefaultCurrencyScale = 2
)

// Config holds the options of one batch evaluation.
type Config struct {
	// QuantityScale is the rounding scale for quantities (lot amounts,
	// derived trade quantities).
	QuantityScale int32
	// CurrencyScale is the rounding scale for currency amounts.
	CurrencyScale int32
	// Strict rejects non-numeric, negative and unrecognized input fields
	// instead of coercing them.
	Strict bool
	// Now supplies the date of transactions that carry none.
	Now func() time.Time
}

// NewConfig creates a Config with the default scales and lenient input handling.
func NewConfig() *Config {
	return &Config{
		QuantityScale: DefaultQuantityScale,
		CurrencyScale: DefaultCurrencyScale,
		Now:           time.Now,
	}
}

// Clone returns a shallow copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// contextKey is a private type to avoid key collisions in context.
type contextKey struct{}

// WithContext returns a new context with the Config attached.
func (c *Config) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// ConfigFromContext retrieves the Config from context.
// Returns a default Config if not found.
func ConfigFromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok {
		return cfg
	}
	return NewConfig()
}
