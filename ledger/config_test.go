package ledger

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNewConfig(t *testing.T) {
	config := NewConfig()

	assert.Equal(t, int32(DefaultQuantityScale), config.QuantityScale)
	assert.Equal(t, int32(DefaultCurrencyScale), config.CurrencyScale)
	assert.False(t, config.Strict)
	assert.NotZero(t, config.Now)
}

func TestConfigContext(t *testing.T) {
	t.Run("round trips through the context", func(t *testing.T) {
		config := NewConfig()
		config.Strict = true

		ctx := config.WithContext(context.Background())

		assert.True(t, config == ConfigFromContext(ctx))
	})

	t.Run("defaults when missing", func(t *testing.T) {
		config := ConfigFromContext(context.Background())

		assert.False(t, config.Strict)
		assert.Equal(t, int32(DefaultQuantityScale), config.QuantityScale)
	})
}

func TestConfigClone(t *testing.T) {
	config := NewConfig()
	clone := config.Clone()
	clone.Strict = true

	assert.False(t, config.Strict)
	assert.True(t, clone.Strict)
}
