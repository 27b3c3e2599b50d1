package cardcycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbilling/cardcycle/pkg/cardcycle"
)

func TestAccountConfig_Validate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		cfg := cardcycle.AccountConfig{
			EntityID:        "card-1",
			ClosingDay:      15,
			DueDay:          cardcycle.Day(25),
			BestPurchaseDay: cardcycle.Day(16),
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("optional days may be absent", func(t *testing.T) {
		cfg := cardcycle.AccountConfig{ClosingDay: 31}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("closing day zero reports exactly one reason", func(t *testing.T) {
		cfg := cardcycle.AccountConfig{ClosingDay: 0}
		err := cfg.Validate()
		require.Error(t, err)

		var verr *cardcycle.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Reasons, 1)
		assert.Contains(t, verr.Reasons[0], "closing day")
	})

	t.Run("due day equal to closing day rejected", func(t *testing.T) {
		cfg := cardcycle.AccountConfig{ClosingDay: 15, DueDay: cardcycle.Day(15)}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must differ from closing day")
	})

	t.Run("all violations reported at once", func(t *testing.T) {
		cfg := cardcycle.AccountConfig{
			ClosingDay:      0,
			DueDay:          cardcycle.Day(40),
			BestPurchaseDay: cardcycle.Day(-3),
		}
		err := cfg.Validate()
		require.Error(t, err)

		var verr *cardcycle.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Reasons, 3)
	})

	t.Run("out of range due day skips the equality rule", func(t *testing.T) {
		// Day 0 closing with day 0 due: both range violations, but the
		// equality check only applies to an in-range due day.
		cfg := cardcycle.AccountConfig{ClosingDay: 0, DueDay: cardcycle.Day(0)}
		err := cfg.Validate()
		require.Error(t, err)

		var verr *cardcycle.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Reasons, 2)
	})
}

func TestAccountConfig_ResolveDefaults(t *testing.T) {
	t.Run("existing values pass through", func(t *testing.T) {
		cfg := cardcycle.AccountConfig{
			ClosingDay:      15,
			DueDay:          cardcycle.Day(25),
			BestPurchaseDay: cardcycle.Day(20),
		}
		got := cfg.ResolveDefaults()
		assert.Equal(t, 25, got.DueDay)
		assert.Equal(t, 20, got.BestPurchaseDay)
	})

	t.Run("due day defaults to closing plus ten", func(t *testing.T) {
		got := cardcycle.AccountConfig{ClosingDay: 15}.ResolveDefaults()
		assert.Equal(t, 25, got.DueDay)
	})

	t.Run("due day wraps past 31 by subtracting 31", func(t *testing.T) {
		// closing 25 -> 35 -> 4, not 35 and not a month-length modulo.
		got := cardcycle.AccountConfig{ClosingDay: 25}.ResolveDefaults()
		assert.Equal(t, 4, got.DueDay)
	})

	t.Run("due day exactly 31 does not wrap", func(t *testing.T) {
		got := cardcycle.AccountConfig{ClosingDay: 21}.ResolveDefaults()
		assert.Equal(t, 31, got.DueDay)
	})

	t.Run("best purchase day is the day after closing", func(t *testing.T) {
		got := cardcycle.AccountConfig{ClosingDay: 15}.ResolveDefaults()
		assert.Equal(t, 16, got.BestPurchaseDay)
	})

	t.Run("best purchase day wraps 31 to 1", func(t *testing.T) {
		got := cardcycle.AccountConfig{ClosingDay: 31}.ResolveDefaults()
		assert.Equal(t, 1, got.BestPurchaseDay)
	})
}
