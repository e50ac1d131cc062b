// internal/domain/odds_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestPriceMultiplier tests the American odds to decimal multiplier conversion.
func TestPriceMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		price    int
		expected string
	}{
		{"PositiveOdds", 150, "2.5"},
		{"EvenMoney", 100, "2"},
		{"Zero", 0, "1"},
		{"NegativeOdds", -200, "1.5"},
		{"NegativeEvenMoney", -100, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceMultiplier(tt.price)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"PriceMultiplier(%d) = %s, want %s", tt.price, got, tt.expected)
		})
	}

	// Non-terminating division keeps full precision and only rounds on display.
	t.Run("NegativeOddsRepeating", func(t *testing.T) {
		got := PriceMultiplier(-120)
		assert.Equal(t, "1.8333", got.Round(4).String())
	})
}

// TestCombinedPrice tests the parlay price product.
func TestCombinedPrice(t *testing.T) {
	t.Run("TwoLegs", func(t *testing.T) {
		// 2.5 * 1.8333... = 4.5833...
		got := CombinedPrice([]int{150, -120})
		assert.Equal(t, "4.5833", got.Round(4).String())
	})

	t.Run("SingleLeg", func(t *testing.T) {
		got := CombinedPrice([]int{150})
		assert.True(t, got.Equal(decimal.RequireFromString("2.5")))
	})

	t.Run("NoLegs", func(t *testing.T) {
		got := CombinedPrice(nil)
		assert.True(t, got.Equal(decimal.NewFromInt(1)))
	})
}
