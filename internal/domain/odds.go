// internal/domain/odds.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketType defines the market a price was quoted on.
type MarketType string

const (
	MarketH2H    MarketType = "H2H"
	MarketSpread MarketType = "SPREAD"
	MarketTotals MarketType = "TOTALS"
)

// OddsSnapshot is an immutable, timestamped price for one outcome of one
// event. Placed legs copy the price out of the snapshot; they never
// dereference it again, so later quotes cannot move a ticket's payout.
type OddsSnapshot struct {
	ID       string              `db:"id" json:"id"`
	EventID  string              `db:"event_id" json:"event_id"`
	Market   MarketType          `db:"market" json:"market"`
	Outcome  string              `db:"outcome" json:"outcome"`
	Price    int                 `db:"price" json:"price"` // American odds convention
	Handicap decimal.NullDecimal `db:"handicap" json:"handicap,omitempty"`
	Total    decimal.NullDecimal `db:"total" json:"total,omitempty"`
	QuotedAt time.Time           `db:"quoted_at" json:"quoted_at"`
}

// NewOddsSnapshot creates a snapshot quoted now.
func NewOddsSnapshot(eventID string, market MarketType, outcome string, price int, handicap, total decimal.NullDecimal) *OddsSnapshot {
	return &OddsSnapshot{
		ID:       uuid.NewString(),
		EventID:  eventID,
		Market:   market,
		Outcome:  outcome,
		Price:    price,
		Handicap: handicap,
		Total:    total,
		QuotedAt: time.Now().UTC(),
	}
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// PriceMultiplier converts an American price to its decimal-odds multiplier:
// price >= 0 yields 1 + price/100, price < 0 yields 1 + 100/|price|.
func PriceMultiplier(price int) decimal.Decimal {
	p := decimal.NewFromInt(int64(price))
	if price >= 0 {
		return one.Add(p.Div(hundred))
	}
	return one.Add(hundred.Div(p.Abs()))
}
