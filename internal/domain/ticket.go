// internal/domain/ticket.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketStatus defines the lifecycle status of a bet ticket.
// PENDING is the only non-terminal state.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "PENDING"
	TicketStatusWon      TicketStatus = "WON"
	TicketStatusLost     TicketStatus = "LOST"
	TicketStatusCanceled TicketStatus = "CANCELED"
)

// Terminal reports whether no further transition is legal out of the status.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusWon || s == TicketStatusLost || s == TicketStatusCanceled
}

// ParseOutcome maps a caller-supplied settlement outcome onto a terminal
// ticket status. The second return is false for anything else, including
// "PENDING".
func ParseOutcome(outcome string) (TicketStatus, bool) {
	s := TicketStatus(outcome)
	if s.Terminal() {
		return s, true
	}
	return "", false
}

// TicketLeg is one selection within a ticket. Price, handicap and total are
// frozen copies from the odds snapshot at placement time. Leg status is kept
// in lockstep with the ticket status by settlement; it never leads or lags.
type TicketLeg struct {
	ID             string              `db:"id" json:"id"`
	TicketID       string              `db:"ticket_id" json:"ticket_id"`
	EventID        string              `db:"event_id" json:"event_id"`
	OddsSnapshotID string              `db:"odds_snapshot_id" json:"odds_snapshot_id"`
	Market         MarketType          `db:"market" json:"market"`
	Outcome        string              `db:"outcome" json:"outcome"`
	Price          int                 `db:"price" json:"price"`
	Handicap       decimal.NullDecimal `db:"handicap" json:"handicap,omitempty"`
	Total          decimal.NullDecimal `db:"total" json:"total,omitempty"`
	Status         TicketStatus        `db:"status" json:"status"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
}

// Ticket is the bet aggregate: stake, combined price and potential payout
// over one or more legs. TotalPrice and PotentialPayout are computed once at
// placement and immutable thereafter; settlement credits the stored payout,
// it never recomputes from legs.
type Ticket struct {
	ID              string          `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	Stake           decimal.Decimal `db:"stake" json:"stake"`
	TotalPrice      decimal.Decimal `db:"total_price" json:"total_price"`
	PotentialPayout decimal.Decimal `db:"potential_payout" json:"potential_payout"`
	Status          TicketStatus    `db:"status" json:"status"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	SettledAt       *time.Time      `db:"settled_at" json:"settled_at,omitempty"`
	Legs            []TicketLeg     `db:"-" json:"legs"`
}

// CombinedPrice multiplies the decimal multipliers of the given American
// prices into the ticket's total price.
func CombinedPrice(prices []int) decimal.Decimal {
	total := one
	for _, p := range prices {
		total = total.Mul(PriceMultiplier(p))
	}
	return total
}

// NewTicket assembles a pending ticket from frozen legs, computing the
// combined price and potential payout. The stored total price is rounded to
// 4 places and the payout to 2, matching the column scales; the payout is
// taken from the unrounded product.
func NewTicket(userID int64, stake decimal.Decimal, legs []TicketLeg) *Ticket {
	now := time.Now().UTC()
	id := uuid.NewString()

	prices := make([]int, len(legs))
	for i := range legs {
		legs[i].ID = uuid.NewString()
		legs[i].TicketID = id
		legs[i].Status = TicketStatusPending
		legs[i].CreatedAt = now
		prices[i] = legs[i].Price
	}

	total := CombinedPrice(prices)
	return &Ticket{
		ID:              id,
		UserID:          userID,
		Stake:           stake,
		TotalPrice:      total.Round(4),
		PotentialPayout: stake.Mul(total).Round(2),
		Status:          TicketStatusPending,
		CreatedAt:       now,
		Legs:            legs,
	}
}

// SettlementCredit returns the amount credited back to the user when a
// pending ticket transitions into the given terminal status: the stored
// payout on a win, the stake on a cancel, zero on a loss.
func (t *Ticket) SettlementCredit(to TicketStatus) decimal.Decimal {
	switch to {
	case TicketStatusWon:
		return t.PotentialPayout
	case TicketStatusCanceled:
		return t.Stake
	default:
		return decimal.Zero
	}
}

// Deletable reports whether the ticket status permits physical deletion.
// The caller must additionally verify that no leg's event has started.
func (t *Ticket) Deletable() bool {
	return t.Status == TicketStatusPending || t.Status == TicketStatusCanceled
}
