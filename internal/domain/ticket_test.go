// internal/domain/ticket_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestNewTicket tests ticket assembly from frozen legs.
func TestNewTicket(t *testing.T) {
	stake := decimal.NewFromInt(10)
	legs := []TicketLeg{
		{EventID: "evt-1", OddsSnapshotID: "snap-1", Market: MarketH2H, Outcome: "HOME", Price: 150},
		{EventID: "evt-2", OddsSnapshotID: "snap-2", Market: MarketH2H, Outcome: "AWAY", Price: -120},
	}

	ticket := NewTicket(7, stake, legs)

	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, int64(7), ticket.UserID)
	assert.Equal(t, TicketStatusPending, ticket.Status)
	assert.True(t, ticket.Stake.Equal(stake))

	// 2.5 * 1.8333... stored at 4 places, payout from the unrounded product.
	assert.Equal(t, "4.5833", ticket.TotalPrice.String())
	assert.Equal(t, "45.83", ticket.PotentialPayout.String())

	assert.Len(t, ticket.Legs, 2)
	for _, leg := range ticket.Legs {
		assert.NotEmpty(t, leg.ID)
		assert.Equal(t, ticket.ID, leg.TicketID)
		assert.Equal(t, TicketStatusPending, leg.Status)
	}
}

// TestSettlementCredit tests the amount returned to the bettor per outcome.
func TestSettlementCredit(t *testing.T) {
	ticket := &Ticket{
		Stake:           decimal.NewFromInt(10),
		PotentialPayout: decimal.RequireFromString("45.83"),
	}

	assert.True(t, ticket.SettlementCredit(TicketStatusWon).Equal(decimal.RequireFromString("45.83")))
	assert.True(t, ticket.SettlementCredit(TicketStatusCanceled).Equal(decimal.NewFromInt(10)))
	assert.True(t, ticket.SettlementCredit(TicketStatusLost).IsZero())
}

// TestParseOutcome tests mapping caller outcomes onto terminal statuses.
func TestParseOutcome(t *testing.T) {
	for _, valid := range []string{"WON", "LOST", "CANCELED"} {
		status, ok := ParseOutcome(valid)
		assert.True(t, ok, "expected %s to parse", valid)
		assert.Equal(t, TicketStatus(valid), status)
	}

	for _, invalid := range []string{"PENDING", "", "won", "VOID"} {
		_, ok := ParseOutcome(invalid)
		assert.False(t, ok, "expected %q to be rejected", invalid)
	}
}

// TestTicketStatusTerminal tests the terminal state predicate.
func TestTicketStatusTerminal(t *testing.T) {
	assert.False(t, TicketStatusPending.Terminal())
	assert.True(t, TicketStatusWon.Terminal())
	assert.True(t, TicketStatusLost.Terminal())
	assert.True(t, TicketStatusCanceled.Terminal())
}

// TestDeletable tests which ticket states permit physical deletion.
func TestDeletable(t *testing.T) {
	assert.True(t, (&Ticket{Status: TicketStatusPending}).Deletable())
	assert.True(t, (&Ticket{Status: TicketStatusCanceled}).Deletable())
	assert.False(t, (&Ticket{Status: TicketStatusWon}).Deletable())
	assert.False(t, (&Ticket{Status: TicketStatusLost}).Deletable())
}

// TestBiddable tests the placement gate on the event.
func TestBiddable(t *testing.T) {
	now := time.Now().UTC()

	upcoming := NewSportEvent("basketball", "Lakers v Celtics", now.Add(time.Hour))
	assert.True(t, upcoming.Biddable(now))

	started := NewSportEvent("basketball", "Lakers v Celtics", now.Add(-time.Minute))
	assert.False(t, started.Biddable(now))

	live := NewSportEvent("basketball", "Lakers v Celtics", now.Add(time.Hour))
	live.Status = EventStatusLive
	assert.False(t, live.Biddable(now))

	// Commencing exactly now is already closed.
	boundary := NewSportEvent("basketball", "Lakers v Celtics", now)
	assert.False(t, boundary.Biddable(now))
}
