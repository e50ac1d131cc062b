// internal/domain/entry.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a balance mutation.
type EntryKind string

const (
	EntryKindDeposit    EntryKind = "DEPOSIT"
	EntryKindWithdrawal EntryKind = "WITHDRAWAL"
	EntryKindStake      EntryKind = "STAKE"
	EntryKindPayout     EntryKind = "PAYOUT"
	EntryKindRefund     EntryKind = "REFUND"
)

// BalanceEntry is one journal row per balance mutation, written in the same
// transaction as the mutation itself. Amount is signed: debits are negative.
type BalanceEntry struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	TicketID  *string         `db:"ticket_id" json:"ticket_id,omitempty"` // nil for deposits/withdrawals
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Kind      EntryKind       `db:"kind" json:"kind"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewBalanceEntry creates a journal entry for a balance mutation.
func NewBalanceEntry(userID int64, ticketID *string, amount decimal.Decimal, kind EntryKind) *BalanceEntry {
	return &BalanceEntry{
		UserID:    userID,
		TicketID:  ticketID,
		Amount:    amount,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
}
