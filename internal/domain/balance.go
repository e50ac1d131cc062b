// internal/domain/balance.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Balance represents a user's wagering balance.
// The committed amount is never negative; the store enforces this with a
// conditional debit, not a read-then-write.
type Balance struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"` // NUMERIC(20, 4) in DB
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// NewBalance creates a zero Balance for the given user.
func NewBalance(userID int64) *Balance {
	now := time.Now().UTC()
	return &Balance{
		UserID:    userID,
		Amount:    decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
