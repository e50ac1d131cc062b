// internal/repository/balance_repo.go
package repository

import (
	"context"

	"betledger/internal/domain"

	"github.com/shopspring/decimal"
)

// BalanceRepository defines the interface for balance data operations.
// Debit and Credit are single conditional updates; the balance row is the
// serialization point for a user's concurrent financial operations.
type BalanceRepository interface {
	// CreateBalance adds a new zero balance row for a user.
	CreateBalance(ctx context.Context, q DBExecutor, balance *domain.Balance) error
	// GetBalanceByUserID retrieves a user's balance.
	GetBalanceByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Balance, error)
	// Credit adds amount to the user's balance. Crediting cannot violate
	// non-negativity, so it fails only on store errors.
	Credit(ctx context.Context, q DBExecutor, userID int64, amount decimal.Decimal) error
	// Debit subtracts amount from the user's balance only if the committed
	// amount covers it, returning util.ErrInsufficientFunds otherwise. The
	// check and the write are one atomic UPDATE.
	Debit(ctx context.Context, q DBExecutor, userID int64, amount decimal.Decimal) error
}

// EntryRepository defines the interface for balance journal operations.
type EntryRepository interface {
	// CreateEntry records a balance mutation in the journal.
	CreateEntry(ctx context.Context, q DBExecutor, entry *domain.BalanceEntry) error
	// GetEntriesByUserID retrieves a paginated journal for a user together
	// with the total row count.
	GetEntriesByUserID(ctx context.Context, q DBExecutor, userID int64, limit, offset int) ([]domain.BalanceEntry, int64, error)
}
