// internal/repository/postgres/balance_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"betledger/internal/domain"
	"betledger/internal/repository"
	"betledger/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// BalanceRepository implements repository.BalanceRepository for PostgreSQL.
type BalanceRepository struct{}

// NewBalanceRepository creates a new BalanceRepository. Methods receive a
// DBExecutor directly, so the struct carries no connection.
func NewBalanceRepository(db *sqlx.DB) repository.BalanceRepository {
	return &BalanceRepository{}
}

// CreateBalance inserts a new balance row using the provided DBExecutor.
func (r *BalanceRepository) CreateBalance(ctx context.Context, q repository.DBExecutor, balance *domain.Balance) error {
	query := `INSERT INTO balances (user_id, amount, created_at, updated_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query, balance.UserID, balance.Amount, balance.CreatedAt, balance.UpdatedAt).Scan(&balance.ID)
	if err != nil {
		return fmt.Errorf("failed to create balance: %w", err)
	}
	return nil
}

// GetBalanceByUserID retrieves a user's balance using the provided DBExecutor.
func (r *BalanceRepository) GetBalanceByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Balance, error) {
	var balance domain.Balance
	query := `SELECT id, user_id, amount, created_at, updated_at FROM balances WHERE user_id = $1`
	err := q.GetContext(ctx, &balance, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get balance for user %d: %w", userID, err)
	}
	return &balance, nil
}

// Credit adds amount to the user's balance using the provided DBExecutor.
func (r *BalanceRepository) Credit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) error {
	query := `UPDATE balances SET amount = amount + $1, updated_at = $2 WHERE user_id = $3`
	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to credit balance for user %d: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected crediting user %d: %w", userID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Debit subtracts amount from the user's balance using the provided
// DBExecutor. The funds check lives in the WHERE clause, so two concurrent
// debits can never both pass against the same committed balance: the row
// update serializes them and the loser sees zero rows affected.
func (r *BalanceRepository) Debit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) error {
	query := `UPDATE balances SET amount = amount - $1, updated_at = $2 WHERE user_id = $3 AND amount >= $1`
	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to debit balance for user %d: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected debiting user %d: %w", userID, err)
	}
	if rowsAffected == 0 {
		return util.ErrInsufficientFunds
	}
	return nil
}
