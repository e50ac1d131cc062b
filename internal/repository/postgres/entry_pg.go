// internal/repository/postgres/entry_pg.go
package postgres

import (
	"context"
	"fmt"

	"betledger/internal/domain"
	"betledger/internal/repository"

	"github.com/jmoiron/sqlx"
)

// EntryRepository implements repository.EntryRepository for PostgreSQL.
type EntryRepository struct{}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db *sqlx.DB) repository.EntryRepository {
	return &EntryRepository{}
}

// CreateEntry inserts a balance journal row using the provided DBExecutor.
func (r *EntryRepository) CreateEntry(ctx context.Context, q repository.DBExecutor, entry *domain.BalanceEntry) error {
	query := `INSERT INTO balance_entries (user_id, ticket_id, amount, kind, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		entry.UserID,
		entry.TicketID,
		entry.Amount,
		entry.Kind,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to create balance entry: %w", err)
	}
	return nil
}

// GetEntriesByUserID retrieves a paginated journal for a user, newest first,
// along with the total row count.
func (r *EntryRepository) GetEntriesByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit, offset int) ([]domain.BalanceEntry, int64, error) {
	entries := []domain.BalanceEntry{}

	query := `
		SELECT id, user_id, ticket_id, amount, kind, created_at
		FROM balance_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &entries, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch balance entries for user %d: %w", userID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM balance_entries WHERE user_id = $1`
	if err := q.GetContext(ctx, &totalCount, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count balance entries for user %d: %w", userID, err)
	}

	return entries, totalCount, nil
}
