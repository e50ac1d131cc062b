// internal/repository/postgres/ticket_pg.go
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
)

// TicketRepository implements repository.TicketRepository for PostgreSQL.
type TicketRepository struct{}

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(db *sqlx.DB) repository.TicketRepository {
	return &TicketRepository{}
}

// CreateTicket inserts the ticket and its legs using the provided DBExecutor.
// Caller is expected to run this inside the placement transaction.
func (r *TicketRepository) CreateTicket(ctx context.Context, q repository.DBExecutor, ticket *domain.Ticket) error {
	ticketQuery := `INSERT INTO tickets (id, user_id, stake, total_price, potential_payout, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, ticketQuery,
		ticket.ID,
		ticket.UserID,
		ticket.Stake,
		ticket.TotalPrice,
		ticket.PotentialPayout,
		ticket.Status,
		ticket.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	legQuery := `INSERT INTO ticket_legs (id, ticket_id, event_id, odds_snapshot_id, market, outcome, price, handicap, total, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i := range ticket.Legs {
		leg := &ticket.Legs[i]
		if _, err := q.ExecContext(ctx, legQuery,
			leg.ID,
			leg.TicketID,
			leg.EventID,
			leg.OddsSnapshotID,
			leg.Market,
			leg.Outcome,
			leg.Price,
			leg.Handicap,
			leg.Total,
			leg.Status,
			leg.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to create ticket leg %s: %w", leg.ID, err)
		}
	}
	return nil
}

// GetTicketByID retrieves a ticket with its legs using the provided DBExecutor.
func (r *TicketRepository) GetTicketByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	query := `SELECT id, user_id, stake, total_price, potential_payout, status, created_at, settled_at
              FROM tickets WHERE id = $1`
	err := q.GetContext(ctx, &ticket, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket %s: %w", id, err)
	}

	legs := []domain.TicketLeg{}
	legQuery := `SELECT id, ticket_id, event_id, odds_snapshot_id, market, outcome, price, handicap, total, status, created_at
              FROM ticket_legs WHERE ticket_id = $1 ORDER BY created_at, id`
	if err := q.SelectContext(ctx, &legs, legQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get legs for ticket %s: %w", id, err)
	}
	ticket.Legs = legs
	return &ticket, nil
}

// TransitionStatus performs the exactly-once PENDING -> terminal update. The
// status guard lives in the WHERE clause, so only one of any number of
// concurrent settlement attempts observes rows-affected == 1.
func (r *TicketRepository) TransitionStatus(ctx context.Context, q repository.DBExecutor, id string, to domain.TicketStatus, settledAt time.Time) (bool, error) {
	query := `UPDATE tickets SET status = $1, settled_at = $2 WHERE id = $3 AND status = $4`
	result, err := q.ExecContext(ctx, query, to, settledAt, id, domain.TicketStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to transition ticket %s to %s: %w", id, to, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected transitioning ticket %s: %w", id, err)
	}
	return rowsAffected == 1, nil
}

// SetLegStatuses cascades a status onto every leg of the ticket.
func (r *TicketRepository) SetLegStatuses(ctx context.Context, q repository.DBExecutor, ticketID string, status domain.TicketStatus) error {
	query := `UPDATE ticket_legs SET status = $1 WHERE ticket_id = $2`
	if _, err := q.ExecContext(ctx, query, status, ticketID); err != nil {
		return fmt.Errorf("failed to set leg statuses for ticket %s: %w", ticketID, err)
	}
	return nil
}

// DeleteTicket removes the ticket and its legs. The status predicate makes
// the lifecycle precondition part of the write itself, so a ticket that
// became WON or LOST after the caller's read survives: zero rows affected,
// the caller's transaction rolls the leg deletes back.
func (r *TicketRepository) DeleteTicket(ctx context.Context, q repository.DBExecutor, id string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM ticket_legs WHERE ticket_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete legs for ticket %s: %w", id, err)
	}
	result, err := q.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1 AND status IN ($2, $3)`,
		id, domain.TicketStatusPending, domain.TicketStatusCanceled)
	if err != nil {
		return fmt.Errorf("failed to delete ticket %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected deleting ticket %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// GetTicketsByUserID retrieves a paginated list of a user's tickets, newest
// first, without legs, along with the total count.
func (r *TicketRepository) GetTicketsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit, offset int) ([]domain.Ticket, int64, error) {
	tickets := []domain.Ticket{}
	query := `
		SELECT id, user_id, stake, total_price, potential_payout, status, created_at, settled_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &tickets, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tickets for user %d: %w", userID, err)
	}

	var totalCount int64
	if err := q.GetContext(ctx, &totalCount, `SELECT COUNT(*) FROM tickets WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets for user %d: %w", userID, err)
	}
	return tickets, totalCount, nil
}
