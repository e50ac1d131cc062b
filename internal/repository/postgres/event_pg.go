// internal/repository/postgres/event_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"betledger/internal/domain"
	"betledger/internal/repository"
	"betledger/internal/util"

	"github.com/jmoiron/sqlx"
)

// EventRepository implements repository.EventRepository for PostgreSQL.
type EventRepository struct{}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &EventRepository{}
}

// CreateEvent inserts a sport event using the provided DBExecutor.
func (r *EventRepository) CreateEvent(ctx context.Context, q repository.DBExecutor, event *domain.SportEvent) error {
	query := `INSERT INTO sport_events (id, sport, name, status, commence_time, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.ExecContext(ctx, query, event.ID, event.Sport, event.Name, event.Status, event.CommenceTime, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sport event: %w", err)
	}
	return nil
}

// GetEventByID retrieves an event by id using the provided DBExecutor.
func (r *EventRepository) GetEventByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.SportEvent, error) {
	var event domain.SportEvent
	query := `SELECT id, sport, name, status, commence_time, created_at FROM sport_events WHERE id = $1`
	err := q.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	return &event, nil
}

// SetEventStatus updates an event's lifecycle status.
func (r *EventRepository) SetEventStatus(ctx context.Context, q repository.DBExecutor, id string, status domain.EventStatus) error {
	result, err := q.ExecContext(ctx, `UPDATE sport_events SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set status for event %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected updating event %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// GetEvents retrieves events, optionally filtered by status, soonest first.
func (r *EventRepository) GetEvents(ctx context.Context, q repository.DBExecutor, status *domain.EventStatus) ([]domain.SportEvent, error) {
	events := []domain.SportEvent{}
	if status != nil {
		query := `SELECT id, sport, name, status, commence_time, created_at
              FROM sport_events WHERE status = $1 ORDER BY commence_time`
		if err := q.SelectContext(ctx, &events, query, *status); err != nil {
			return nil, fmt.Errorf("failed to fetch events with status %s: %w", *status, err)
		}
		return events, nil
	}
	query := `SELECT id, sport, name, status, commence_time, created_at FROM sport_events ORDER BY commence_time`
	if err := q.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// OddsRepository implements repository.OddsRepository for PostgreSQL.
// Snapshots are insert-only; prices quoted later become new snapshots.
type OddsRepository struct{}

// NewOddsRepository creates a new OddsRepository.
func NewOddsRepository(db *sqlx.DB) repository.OddsRepository {
	return &OddsRepository{}
}

// CreateSnapshot inserts an odds snapshot using the provided DBExecutor.
func (r *OddsRepository) CreateSnapshot(ctx context.Context, q repository.DBExecutor, snapshot *domain.OddsSnapshot) error {
	query := `INSERT INTO odds_snapshots (id, event_id, market, outcome, price, handicap, total, quoted_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.EventID,
		snapshot.Market,
		snapshot.Outcome,
		snapshot.Price,
		snapshot.Handicap,
		snapshot.Total,
		snapshot.QuotedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create odds snapshot: %w", err)
	}
	return nil
}

// GetSnapshotByID retrieves a snapshot by id using the provided DBExecutor.
func (r *OddsRepository) GetSnapshotByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.OddsSnapshot, error) {
	var snapshot domain.OddsSnapshot
	query := `SELECT id, event_id, market, outcome, price, handicap, total, quoted_at
              FROM odds_snapshots WHERE id = $1`
	err := q.GetContext(ctx, &snapshot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get odds snapshot %s: %w", id, err)
	}
	return &snapshot, nil
}

// GetSnapshotsByEventID retrieves all snapshots quoted for an event, newest
// quotes first.
func (r *OddsRepository) GetSnapshotsByEventID(ctx context.Context, q repository.DBExecutor, eventID string) ([]domain.OddsSnapshot, error) {
	snapshots := []domain.OddsSnapshot{}
	query := `SELECT id, event_id, market, outcome, price, handicap, total, quoted_at
              FROM odds_snapshots WHERE event_id = $1 ORDER BY quoted_at DESC, id`
	if err := q.SelectContext(ctx, &snapshots, query, eventID); err != nil {
		return nil, fmt.Errorf("failed to fetch odds snapshots for event %s: %w", eventID, err)
	}
	return snapshots, nil
}
