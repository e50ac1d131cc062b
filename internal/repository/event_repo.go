// internal/repository/event_repo.go
package repository

import (
	"context"

	"betledger/internal/domain"
)

// EventRepository defines the interface for sport event registry operations.
type EventRepository interface {
	// CreateEvent adds a new sport event.
	CreateEvent(ctx context.Context, q DBExecutor, event *domain.SportEvent) error
	// GetEventByID retrieves an event by id.
	GetEventByID(ctx context.Context, q DBExecutor, id string) (*domain.SportEvent, error)
	// SetEventStatus updates an event's lifecycle status.
	SetEventStatus(ctx context.Context, q DBExecutor, id string, status domain.EventStatus) error
	// GetEvents retrieves events, optionally filtered by status.
	GetEvents(ctx context.Context, q DBExecutor, status *domain.EventStatus) ([]domain.SportEvent, error)
}

// OddsRepository defines the interface for odds snapshot operations.
// Snapshots are insert-only; there is deliberately no update method.
type OddsRepository interface {
	// CreateSnapshot adds a new odds snapshot.
	CreateSnapshot(ctx context.Context, q DBExecutor, snapshot *domain.OddsSnapshot) error
	// GetSnapshotByID retrieves a snapshot by id.
	GetSnapshotByID(ctx context.Context, q DBExecutor, id string) (*domain.OddsSnapshot, error)
	// GetSnapshotsByEventID retrieves all snapshots quoted for an event.
	GetSnapshotsByEventID(ctx context.Context, q DBExecutor, eventID string) ([]domain.OddsSnapshot, error)
}
