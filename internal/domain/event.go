// internal/domain/event.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus defines the lifecycle status of a sport event.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "UPCOMING"
	EventStatusLive      EventStatus = "LIVE"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCanceled  EventStatus = "CANCELED"
)

// SportEvent is a registry entry for a real-world event bets reference.
type SportEvent struct {
	ID           string      `db:"id" json:"id"`
	Sport        string      `db:"sport" json:"sport"`
	Name         string      `db:"name" json:"name"`
	Status       EventStatus `db:"status" json:"status"`
	CommenceTime time.Time   `db:"commence_time" json:"commence_time"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// NewSportEvent creates an upcoming SportEvent.
func NewSportEvent(sport, name string, commenceTime time.Time) *SportEvent {
	return &SportEvent{
		ID:           uuid.NewString(),
		Sport:        sport,
		Name:         name,
		Status:       EventStatusUpcoming,
		CommenceTime: commenceTime,
		CreatedAt:    time.Now().UTC(),
	}
}

// Biddable reports whether bets may still be placed against the event.
// Evaluated inside the placement transaction, never cached.
func (e *SportEvent) Biddable(now time.Time) bool {
	return e.Status == EventStatusUpcoming && e.CommenceTime.After(now)
}
