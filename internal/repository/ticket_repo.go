// internal/repository/ticket_repo.go
package repository

import (
	"context"
	"time"

	"betledger/internal/domain"
)

// TicketRepository defines the interface for bet ticket data operations.
type TicketRepository interface {
	// CreateTicket inserts the ticket and all of its legs.
	CreateTicket(ctx context.Context, q DBExecutor, ticket *domain.Ticket) error
	// GetTicketByID retrieves a ticket with its legs.
	GetTicketByID(ctx context.Context, q DBExecutor, id string) (*domain.Ticket, error)
	// TransitionStatus atomically moves a ticket from PENDING to the given
	// terminal status. It returns false when the ticket was not pending, in
	// which case the caller decides between a no-op and an illegal
	// transition by re-reading the row.
	TransitionStatus(ctx context.Context, q DBExecutor, id string, to domain.TicketStatus, settledAt time.Time) (bool, error)
	// SetLegStatuses cascades a status onto every leg of the ticket.
	SetLegStatuses(ctx context.Context, q DBExecutor, ticketID string, status domain.TicketStatus) error
	// DeleteTicket removes the ticket and its legs, conditional on the
	// ticket still being PENDING or CANCELED. Zero rows affected surfaces
	// as util.ErrNotFound.
	DeleteTicket(ctx context.Context, q DBExecutor, id string) error
	// GetTicketsByUserID retrieves a paginated list of a user's tickets
	// (without legs) together with the total count.
	GetTicketsByUserID(ctx context.Context, q DBExecutor, userID int64, limit, offset int) ([]domain.Ticket, int64, error)
}
