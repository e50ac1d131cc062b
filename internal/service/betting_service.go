// internal/service/betting_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"betledger/internal/domain"
	"betledger/internal/events"
	"betledger/internal/metrics"
	"betledger/internal/repository"
	"betledger/internal/util"
	contracts "betledger/pkg/contracts/events"
	"betledger/pkg/db"

	"github.com/shopspring/decimal"
)

// LegRequest is one selection in a placement request. DeclaredPrice is the
// price the client saw when quoting; placement rejects the whole ticket if
// the snapshot's recorded price no longer matches it.
type LegRequest struct {
	EventID        string `json:"event_id"`
	OddsSnapshotID string `json:"odds_snapshot_id"`
	DeclaredPrice  int    `json:"declared_price"`
}

// BettingService defines the wagering ledger's business logic: the placement
// transaction and the settlement state machine.
type BettingService interface {
	PlaceTicket(ctx context.Context, userID int64, stake decimal.Decimal, legs []LegRequest) (*domain.Ticket, error)
	SettleTicket(ctx context.Context, ticketID string, outcome domain.TicketStatus) (*domain.Ticket, error)
	CancelTicket(ctx context.Context, ticketID string) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, ticketID string) error
	GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error)
	GetUserTickets(ctx context.Context, userID int64, limit, offset int) ([]domain.Ticket, int64, error)
}

// bettingService implements the BettingService interface.
type bettingService struct {
	dbBeginner  db.DBTxBeginner
	dbExecutor  repository.DBExecutor
	balanceRepo repository.BalanceRepository
	entryRepo   repository.EntryRepository
	ticketRepo  repository.TicketRepository
	eventRepo   repository.EventRepository
	oddsRepo    repository.OddsRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
	producer    *events.Producer
	logger      *slog.Logger
}

// NewBettingService creates a new instance of BettingService.
func NewBettingService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	balanceRepo repository.BalanceRepository,
	entryRepo repository.EntryRepository,
	ticketRepo repository.TicketRepository,
	eventRepo repository.EventRepository,
	oddsRepo repository.OddsRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	producer *events.Producer,
	logger *slog.Logger,
) BettingService {
	return &bettingService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		balanceRepo: balanceRepo,
		entryRepo:   entryRepo,
		ticketRepo:  ticketRepo,
		eventRepo:   eventRepo,
		oddsRepo:    oddsRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
		producer:    producer,
		logger:      logger,
	}
}

// PlaceTicket runs the placement transaction: validates every leg against its
// odds snapshot and event, computes the combined price and potential payout,
// debits the stake and inserts the pending ticket as one atomic commit. On
// any precondition failure no writes occur.
func (s *bettingService) PlaceTicket(ctx context.Context, userID int64, stake decimal.Decimal, legs []LegRequest) (*domain.Ticket, error) {
	// Input validation happens before any store access.
	if stake.LessThanOrEqual(decimal.Zero) {
		metrics.PlacementsRejected.WithLabelValues("invalid_input").Inc()
		return nil, util.ErrInvalidInput
	}
	if len(legs) == 0 {
		metrics.PlacementsRejected.WithLabelValues("invalid_input").Inc()
		return nil, util.ErrInvalidInput
	}
	for _, leg := range legs {
		if leg.EventID == "" || leg.OddsSnapshotID == "" {
			metrics.PlacementsRejected.WithLabelValues("invalid_input").Inc()
			return nil, util.ErrInvalidInput
		}
	}

	started := time.Now()
	ticket, err := s.placeTicketTx(ctx, userID, stake, legs)
	if err != nil {
		metrics.PlacementsRejected.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}
	metrics.PlacementDuration.Observe(time.Since(started).Seconds())
	metrics.TicketsPlaced.Inc()

	eventIDs := make([]string, len(ticket.Legs))
	for i, leg := range ticket.Legs {
		eventIDs[i] = leg.EventID
	}
	if err := s.producer.PublishTicketPlaced(ctx, contracts.TicketPlaced{
		TicketID:        ticket.ID,
		UserID:          ticket.UserID,
		Stake:           ticket.Stake.String(),
		TotalPrice:      ticket.TotalPrice.String(),
		PotentialPayout: ticket.PotentialPayout.String(),
		EventIDs:        eventIDs,
		LegCount:        len(ticket.Legs),
	}); err != nil {
		s.logger.Warn("Failed to publish ticket placed event", "ticket_id", ticket.ID, "error", err)
	}

	return ticket, nil
}

func (s *bettingService) placeTicketTx(ctx context.Context, userID int64, stake decimal.Decimal, legs []LegRequest) (*domain.Ticket, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("place ticket: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("place ticket: transaction controller does not implement DBExecutor")
	}

	now := time.Now().UTC()
	frozen := make([]domain.TicketLeg, 0, len(legs))
	eventsSeen := make(map[string]*domain.SportEvent)

	for _, leg := range legs {
		snapshot, err := s.oddsRepo.GetSnapshotByID(ctx, txExecutor, leg.OddsSnapshotID)
		if err != nil {
			return nil, fmt.Errorf("place ticket: failed to get odds snapshot %s: %w", leg.OddsSnapshotID, err)
		}
		if snapshot.EventID != leg.EventID {
			return nil, fmt.Errorf("place ticket: snapshot %s does not belong to event %s: %w", leg.OddsSnapshotID, leg.EventID, util.ErrInvalidInput)
		}
		// A stale client quoting an outdated price is rejected, never
		// silently re-priced.
		if snapshot.Price != leg.DeclaredPrice {
			return nil, fmt.Errorf("place ticket: snapshot %s quotes %d, caller declared %d: %w", snapshot.ID, snapshot.Price, leg.DeclaredPrice, util.ErrOddsChanged)
		}

		event, seen := eventsSeen[leg.EventID]
		if !seen {
			event, err = s.eventRepo.GetEventByID(ctx, txExecutor, leg.EventID)
			if err != nil {
				return nil, fmt.Errorf("place ticket: failed to get event %s: %w", leg.EventID, err)
			}
			eventsSeen[leg.EventID] = event
		}
		if !event.Biddable(now) {
			return nil, fmt.Errorf("place ticket: event %s is not biddable: %w", event.ID, util.ErrEventAlreadyStarted)
		}

		frozen = append(frozen, domain.TicketLeg{
			EventID:        snapshot.EventID,
			OddsSnapshotID: snapshot.ID,
			Market:         snapshot.Market,
			Outcome:        snapshot.Outcome,
			Price:          snapshot.Price,
			Handicap:       snapshot.Handicap,
			Total:          snapshot.Total,
		})
	}

	// Balance existence is checked first so an unknown user surfaces as
	// not-found; the funds check itself lives inside the conditional debit.
	if _, err := s.balanceRepo.GetBalanceByUserID(ctx, txExecutor, userID); err != nil {
		return nil, fmt.Errorf("place ticket: failed to get balance for user %d: %w", userID, err)
	}
	if err := s.balanceRepo.Debit(ctx, txExecutor, userID, stake); err != nil {
		return nil, fmt.Errorf("place ticket: failed to debit stake for user %d: %w", userID, err)
	}

	ticket := domain.NewTicket(userID, stake, frozen)
	if err := s.ticketRepo.CreateTicket(ctx, txExecutor, ticket); err != nil {
		return nil, fmt.Errorf("place ticket: failed to create ticket: %w", err)
	}

	entry := domain.NewBalanceEntry(userID, &ticket.ID, stake.Neg(), domain.EntryKindStake)
	if err := s.entryRepo.CreateEntry(ctx, txExecutor, entry); err != nil {
		return nil, fmt.Errorf("place ticket: failed to create stake entry: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("place ticket: failed to commit transaction: %w", err)
	}
	return ticket, nil
}

// SettleTicket applies an externally decided outcome to a pending ticket.
// The status write, the leg cascade and the balance credit commit as one
// atomic unit, exactly once. Re-settling a ticket with the outcome it
// already has is a no-op returning the current state; settling a terminal
// ticket to a different terminal state is an illegal transition.
func (s *bettingService) SettleTicket(ctx context.Context, ticketID string, outcome domain.TicketStatus) (*domain.Ticket, error) {
	if !outcome.Terminal() {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("settle ticket: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("settle ticket: transaction controller does not implement DBExecutor")
	}

	ticket, err := s.ticketRepo.GetTicketByID(ctx, txExecutor, ticketID)
	if err != nil {
		return nil, fmt.Errorf("settle ticket: failed to get ticket %s: %w", ticketID, err)
	}

	settledAt := time.Now().UTC()
	transitioned, err := s.ticketRepo.TransitionStatus(ctx, txExecutor, ticketID, outcome, settledAt)
	if err != nil {
		return nil, fmt.Errorf("settle ticket: failed to transition ticket %s: %w", ticketID, err)
	}

	if !transitioned {
		// The ticket was not pending, either all along or because a
		// concurrent settlement won the conditional update. Re-read to
		// decide between a duplicate signal and an illegal transition.
		current, err := s.ticketRepo.GetTicketByID(ctx, txExecutor, ticketID)
		if err != nil {
			return nil, fmt.Errorf("settle ticket: failed to re-read ticket %s: %w", ticketID, err)
		}
		if current.Status == outcome {
			return current, nil // duplicate settlement signal, no balance effect
		}
		return nil, fmt.Errorf("settle ticket: ticket %s is %s, cannot become %s: %w", ticketID, current.Status, outcome, util.ErrIllegalTransition)
	}

	if err := s.ticketRepo.SetLegStatuses(ctx, txExecutor, ticketID, outcome); err != nil {
		return nil, fmt.Errorf("settle ticket: failed to cascade leg statuses for %s: %w", ticketID, err)
	}

	credit := ticket.SettlementCredit(outcome)
	if credit.IsPositive() {
		if err := s.balanceRepo.Credit(ctx, txExecutor, ticket.UserID, credit); err != nil {
			return nil, fmt.Errorf("settle ticket: failed to credit user %d: %w", ticket.UserID, err)
		}
		kind := domain.EntryKindPayout
		if outcome == domain.TicketStatusCanceled {
			kind = domain.EntryKindRefund
		}
		entry := domain.NewBalanceEntry(ticket.UserID, &ticket.ID, credit, kind)
		if err := s.entryRepo.CreateEntry(ctx, txExecutor, entry); err != nil {
			return nil, fmt.Errorf("settle ticket: failed to create %s entry: %w", kind, err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("settle ticket: failed to commit transaction: %w", err)
	}

	metrics.TicketsSettled.WithLabelValues(string(outcome)).Inc()

	ticket.Status = outcome
	ticket.SettledAt = &settledAt
	for i := range ticket.Legs {
		ticket.Legs[i].Status = outcome
	}

	if err := s.producer.PublishTicketSettled(ctx, contracts.TicketSettled{
		TicketID: ticket.ID,
		UserID:   ticket.UserID,
		Outcome:  string(outcome),
		Credited: credit.String(),
	}); err != nil {
		s.logger.Warn("Failed to publish ticket settled event", "ticket_id", ticket.ID, "error", err)
	}

	return ticket, nil
}

// CancelTicket is an alias for settling the ticket as canceled, restoring
// the stake. Permitted only while the ticket is pending.
func (s *bettingService) CancelTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.SettleTicket(ctx, ticketID, domain.TicketStatusCanceled)
}

// DeleteTicket physically removes a ticket. Permitted only while the ticket
// is pending or canceled and no leg's event has started; deleting a pending
// ticket refunds its stake in the same transaction so the ledger stays
// conserved. The refund is keyed to the same conditional PENDING update that
// settlement uses, so a settlement racing this call either wins the row first
// (the delete fails with an illegal transition) or waits and finds the ticket
// gone; the stake and a payout can never both be credited.
func (s *bettingService) DeleteTicket(ctx context.Context, ticketID string) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete ticket: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete ticket: transaction controller does not implement DBExecutor")
	}

	ticket, err := s.ticketRepo.GetTicketByID(ctx, txExecutor, ticketID)
	if err != nil {
		return fmt.Errorf("delete ticket: failed to get ticket %s: %w", ticketID, err)
	}
	if !ticket.Deletable() {
		return fmt.Errorf("delete ticket: ticket %s is %s: %w", ticketID, ticket.Status, util.ErrIllegalTransition)
	}

	now := time.Now().UTC()
	for _, leg := range ticket.Legs {
		event, err := s.eventRepo.GetEventByID(ctx, txExecutor, leg.EventID)
		if err != nil {
			return fmt.Errorf("delete ticket: failed to get event %s: %w", leg.EventID, err)
		}
		if !event.CommenceTime.After(now) {
			return fmt.Errorf("delete ticket: event %s has started: %w", event.ID, util.ErrEventAlreadyStarted)
		}
	}

	if ticket.Status == domain.TicketStatusPending {
		// Flip PENDING -> CANCELED through the conditional update; winning
		// it locks the row and proves no settlement credited this ticket.
		transitioned, err := s.ticketRepo.TransitionStatus(ctx, txExecutor, ticketID, domain.TicketStatusCanceled, now)
		if err != nil {
			return fmt.Errorf("delete ticket: failed to transition ticket %s: %w", ticketID, err)
		}
		if transitioned {
			if err := s.balanceRepo.Credit(ctx, txExecutor, ticket.UserID, ticket.Stake); err != nil {
				return fmt.Errorf("delete ticket: failed to refund stake to user %d: %w", ticket.UserID, err)
			}
			entry := domain.NewBalanceEntry(ticket.UserID, &ticket.ID, ticket.Stake, domain.EntryKindRefund)
			if err := s.entryRepo.CreateEntry(ctx, txExecutor, entry); err != nil {
				return fmt.Errorf("delete ticket: failed to create refund entry: %w", err)
			}
		} else {
			// A concurrent settlement or cancel got there first. Re-read:
			// CANCELED means the stake is already back and deletion may
			// proceed; WON or LOST means the ticket is no longer deletable.
			current, err := s.ticketRepo.GetTicketByID(ctx, txExecutor, ticketID)
			if err != nil {
				return fmt.Errorf("delete ticket: failed to re-read ticket %s: %w", ticketID, err)
			}
			if !current.Deletable() {
				return fmt.Errorf("delete ticket: ticket %s is %s: %w", ticketID, current.Status, util.ErrIllegalTransition)
			}
		}
	}

	if err := s.ticketRepo.DeleteTicket(ctx, txExecutor, ticketID); err != nil {
		return fmt.Errorf("delete ticket: failed to delete ticket %s: %w", ticketID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete ticket: failed to commit transaction: %w", err)
	}
	return nil
}

// GetTicket retrieves a ticket snapshot with its legs, outside any transaction.
func (s *bettingService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetTicketByID(ctx, s.dbExecutor, ticketID)
	if err != nil {
		return nil, fmt.Errorf("get ticket: failed to get ticket %s: %w", ticketID, err)
	}
	return ticket, nil
}

// GetUserTickets retrieves a paginated list of a user's tickets.
func (s *bettingService) GetUserTickets(ctx context.Context, userID int64, limit, offset int) ([]domain.Ticket, int64, error) {
	tickets, totalCount, err := s.ticketRepo.GetTicketsByUserID(ctx, s.dbExecutor, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get user tickets: %w", err)
	}
	return tickets, totalCount, nil
}

// rejectionReason maps a placement error onto a metrics label.
func rejectionReason(err error) string {
	switch {
	case util.IsError(err, util.ErrInsufficientFunds):
		return "insufficient_funds"
	case util.IsError(err, util.ErrOddsChanged):
		return "odds_changed"
	case util.IsError(err, util.ErrEventAlreadyStarted):
		return "event_started"
	case util.IsError(err, util.ErrNotFound):
		return "not_found"
	case util.IsError(err, util.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
