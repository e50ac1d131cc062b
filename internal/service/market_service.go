// internal/service/market_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"betledger/internal/cache"
	"betledger/internal/domain"
	"betledger/internal/repository"
	"betledger/internal/util"

	"github.com/shopspring/decimal"
)

// MarketService administers the event registry and the odds snapshot store.
// The core treats both as read-only collaborators; the write side here is
// the administrative surface that feeds them.
type MarketService interface {
	CreateEvent(ctx context.Context, sport, name string, commenceTime time.Time) (*domain.SportEvent, error)
	SetEventStatus(ctx context.Context, eventID string, status domain.EventStatus) error
	GetEvents(ctx context.Context, status *domain.EventStatus) ([]domain.SportEvent, error)
	CreateOddsSnapshot(ctx context.Context, eventID string, market domain.MarketType, outcome string, price int, handicap, total decimal.NullDecimal) (*domain.OddsSnapshot, error)
	GetOddsSnapshot(ctx context.Context, id string) (*domain.OddsSnapshot, error)
	GetEventOdds(ctx context.Context, eventID string) ([]domain.OddsSnapshot, error)
}

// marketService implements the MarketService interface. Reads go through the
// odds cache when one is configured; a nil cache is a permanent miss.
type marketService struct {
	dbExecutor repository.DBExecutor
	eventRepo  repository.EventRepository
	oddsRepo   repository.OddsRepository
	oddsCache  *cache.OddsCache
	logger     *slog.Logger
}

// NewMarketService creates a new instance of MarketService.
func NewMarketService(
	dbExecutor repository.DBExecutor,
	eventRepo repository.EventRepository,
	oddsRepo repository.OddsRepository,
	oddsCache *cache.OddsCache,
	logger *slog.Logger,
) MarketService {
	return &marketService{
		dbExecutor: dbExecutor,
		eventRepo:  eventRepo,
		oddsRepo:   oddsRepo,
		oddsCache:  oddsCache,
		logger:     logger,
	}
}

// CreateEvent registers an upcoming sport event.
func (s *marketService) CreateEvent(ctx context.Context, sport, name string, commenceTime time.Time) (*domain.SportEvent, error) {
	if sport == "" || name == "" || commenceTime.IsZero() {
		return nil, util.ErrInvalidInput
	}
	event := domain.NewSportEvent(sport, name, commenceTime)
	if err := s.eventRepo.CreateEvent(ctx, s.dbExecutor, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// SetEventStatus updates an event's lifecycle status.
func (s *marketService) SetEventStatus(ctx context.Context, eventID string, status domain.EventStatus) error {
	switch status {
	case domain.EventStatusUpcoming, domain.EventStatusLive, domain.EventStatusCompleted, domain.EventStatusCanceled:
	default:
		return util.ErrInvalidInput
	}
	if err := s.eventRepo.SetEventStatus(ctx, s.dbExecutor, eventID, status); err != nil {
		return fmt.Errorf("set event status: %w", err)
	}
	return nil
}

// GetEvents retrieves events, optionally filtered by status.
func (s *marketService) GetEvents(ctx context.Context, status *domain.EventStatus) ([]domain.SportEvent, error) {
	events, err := s.eventRepo.GetEvents(ctx, s.dbExecutor, status)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	return events, nil
}

// CreateOddsSnapshot quotes a new immutable price for an event outcome.
// Existing snapshots are never updated; a price move is a new snapshot.
func (s *marketService) CreateOddsSnapshot(ctx context.Context, eventID string, market domain.MarketType, outcome string, price int, handicap, total decimal.NullDecimal) (*domain.OddsSnapshot, error) {
	switch market {
	case domain.MarketH2H, domain.MarketSpread, domain.MarketTotals:
	default:
		return nil, util.ErrInvalidInput
	}
	if outcome == "" {
		return nil, util.ErrInvalidInput
	}
	if _, err := s.eventRepo.GetEventByID(ctx, s.dbExecutor, eventID); err != nil {
		return nil, fmt.Errorf("create odds snapshot: failed to get event %s: %w", eventID, err)
	}

	snapshot := domain.NewOddsSnapshot(eventID, market, outcome, price, handicap, total)
	if err := s.oddsRepo.CreateSnapshot(ctx, s.dbExecutor, snapshot); err != nil {
		return nil, fmt.Errorf("create odds snapshot: %w", err)
	}
	return snapshot, nil
}

// GetOddsSnapshot retrieves a snapshot, read-through cached by id. Safe to
// cache indefinitely within the TTL since snapshots never change.
func (s *marketService) GetOddsSnapshot(ctx context.Context, id string) (*domain.OddsSnapshot, error) {
	var cached domain.OddsSnapshot
	hit, err := s.oddsCache.GetSnapshot(ctx, id, &cached)
	if err != nil {
		s.logger.Warn("Odds cache read failed", "snapshot_id", id, "error", err)
	}
	if hit {
		return &cached, nil
	}

	snapshot, err := s.oddsRepo.GetSnapshotByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get odds snapshot: %w", err)
	}
	if err := s.oddsCache.SetSnapshot(ctx, id, snapshot); err != nil {
		s.logger.Warn("Odds cache write failed", "snapshot_id", id, "error", err)
	}
	return snapshot, nil
}

// GetEventOdds retrieves all snapshots quoted for an event, cached briefly.
func (s *marketService) GetEventOdds(ctx context.Context, eventID string) ([]domain.OddsSnapshot, error) {
	var cached []domain.OddsSnapshot
	hit, err := s.oddsCache.GetEventOdds(ctx, eventID, &cached)
	if err != nil {
		s.logger.Warn("Odds cache read failed", "event_id", eventID, "error", err)
	}
	if hit {
		return cached, nil
	}

	if _, err := s.eventRepo.GetEventByID(ctx, s.dbExecutor, eventID); err != nil {
		return nil, fmt.Errorf("get event odds: failed to get event %s: %w", eventID, err)
	}
	snapshots, err := s.oddsRepo.GetSnapshotsByEventID(ctx, s.dbExecutor, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event odds: %w", err)
	}
	if err := s.oddsCache.SetEventOdds(ctx, eventID, snapshots); err != nil {
		s.logger.Warn("Odds cache write failed", "event_id", eventID, "error", err)
	}
	return snapshots, nil
}
