// internal/api/handler/market.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"betledger/internal/domain"
	"betledger/internal/service"
	"betledger/internal/util"
)

// MarketHandler handles HTTP requests for the event registry and the odds
// snapshot store. Reads are public; writes are admin only.
type MarketHandler struct {
	service service.MarketService
	logger  *slog.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(svc service.MarketService, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateEventRequest represents the request body for event creation.
type CreateEventRequest struct {
	Sport        string    `json:"sport"`
	Name         string    `json:"name"`
	CommenceTime time.Time `json:"commence_time"`
}

// CreateEvent handles the create event request.
// POST /admin/events
func (h *MarketHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), req.Sport, req.Name, req.CommenceTime)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, event)
}

// SetEventStatusRequest represents the request body for status updates.
type SetEventStatusRequest struct {
	Status string `json:"status"`
}

// SetEventStatus handles the event status update request.
// POST /admin/events/{eventID}/status
func (h *MarketHandler) SetEventStatus(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	var req SetEventStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.SetEventStatus(r.Context(), eventID, domain.EventStatus(req.Status)); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Event status updated"})
}

// ListEvents handles the list events request, optionally filtered by status.
// GET /events?status=UPCOMING
func (h *MarketHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	var status *domain.EventStatus
	if s := r.URL.Query().Get("status"); s != "" {
		es := domain.EventStatus(s)
		status = &es
	}

	events, err := h.service.GetEvents(r.Context(), status)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": events})
}

// CreateOddsSnapshotRequest represents the request body for quoting odds.
type CreateOddsSnapshotRequest struct {
	Market   string              `json:"market"`
	Outcome  string              `json:"outcome"`
	Price    int                 `json:"price"`
	Handicap decimal.NullDecimal `json:"handicap"`
	Total    decimal.NullDecimal `json:"total"`
}

// CreateOddsSnapshot handles the quote odds request. Snapshots are
// immutable; a price move is a new snapshot.
// POST /admin/events/{eventID}/odds
func (h *MarketHandler) CreateOddsSnapshot(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	var req CreateOddsSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	snapshot, err := h.service.CreateOddsSnapshot(r.Context(), eventID, domain.MarketType(req.Market), req.Outcome, req.Price, req.Handicap, req.Total)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, snapshot)
}

// GetEventOdds handles the list odds for an event request.
// GET /events/{eventID}/odds
func (h *MarketHandler) GetEventOdds(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	snapshots, err := h.service.GetEventOdds(r.Context(), eventID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": snapshots})
}

// GetOddsSnapshot handles the get single odds snapshot request.
// GET /odds/{snapshotID}
func (h *MarketHandler) GetOddsSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshotID := chi.URLParam(r, "snapshotID")

	snapshot, err := h.service.GetOddsSnapshot(r.Context(), snapshotID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, snapshot)
}
