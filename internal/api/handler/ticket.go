// internal/api/handler/ticket.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"betledger/internal/api/middleware"
	"betledger/internal/api/types"
	"betledger/internal/domain"
	"betledger/internal/service"
	"betledger/internal/util"
)

// TicketHandler handles HTTP requests related to ticket placement and
// settlement.
type TicketHandler struct {
	service service.BettingService
	logger  *slog.Logger
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(svc service.BettingService, logger *slog.Logger) *TicketHandler {
	return &TicketHandler{
		service: svc,
		logger:  logger,
	}
}

// PlaceTicketRequest represents the request body for ticket placement.
type PlaceTicketRequest struct {
	Stake decimal.Decimal      `json:"stake"`
	Legs  []service.LegRequest `json:"legs"`
}

// PlaceTicket handles the place ticket request for the authenticated user.
// POST /tickets
func (h *TicketHandler) PlaceTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req PlaceTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	ticket, err := h.service.PlaceTicket(r.Context(), userID, req.Stake, req.Legs)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message":          "Ticket placed",
		"ticket_id":        ticket.ID,
		"total_price":      ticket.TotalPrice,
		"potential_payout": ticket.PotentialPayout,
		"ticket":           ticket,
	})
}

// GetTicket handles the get ticket request. Owners see their own tickets;
// admins see any.
// GET /tickets/{ticketID}
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	ticketID := chi.URLParam(r, "ticketID")

	ticket, err := h.service.GetTicket(r.Context(), ticketID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if ticket.UserID != userID && middleware.RoleFromContext(r.Context()) != middleware.RoleAdmin {
		respondWithError(h.logger, w, util.ErrTicketNotFound)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, ticket)
}

// ListTickets handles the list tickets request for the authenticated user.
// GET /tickets
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	limit, offset := paginationParams(r)

	tickets, totalCount, err := h.service.GetUserTickets(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.Ticket]{
		Data:       tickets,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}

// CancelTicket handles the cancel ticket request. Cancellation refunds the
// stake through the same settlement path as an event void.
// POST /tickets/{ticketID}/cancel
func (h *TicketHandler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	ticketID := chi.URLParam(r, "ticketID")

	ticket, err := h.service.GetTicket(r.Context(), ticketID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	if ticket.UserID != userID && middleware.RoleFromContext(r.Context()) != middleware.RoleAdmin {
		respondWithError(h.logger, w, util.ErrTicketNotFound)
		return
	}

	canceled, err := h.service.CancelTicket(r.Context(), ticketID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Ticket canceled",
		"ticket":  canceled,
	})
}

// SettleTicketRequest represents the request body for settlement.
type SettleTicketRequest struct {
	Outcome string `json:"outcome"`
}

// SettleTicket handles the settle ticket request. Admin only; the outcome
// comes from an external results feed.
// POST /admin/tickets/{ticketID}/settle
func (h *TicketHandler) SettleTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketID")

	var req SettleTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	outcome, ok := domain.ParseOutcome(req.Outcome)
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	ticket, err := h.service.SettleTicket(r.Context(), ticketID, outcome)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Ticket settled",
		"ticket":  ticket,
	})
}

// DeleteTicket handles the delete ticket request. Admin only.
// DELETE /admin/tickets/{ticketID}
func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketID")

	if err := h.service.DeleteTicket(r.Context(), ticketID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Ticket deleted"})
}
