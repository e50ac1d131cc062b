// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"betledger/internal/api/middleware"
	"betledger/internal/api/types"
	"betledger/internal/domain"
	"betledger/internal/service"
	"betledger/internal/util"
)

// WalletHandler handles HTTP requests related to wallet operations. All
// routes act on the authenticated user from the request context.
type WalletHandler struct {
	service service.WalletService
	logger  *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateUserRequest represents the request body for user provisioning.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// CreateUser provisions a user with a zero balance. Admin only.
// POST /admin/users
func (h *WalletHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Username == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	user, balance, err := h.service.CreateUserAndBalance(r.Context(), req.Username)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"balance":  balance.Amount,
	})
}

// AmountRequest represents the request body for deposit and withdraw.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit handles the deposit money request.
// POST /wallet/deposit
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	// Basic validation
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	balance, entry, err := h.service.Deposit(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":     "Deposit successful",
		"new_balance": balance.Amount,
		"entry_id":    entry.ID,
	})
}

// Withdraw handles the withdraw money request.
// POST /wallet/withdraw
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	// Basic validation
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	balance, entry, err := h.service.Withdraw(r.Context(), userID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":     "Withdrawal successful",
		"new_balance": balance.Amount,
		"entry_id":    entry.ID,
	})
}

// GetBalance handles the get balance request.
// GET /wallet
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"user_id": balance.UserID,
		"balance": balance.Amount,
	})
}

// GetBalanceEntries handles the get balance journal request.
// GET /wallet/entries
func (h *WalletHandler) GetBalanceEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	limit, offset := paginationParams(r)

	entries, totalCount, err := h.service.GetBalanceEntries(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.BalanceEntry]{
		Data:       entries,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}
