// internal/api/handler/common.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"betledger/internal/util"
)

// DefaultTimeout is the per-request timeout applied by the router.
const DefaultTimeout = 60 * time.Second

// Helper function to send JSON responses.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error() // Use the error message directly for invalid input
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrTicketNotFound), util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = "Insufficient funds"
	case util.IsError(err, util.ErrOddsChanged):
		statusCode = http.StatusConflict
		message = "Odds have changed since the quote"
	case util.IsError(err, util.ErrEventAlreadyStarted):
		statusCode = http.StatusConflict
		message = "Event has already started"
	case util.IsError(err, util.ErrIllegalTransition):
		statusCode = http.StatusConflict
		message = "Ticket is already settled"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Resource already exists"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, map[string]string{"error": message})
}

// Parse query parameters for pagination.
func paginationParams(r *http.Request) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10 // Default limit
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // Default offset
	}
	return limit, offset
}
