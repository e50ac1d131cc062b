// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"betledger/internal/api/handler"
	"betledger/internal/api/middleware"
)

// NewRouter sets up and returns a new HTTP router. Market reads are public,
// wallet and ticket routes require a bearer token, and registry writes plus
// settlement require the admin role.
func NewRouter(
	ticketHandler *handler.TicketHandler,
	walletHandler *handler.WalletHandler,
	marketHandler *handler.MarketHandler,
	jwtSecret []byte,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public market reads
	r.Get("/events", marketHandler.ListEvents)
	r.Get("/events/{eventID}/odds", marketHandler.GetEventOdds)
	r.Get("/odds/{snapshotID}", marketHandler.GetOddsSnapshot)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(jwtSecret))

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", walletHandler.GetBalance)
			r.Get("/entries", walletHandler.GetBalanceEntries)
			r.Post("/deposit", walletHandler.Deposit)
			r.Post("/withdraw", walletHandler.Withdraw)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Post("/", ticketHandler.PlaceTicket)
			r.Get("/", ticketHandler.ListTickets)
			r.Get("/{ticketID}", ticketHandler.GetTicket)
			r.Post("/{ticketID}/cancel", ticketHandler.CancelTicket)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/users", walletHandler.CreateUser)
			r.Post("/events", marketHandler.CreateEvent)
			r.Post("/events/{eventID}/status", marketHandler.SetEventStatus)
			r.Post("/events/{eventID}/odds", marketHandler.CreateOddsSnapshot)
			r.Post("/tickets/{ticketID}/settle", ticketHandler.SettleTicket)
			r.Delete("/tickets/{ticketID}", ticketHandler.DeleteTicket)
		})
	})

	return r
}
