// pkg/contracts/events/ticket_placed.go
package events

// TicketPlaced is published after a placement transaction commits.
// Monetary fields are decimal strings to keep consumers off floating point.
type TicketPlaced struct {
	TicketID        string   `json:"ticket_id"`
	UserID          int64    `json:"user_id"`
	Stake           string   `json:"stake"`
	TotalPrice      string   `json:"total_price"`
	PotentialPayout string   `json:"potential_payout"`
	EventIDs        []string `json:"event_ids"`
	LegCount        int      `json:"leg_count"`
	TsUnixMs        int64    `json:"ts_unix_ms"`
}
