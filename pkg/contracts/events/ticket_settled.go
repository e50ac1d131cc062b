// pkg/contracts/events/ticket_settled.go
package events

// TicketSettled is published after a settlement transaction commits.
// Credited is the amount returned to the user's balance: the stored payout
// on a win, the stake on a cancel, "0" on a loss.
type TicketSettled struct {
	TicketID string `json:"ticket_id"`
	UserID   int64  `json:"user_id"`
	Outcome  string `json:"outcome"`
	Credited string `json:"credited"`
	TsUnixMs int64  `json:"ts_unix_ms"`
}
