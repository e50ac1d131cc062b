// pkg/contracts/topics/topics.go
package topics

const (
	TicketPlaced  = "ticket_placed"
	TicketSettled = "ticket_settled"
)
