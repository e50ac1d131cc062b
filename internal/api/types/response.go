// internal/api/types/response.go
package types

// PaginatedResponse is the envelope for list endpoints such as ticket
// history and the balance journal. Limit and Offset echo the request
// parameters; TotalCount is the unpaginated row count so clients can page.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}
