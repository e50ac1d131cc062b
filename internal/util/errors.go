// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrOddsChanged         = errors.New("odds changed since quote")
	ErrEventAlreadyStarted = errors.New("event already started")
	ErrIllegalTransition   = errors.New("illegal ticket status transition")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateEntry      = errors.New("duplicate entry")
)

// IsError reports whether err wraps the given sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
