package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthenticationFailed signals an explicit rejection from the
	// authentication service, as opposed to a transport failure.
	ErrAuthenticationFailed = errors.New("invalid passkey")

	// ErrCheckoutInFlight is returned when a checkout is attempted while
	// another one is still outstanding.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

// ValidationError reports a locally recoverable precondition failure. No
// network call is made when one is raised.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// StockConflictError carries the product ids the order service reported as
// out of stock. The cart is left intact for manual correction.
type StockConflictError struct {
	ProductIDs []string
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("out of stock: %s", strings.Join(e.ProductIDs, ", "))
}

// ServiceUnavailableError normalizes transport failures, non-success
// statuses, and malformed responses from any of the external services.
type ServiceUnavailableError struct {
	Op  string
	Err error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("%s: service unavailable: %v", e.Op, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Err
}
