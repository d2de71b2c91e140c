// internal/errors/errors.go
package appErrors

import "fmt"

// ErrBookingNotFound is a sentinel error
type ErrBookingNotFound struct {
	BookingID int
}

func (e *ErrBookingNotFound) Error() string {
	return fmt.Sprintf("booking with ID %d not found", e.BookingID)
}

func NewBookingNotFound(id int) error {
	return &ErrBookingNotFound{BookingID: id}
}

// ErrTenantNotFound is a sentinel error
type ErrTenantNotFound struct {
	TenantID int
}

func (e *ErrTenantNotFound) Error() string {
	return fmt.Sprintf("tenant with ID %d not found", e.TenantID)
}

func NewTenantNotFound(id int) error {
	return &ErrTenantNotFound{TenantID: id}
}

// ErrBroadcastNotFound is a sentinel error
type ErrBroadcastNotFound struct {
	BroadcastID int
}

func (e *ErrBroadcastNotFound) Error() string {
	return fmt.Sprintf("broadcast with ID %d not found", e.BroadcastID)
}

func NewBroadcastNotFound(id int) error {
	return &ErrBroadcastNotFound{BroadcastID: id}
}
