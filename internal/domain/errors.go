package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// BookingConflictError reports that the conditional seat update matched nothing:
// the seat was already booked or does not exist.
type BookingConflictError struct {
	SeatID int64
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("booking failed: seat %d is not available", e.SeatID)
}
