package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventSeatBooked        = "seat_booked"
	EventBoardingPassReady = "boarding_pass_ready"
	EventSeatsReleased     = "seats_released"
)

// BookingEvent is published after a successful booking or a repair sweep.
// BoardingPass is only set on boarding_pass_ready notifications and SeatIDs
// only on seats_released.
type BookingEvent struct {
	ID           string               `json:"id"`
	Type         string               `json:"type"`
	SeatID       int64                `json:"seat_id"`
	PersonID     int64                `json:"person_id"`
	FlightID     string               `json:"flight_id"`
	OccurredAt   time.Time            `json:"occurred_at"`
	SeatIDs      []int64              `json:"seat_ids,omitempty"`
	BoardingPass *domain.BoardingPass `json:"boarding_pass,omitempty"`
}

func NewBookingEvent(eventType string, seatID, personID int64, flightID string, now time.Time) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		SeatID:     seatID,
		PersonID:   personID,
		FlightID:   flightID,
		OccurredAt: now.UTC(),
	}
}

// NewSeatsReleasedEvent reports seats of one flight freed by the repair sweep.
func NewSeatsReleasedEvent(flightID string, seatIDs []int64, now time.Time) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       EventSeatsReleased,
		FlightID:   flightID,
		SeatIDs:    seatIDs,
		OccurredAt: now.UTC(),
	}
}

// Key partitions events by seat, and releases by flight.
func (e BookingEvent) Key() string {
	if e.Type == EventSeatsReleased {
		return e.FlightID
	}
	return strconv.FormatInt(e.SeatID, 10)
}

func DecodeBookingEvent(msg kafka.Message) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event at offset %d: %w", msg.Offset, err)
	}
	return event, nil
}
