package email

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/flightbooking/internal/kafka"
)

// Sender delivers boarding pass notifications. Delivery is a log line; there is
// no mail gateway behind it.
type Sender struct {
	logger *log.Logger
}

func NewSender(logger *log.Logger) *Sender {
	if logger == nil {
		logger = log.Default()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pass := event.BoardingPass
	if pass == nil {
		return fmt.Errorf("event %s for seat %d carries no boarding pass", event.ID, event.SeatID)
	}
	s.logger.Printf("boarding pass for %s (passport %s): flight %s %s->%s seat %s, departs %s %s",
		pass.Name, pass.PassportNo, pass.FlightID, pass.From, pass.To, pass.Seat, pass.Date, pass.Time)
	return nil
}
