package email

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/stretchr/testify/assert"
)

func TestSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewSender(log.New(&buf, "", 0))

	event := kafka.BookingEvent{
		ID:     "e1",
		Type:   kafka.EventBoardingPassReady,
		SeatID: 42,
		BoardingPass: &domain.BoardingPass{
			Name: "Ada Lovelace", PassportNo: "12345678", FlightID: "F1",
			From: "ZRH", To: "VIE", Seat: "3C", Date: "2020-01-01", Time: "09:15",
		},
	}
	assert.NoError(t, s.Send(context.Background(), event))
	assert.Contains(t, buf.String(), "Ada Lovelace")
	assert.Contains(t, buf.String(), "ZRH->VIE seat 3C")
}

func TestSender_SendWithoutBoardingPass(t *testing.T) {
	s := NewSender(nil)
	err := s.Send(context.Background(), kafka.BookingEvent{ID: "e2", SeatID: 42})
	assert.ErrorContains(t, err, "no boarding pass")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, kafka.BookingEvent{}), context.Canceled)
}
