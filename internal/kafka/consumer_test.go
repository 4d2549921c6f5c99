package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestNewConsumer_StartOffset(t *testing.T) {
	c := NewConsumer([]string{"127.0.0.1:1"}, "live", "bookings")
	t.Cleanup(func() { _ = c.Close() })
	assert.Equal(t, kafkago.FirstOffset, c.reader.Config().StartOffset)

	live := NewConsumer([]string{"127.0.0.1:1"}, "live", "bookings", FromLatest())
	t.Cleanup(func() { _ = live.Close() })
	assert.Equal(t, kafkago.LastOffset, live.reader.Config().StartOffset)
	assert.Equal(t, "bookings", live.reader.Config().Topic)
}
