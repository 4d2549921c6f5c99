package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_PublishRejectsUnencodablePayload(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"})
	t.Cleanup(func() { _ = p.Close() })

	err := p.Publish(context.Background(), "bookings", "1", func() {})

	assert.ErrorContains(t, err, "failed to marshal payload")
}

func TestProducer_PublishWithRetryStopsOnCanceledContext(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"})
	t.Cleanup(func() { _ = p.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retrying{Producer: p, Attempts: 3}.Publish(ctx, "bookings", "1", map[string]int{"seat_id": 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProducer_CheckConnectionWithoutBrokers(t *testing.T) {
	p := NewProducer(nil)

	assert.ErrorContains(t, p.CheckConnection(context.Background()), "no kafka brokers")
}
