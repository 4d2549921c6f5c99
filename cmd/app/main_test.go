package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	released map[string][]int64
}

func (l *recordingListener) SeatsReleased(flightID string, seatIDs []int64) {
	if l.released == nil {
		l.released = make(map[string][]int64)
	}
	l.released[flightID] = append(l.released[flightID], seatIDs...)
}

func TestForwardReleases(t *testing.T) {
	listener := &recordingListener{}
	forward := forwardReleases(listener)
	ctx := context.Background()
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, forward(ctx, kafka.NewSeatsReleasedEvent("LX1", []int64{43, 44}, now)))
	require.NoError(t, forward(ctx, kafka.NewBookingEvent(kafka.EventSeatBooked, 45, 7, "LX1", now)))
	require.NoError(t, forward(ctx, kafka.NewSeatsReleasedEvent("LX2", nil, now)))

	assert.Equal(t, map[string][]int64{"LX1": {43, 44}}, listener.released)
}

func TestLiveGroupID(t *testing.T) {
	id := liveGroupID("flightbooking-worker")

	assert.True(t, strings.HasPrefix(id, "flightbooking-worker-live-"))
	assert.Greater(t, len(id), len("flightbooking-worker-live-"))
}
