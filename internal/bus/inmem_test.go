package bus_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketsim/internal/bus"
)

func TestInMemoryBus_FansOutToAllSubscribers(t *testing.T) {
	b := bus.NewInMemoryBus(zap.NewNop())
	defer b.Close()

	s1 := b.Subscribe("t")
	s2 := b.Subscribe("t")

	require.NoError(t, b.Publish(context.Background(), "t", []byte("x")))

	p1, ok1 := s1.Receive(time.Second)
	p2, ok2 := s2.Receive(time.Second)
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, "x", string(p1))
	require.Equal(t, "x", string(p2))
}

func TestInMemoryBus_ReceiveTimesOut(t *testing.T) {
	b := bus.NewInMemoryBus(zap.NewNop())
	defer b.Close()

	s := b.Subscribe("t")

	start := time.Now()
	_, ok := s.Receive(50 * time.Millisecond)
	require.False(t, ok)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestInMemoryBus_TopicsAreIsolated(t *testing.T) {
	b := bus.NewInMemoryBus(zap.NewNop())
	defer b.Close()

	s := b.Subscribe(bus.OrderTopic(1))
	require.NoError(t, b.Publish(context.Background(), bus.OrderTopic(2), []byte("x")))

	_, ok := s.Receive(20 * time.Millisecond)
	require.False(t, ok)
}

func TestInMemoryBus_BufferedMessagesSurviveClose(t *testing.T) {
	b := bus.NewInMemoryBus(zap.NewNop())

	s := b.Subscribe("t")
	require.NoError(t, b.Publish(context.Background(), "t", []byte("x")))
	require.NoError(t, b.Close())

	p, ok := s.Receive(20 * time.Millisecond)
	require.True(t, ok)
	require.Equal(t, "x", string(p))

	_, ok = s.Receive(20 * time.Millisecond)
	require.False(t, ok)

	require.Error(t, b.Publish(context.Background(), "t", []byte("y")))
}
