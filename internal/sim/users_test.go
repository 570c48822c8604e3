package sim_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketsim/internal/bus"
	"marketsim/internal/domain"
	"marketsim/internal/sim"
)

func TestUsers_PlaceValidOrdersFromTheSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := bus.NewInMemoryBus(zap.NewNop())
	defer b.Close()

	orders := b.Subscribe(bus.OrderTopic(1))
	defer orders.Close()

	snap := []domain.Instrument{{Symbol: "apl", Price: 101}, {Symbol: "mst", Price: 91}}
	payload, err := json.Marshal(snap)
	require.NoError(t, err)

	// Keep publishing snapshots the way the exchange would, until every
	// user has placed its orders.
	pubDone := make(chan struct{})
	go func() {
		for {
			select {
			case <-pubDone:
				return
			case <-time.After(20 * time.Millisecond):
				_ = b.Publish(ctx, bus.TopicCatalog, payload)
			}
		}
	}()

	sim.Run(ctx, b, sim.Config{
		Users:         3,
		OrdersPerUser: 5,
		Brokers:       1,
		Seed:          42,
		Timeout:       200 * time.Millisecond,
	}, zap.NewNop())
	close(pubDone)

	quotes := map[string]float64{"apl": 101, "mst": 91}
	count := 0
	for {
		raw, ok := orders.Receive(100 * time.Millisecond)
		if !ok {
			break
		}
		count++

		var o domain.Order
		require.NoError(t, json.Unmarshal(raw, &o))
		require.NoError(t, o.Validate())
		require.GreaterOrEqual(t, o.UserID, 1)
		require.LessOrEqual(t, o.UserID, 3)

		// Bids come straight off the published snapshot.
		price, known := quotes[o.Symbol]
		require.True(t, known, "symbol %q not in snapshot", o.Symbol)
		require.Equal(t, price, o.BidPrice)
		require.GreaterOrEqual(t, o.Quantity, 1)
		require.LessOrEqual(t, o.Quantity, 30)
	}
	require.GreaterOrEqual(t, count, 3) // at least one order per user
	require.LessOrEqual(t, count, 15)
}
