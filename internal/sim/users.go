package sim

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"marketsim/internal/bus"
	"marketsim/internal/domain"
	"marketsim/pkg/idgen"
)

// Config tunes the synthetic demand generator.
type Config struct {
	Users         int
	OrdersPerUser int // upper bound, at least 1 order is placed
	Brokers       int
	Seed          int64
	Timeout       time.Duration // per-receive wait for a catalog snapshot
}

// Run spawns one goroutine per user. Each user waits for a catalog
// snapshot, then places 1..OrdersPerUser orders with a randomly chosen
// broker: bid at the snapshot price, take-profit 15%..200% above it,
// cut-loss 12%..40% below it, 1..30 shares. Run blocks until every user
// is done or ctx is canceled.
func Run(ctx context.Context, b bus.Bus, cfg Config, logger *zap.Logger) {
	if cfg.OrdersPerUser < 1 {
		cfg.OrdersPerUser = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	logger = logger.Named("users")

	ids := idgen.New(0)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Users; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uid := int(ids.Next())
			runUser(ctx, b, cfg, uid, logger.With(zap.Int("user_id", uid)))
		}()
	}
	wg.Wait()
}

func runUser(ctx context.Context, b bus.Bus, cfg Config, uid int, logger *zap.Logger) {
	sub := b.Subscribe(bus.TopicCatalog)
	defer sub.Close()

	rng := rand.New(rand.NewSource(cfg.Seed + int64(uid)))

	var snap []domain.Instrument
	for snap == nil {
		select {
		case <-ctx.Done():
			return
		default:
		}
		payload, ok := sub.Receive(cfg.Timeout)
		if !ok {
			logger.Debug("still waiting for catalog")
			continue
		}
		if err := json.Unmarshal(payload, &snap); err != nil || len(snap) == 0 {
			snap = nil
		}
	}

	n := 1 + rng.Intn(cfg.OrdersPerUser)
	for i := 0; i < n; i++ {
		in := snap[rng.Intn(len(snap))]
		o := domain.Order{
			UserID:     uid,
			Symbol:     in.Symbol,
			BidPrice:   in.Price,
			TakeProfit: in.Price * (1 + 0.15 + rng.Float64()*1.85),
			CutLoss:    in.Price * (1 - (0.12 + rng.Float64()*0.28)),
			Quantity:   1 + rng.Intn(30),
		}
		payload, err := json.Marshal(o)
		if err != nil {
			logger.Error("marshal order", zap.Error(err))
			continue
		}
		broker := 1 + rng.Intn(cfg.Brokers)
		if err := b.Publish(ctx, bus.OrderTopic(broker), payload); err != nil {
			logger.Warn("publish order", zap.Error(err))
			continue
		}
		logger.Info("order placed",
			zap.String("symbol", o.Symbol),
			zap.Float64("bid_price", o.BidPrice),
			zap.Int("quantity", o.Quantity),
			zap.Int("broker", broker))
	}
}
