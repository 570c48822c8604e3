package actor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"marketsim/internal/bus"
	"marketsim/internal/domain"
	"marketsim/internal/engine"
	"marketsim/internal/memory"
	"marketsim/internal/service"
)

// Broker accepts user orders, matches them against its view of the
// catalog, holds the resulting positions and liquidates them when trend
// events cross their stop thresholds. Fills and closures are reported
// back to the exchange.
type Broker struct {
	id        int
	bus       bus.Bus
	view      *memory.Catalog
	positions *memory.PositionBook
	monitor   *service.LiquidationMonitor
	timeout   time.Duration
	logger    *zap.Logger

	phase  Phase
	round  int
	ending int
}

func NewBroker(id int, b bus.Bus, positions *memory.PositionBook, timeout time.Duration, logger *zap.Logger) *Broker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger = logger.Named("broker").With(zap.Int("broker_id", id))
	return &Broker{
		id:        id,
		bus:       b,
		view:      memory.NewCatalog(nil),
		positions: positions,
		monitor:   service.NewLiquidationMonitor(positions, logger),
		timeout:   timeout,
		logger:    logger,
		phase:     Publishing,
	}
}

func (b *Broker) Phase() Phase { return b.phase }

// Run drives rounds until two consecutive rounds pass with no orders and
// no trend events, or the context is canceled. Catalog snapshots alone do
// not count as activity: an exchange idling toward its own shutdown keeps
// publishing them.
func (b *Broker) Run(ctx context.Context) {
	catalog := b.bus.Subscribe(bus.TopicCatalog)
	defer catalog.Close()
	orders := b.bus.Subscribe(bus.OrderTopic(b.id))
	defer orders.Close()
	trends := b.bus.Subscribe(bus.TopicTrend)
	defer trends.Close()

	for b.phase != Terminated {
		select {
		case <-ctx.Done():
			b.transition(Terminated)
			return
		default:
		}
		b.runRound(ctx, catalog, orders, trends)
	}
}

func (b *Broker) runRound(ctx context.Context, catalog, orders, trends bus.Subscription) {
	b.round++
	b.transition(Publishing)
	b.receiveCatalog(catalog)

	b.transition(IngestingOrders)
	snap := b.view.Snapshot()
	activity := drain(orders, b.timeout, func(payload []byte) bool {
		return b.ingestOrder(ctx, payload, snap)
	})

	b.transition(IngestingTrend)
	activity += drain(trends, b.timeout, func(payload []byte) bool {
		return b.ingestTrend(ctx, payload)
	})

	b.transition(Idle)
	if activity == 0 {
		b.ending++
	} else {
		b.ending = 0
	}
	if b.ending >= 2 {
		b.transition(Terminated)
	}
}

// receiveCatalog waits one timeout for the round's snapshot. Missing it
// is tolerated: matching continues against the previous view, and any
// order formed from the newer snapshot simply rejects as a price move.
func (b *Broker) receiveCatalog(catalog bus.Subscription) {
	payload, ok := catalog.Receive(b.timeout)
	if !ok {
		b.logger.Debug("no catalog snapshot this round", zap.Int("round", b.round))
		return
	}
	var snap []domain.Instrument
	if err := json.Unmarshal(payload, &snap); err != nil {
		b.logger.Warn("malformed catalog snapshot dropped", zap.Error(err))
		return
	}
	for _, in := range snap {
		b.view.SetPrice(in.Symbol, in.Price)
	}
}

// ingestOrder validates and matches one inbound order. A successful match
// opens (or tops up) the position and republishes the order upstream as a
// fill report. Rejects are business outcomes, logged and dropped.
func (b *Broker) ingestOrder(ctx context.Context, payload []byte, snap []domain.Instrument) bool {
	var o domain.Order
	if err := json.Unmarshal(payload, &o); err != nil {
		b.logger.Warn("malformed order dropped", zap.Error(err))
		return false
	}
	if err := o.Validate(); err != nil {
		b.logger.Warn("invalid order dropped",
			zap.Int("user_id", o.UserID), zap.Error(err))
		return true
	}

	in, err := engine.Match(o, snap)
	switch {
	case errors.Is(err, engine.ErrPriceMoved):
		b.logger.Info("order rejected: price moved",
			zap.Int("user_id", o.UserID),
			zap.String("symbol", o.Symbol),
			zap.Float64("bid_price", o.BidPrice))
		return true
	case errors.Is(err, engine.ErrUnknownSymbol):
		b.logger.Info("order rejected: unknown symbol",
			zap.Int("user_id", o.UserID),
			zap.String("symbol", o.Symbol))
		return true
	case err != nil:
		b.logger.Warn("order rejected", zap.Error(err))
		return true
	}

	b.positions.Open(o.UserID, o.Symbol, o.TakeProfit, o.CutLoss, o.Quantity)
	b.logger.Info("order filled",
		zap.Int("user_id", o.UserID),
		zap.String("symbol", in.Symbol),
		zap.Float64("price", in.Price),
		zap.Int("quantity", o.Quantity))

	if err := b.bus.Publish(ctx, bus.TopicFills, payload); err != nil {
		b.logger.Warn("publish fill report", zap.Error(err))
	}
	return true
}

// ingestTrend applies one price move to the broker's view and liquidates
// every position the new price pushes past its stop thresholds.
func (b *Broker) ingestTrend(ctx context.Context, payload []byte) bool {
	var ev domain.TrendEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		b.logger.Warn("malformed trend event dropped", zap.Error(err))
		return false
	}

	b.view.SetPrice(ev.Symbol, ev.NewPrice)

	entries := b.monitor.Evaluate(ev.Symbol, ev.NewPrice)
	if len(entries) == 0 {
		return true
	}
	report, err := json.Marshal(service.Closures(entries))
	if err != nil {
		b.logger.Error("marshal closure report", zap.Error(err))
		return true
	}
	if err := b.bus.Publish(ctx, bus.TopicClosures, report); err != nil {
		b.logger.Warn("publish closure report", zap.Error(err))
	}
	return true
}

func (b *Broker) transition(next Phase) {
	if b.phase == next {
		return
	}
	b.phase = next
	b.logger.Debug("phase transition",
		zap.Int("round", b.round),
		zap.String("phase", string(next)))
}
