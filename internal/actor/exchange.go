package actor

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"marketsim/internal/bus"
	"marketsim/internal/domain"
	"marketsim/internal/engine"
	"marketsim/internal/memory"
)

// Exchange owns the price catalog and the volume book. Each round it
// publishes a catalog snapshot, ingests fill and closure reports from the
// brokers, runs trend detection and publishes the resulting price moves.
type Exchange struct {
	bus      bus.Bus
	catalog  *memory.Catalog
	volumes  *memory.VolumeBook
	detector *engine.TrendDetector
	timeout  time.Duration
	logger   *zap.Logger

	phase      Phase
	round      int
	idleRounds int
}

func NewExchange(b bus.Bus, catalog *memory.Catalog, volumes *memory.VolumeBook, detector *engine.TrendDetector, timeout time.Duration, logger *zap.Logger) *Exchange {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Exchange{
		bus:      b,
		catalog:  catalog,
		volumes:  volumes,
		detector: detector,
		timeout:  timeout,
		logger:   logger.Named("exchange"),
		phase:    Publishing,
	}
}

func (e *Exchange) Phase() Phase { return e.phase }

// Run drives rounds until two consecutive rounds see no reports and no
// trend fires, or the context is canceled.
func (e *Exchange) Run(ctx context.Context) {
	fills := e.bus.Subscribe(bus.TopicFills)
	defer fills.Close()
	closures := e.bus.Subscribe(bus.TopicClosures)
	defer closures.Close()

	for e.phase != Terminated {
		select {
		case <-ctx.Done():
			e.transition(Terminated)
			return
		default:
		}
		e.runRound(ctx, fills, closures)
	}
}

func (e *Exchange) runRound(ctx context.Context, fills, closures bus.Subscription) {
	e.round++
	e.transition(Publishing)
	e.publishCatalog(ctx)

	e.transition(IngestingOrders)
	ingested := drain(fills, e.timeout, e.ingestFill)
	ingested += drain(closures, e.timeout, e.ingestClosure)

	e.transition(IngestingTrend)
	events := e.detector.DetectUp()
	events = append(events, e.detector.DetectDown()...)
	for _, ev := range events {
		e.publishTrend(ctx, ev)
	}

	e.transition(Idle)
	if ingested == 0 && len(events) == 0 {
		e.idleRounds++
	} else {
		e.idleRounds = 0
	}
	if e.idleRounds >= 2 {
		e.transition(Terminated)
	}
}

func (e *Exchange) publishCatalog(ctx context.Context) {
	snap := e.catalog.Snapshot()
	payload, err := json.Marshal(snap)
	if err != nil {
		e.logger.Error("marshal catalog snapshot", zap.Error(err))
		return
	}
	if err := e.bus.Publish(ctx, bus.TopicCatalog, payload); err != nil {
		e.logger.Warn("publish catalog snapshot", zap.Error(err))
	}
	e.logger.Info("catalog published",
		zap.Int("round", e.round),
		zap.Int("symbols", len(snap)))
}

func (e *Exchange) publishTrend(ctx context.Context, ev domain.TrendEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		e.logger.Error("marshal trend event", zap.Error(err))
		return
	}
	if err := e.bus.Publish(ctx, bus.TopicTrend, payload); err != nil {
		e.logger.Warn("publish trend event",
			zap.String("symbol", ev.Symbol), zap.Error(err))
	}
}

// ingestFill feeds one broker fill report into the buy-volume counters.
func (e *Exchange) ingestFill(payload []byte) bool {
	var o domain.Order
	if err := json.Unmarshal(payload, &o); err != nil {
		e.logger.Warn("malformed fill report dropped", zap.Error(err))
		return false
	}
	price, ok := e.catalog.Price(o.Symbol)
	if !ok {
		e.logger.Warn("fill report for unknown symbol dropped",
			zap.String("symbol", o.Symbol))
		return false
	}
	e.volumes.RecordBuy(o.Symbol, int64(o.Quantity), price)
	return true
}

// ingestClosure feeds one broker closure report into the sell-volume
// counters.
func (e *Exchange) ingestClosure(payload []byte) bool {
	var cs []domain.Closure
	if err := json.Unmarshal(payload, &cs); err != nil {
		e.logger.Warn("malformed closure report dropped", zap.Error(err))
		return false
	}
	for _, c := range cs {
		e.volumes.RecordSell(c.Symbol, c.Quantity)
	}
	return true
}

func (e *Exchange) transition(next Phase) {
	if e.phase == next {
		return
	}
	e.phase = next
	e.logger.Debug("phase transition",
		zap.Int("round", e.round),
		zap.String("phase", string(next)))
}
