package service

import (
	"go.uber.org/zap"

	"marketsim/internal/domain"
	"marketsim/internal/memory"
)

// LiquidationMonitor closes positions whose stop thresholds are crossed
// by a trend price.
type LiquidationMonitor struct {
	book   *memory.PositionBook
	logger *zap.Logger
}

func NewLiquidationMonitor(book *memory.PositionBook, logger *zap.Logger) *LiquidationMonitor {
	return &LiquidationMonitor{book: book, logger: logger}
}

// Evaluate scans every open position on symbol at the given price.
// Cut-loss is checked before take-profit; with cut_loss < take_profit both
// can never hold at once, the order is a defined tie-break. Closed
// positions are removed in the same pass, so a later Evaluate never
// reports them again.
func (m *LiquidationMonitor) Evaluate(symbol string, price float64) []domain.ClosedEntry {
	closed := m.book.Sweep(symbol, func(p domain.Position) bool {
		return price <= p.CutLoss || price >= p.TakeProfit
	})
	if len(closed) == 0 {
		return nil
	}

	entries := make([]domain.ClosedEntry, 0, len(closed))
	for _, p := range closed {
		e := domain.ClosedEntry{
			UserID:   p.UserID,
			Symbol:   p.Symbol,
			Quantity: p.Quantity,
		}
		if price <= p.CutLoss {
			e.Reason = domain.ClosedCutLoss
			e.Rate = (p.CutLoss - price) / p.CutLoss
		} else {
			e.Reason = domain.ClosedTakeProfit
			e.Rate = (price - p.TakeProfit) / p.TakeProfit
		}
		entries = append(entries, e)

		m.logger.Info("position closed",
			zap.Int("user_id", e.UserID),
			zap.String("symbol", e.Symbol),
			zap.Int("quantity", e.Quantity),
			zap.String("reason", string(e.Reason)),
			zap.Float64("rate", e.Rate))
	}
	return entries
}

// Closures converts closed entries into the upstream volume report.
func Closures(entries []domain.ClosedEntry) []domain.Closure {
	if len(entries) == 0 {
		return nil
	}
	out := make([]domain.Closure, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.Closure{Symbol: e.Symbol, Quantity: int64(e.Quantity)})
	}
	return out
}
