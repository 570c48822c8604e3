package memory

import (
	"strconv"
	"sync"

	"marketsim/internal/domain"
)

// PositionBook is one broker's ledger of open positions, keyed by
// (userID, symbol). Merging an order into an existing position sums the
// quantity and keeps the original take-profit and cut-loss thresholds:
// the thresholds were priced off the entry quote and a top-up order does
// not re-price the holder's risk.
type PositionBook struct {
	mu        sync.RWMutex
	positions map[string]*domain.Position
}

func NewPositionBook() *PositionBook {
	return &PositionBook{
		positions: make(map[string]*domain.Position),
	}
}

func key(uid int, symbol string) string {
	return symbol + ":" + strconv.Itoa(uid)
}

func (b *PositionBook) Get(uid int, symbol string) (domain.Position, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.positions[key(uid, symbol)]
	if !ok {
		return domain.Position{}, false
	}
	return *p, true
}

func (b *PositionBook) Open(uid int, symbol string, takeProfit, cutLoss float64, qty int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	k := key(uid, symbol)
	if p, ok := b.positions[k]; ok {
		p.Quantity += qty
		return
	}
	b.positions[k] = &domain.Position{
		UserID:     uid,
		Symbol:     symbol,
		TakeProfit: takeProfit,
		CutLoss:    cutLoss,
		Quantity:   qty,
	}
}

// Sweep removes and returns every position on symbol for which closeIf
// holds. Collection and deletion happen in one pass under the lock, so a
// swept position can never be reported twice.
func (b *PositionBook) Sweep(symbol string, closeIf func(domain.Position) bool) []domain.Position {
	b.mu.Lock()
	defer b.mu.Unlock()

	var closed []domain.Position
	for k, p := range b.positions {
		if p.Symbol != symbol {
			continue
		}
		if closeIf(*p) {
			closed = append(closed, *p)
			delete(b.positions, k)
		}
	}
	return closed
}

func (b *PositionBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.positions)
}
