package memory

import (
	"sync"

	"marketsim/internal/domain"
)

// VolumeBook aggregates reported buy and sell volume per symbol.
// Brokers report concurrently; the whole book is guarded by one lock.
type VolumeBook struct {
	mu       sync.Mutex
	counters map[string]*domain.VolumeCounters
}

func NewVolumeBook() *VolumeBook {
	return &VolumeBook{counters: make(map[string]*domain.VolumeCounters)}
}

// RecordBuy adds filled buy volume. The first report for a symbol creates
// its counter row and pins the reference price at that quote.
func (b *VolumeBook) RecordBuy(symbol string, qty int64, refPrice float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.counters[symbol]
	if !ok {
		c = &domain.VolumeCounters{Symbol: symbol, ReferencePrice: refPrice}
		b.counters[symbol] = c
	}
	c.BuyVolume += qty
}

// RecordSell adds liquidated volume. Sell reports for symbols that were
// never bought have no counter row and are dropped.
func (b *VolumeBook) RecordSell(symbol string, qty int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.counters[symbol]; ok {
		c.SellVolume += qty
	}
}

func (b *VolumeBook) Get(symbol string) (domain.VolumeCounters, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.counters[symbol]
	if !ok {
		return domain.VolumeCounters{}, false
	}
	return *c, true
}

// ForEach runs fn on every counter row under the book lock. fn may mutate
// the row; it must not call back into the book.
func (b *VolumeBook) ForEach(fn func(c *domain.VolumeCounters)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.counters {
		fn(c)
	}
}
