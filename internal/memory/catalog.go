package memory

import (
	"sync"

	"marketsim/internal/domain"
)

// Catalog holds the symbol -> price mapping owned by the exchange.
// Single writer (the trend detector), many snapshot readers.
type Catalog struct {
	mu     sync.RWMutex
	order  []string
	prices map[string]float64
}

func NewCatalog(seed []domain.Instrument) *Catalog {
	c := &Catalog{
		order:  make([]string, 0, len(seed)),
		prices: make(map[string]float64, len(seed)),
	}
	for _, in := range seed {
		if _, ok := c.prices[in.Symbol]; ok {
			continue
		}
		c.order = append(c.order, in.Symbol)
		c.prices[in.Symbol] = in.Price
	}
	return c
}

// Snapshot returns an immutable copy in seed order, safe to publish.
func (c *Catalog) Snapshot() []domain.Instrument {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Instrument, 0, len(c.order))
	for _, sym := range c.order {
		out = append(out, domain.Instrument{Symbol: sym, Price: c.prices[sym]})
	}
	return out
}

func (c *Catalog) Price(symbol string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[symbol]
	return p, ok
}

// ApplyMove multiplies the quoted price by factor and returns the new value.
// Unknown symbols are a no-op.
func (c *Catalog) ApplyMove(symbol string, factor float64) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.prices[symbol]
	if !ok {
		return 0, false
	}
	p *= factor
	c.prices[symbol] = p
	return p, true
}

// SetPrice overwrites a quote. Brokers use it to apply trend events to
// their local view of the catalog.
func (c *Catalog) SetPrice(symbol string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.prices[symbol]; !ok {
		c.order = append(c.order, symbol)
	}
	c.prices[symbol] = price
}
