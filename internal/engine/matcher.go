package engine

import (
	"errors"

	"marketsim/internal/domain"
)

var (
	// ErrUnknownSymbol rejects an order whose symbol is not in the snapshot.
	ErrUnknownSymbol = errors.New("match: unknown symbol")
	// ErrPriceMoved rejects an order whose bid no longer equals the quote.
	ErrPriceMoved = errors.New("match: price moved since quote")
)

// Match fills an order against a catalog snapshot. The comparison is
// tolerance-free on purpose: users form bids from a published snapshot, so
// the bid matches bit-for-bit unless a trend move landed in between. A
// reject is a normal business outcome, not a failure; there is no retry,
// no partial fill, no resting order.
func Match(o domain.Order, snap []domain.Instrument) (domain.Instrument, error) {
	for _, in := range snap {
		if in.Symbol != o.Symbol {
			continue
		}
		if in.Price == o.BidPrice {
			return in, nil
		}
		return domain.Instrument{}, ErrPriceMoved
	}
	return domain.Instrument{}, ErrUnknownSymbol
}
