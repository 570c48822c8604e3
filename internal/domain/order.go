package domain

import "errors"

var (
	ErrEmptySymbol   = errors.New("order: empty symbol")
	ErrBadQuantity   = errors.New("order: quantity must be positive")
	ErrBadThresholds = errors.New("order: require cut_loss < bid_price < take_profit")
)

// Order is a user buy request. The same schema travels on orders.inbound
// (user -> broker) and fills.report (broker -> exchange).
type Order struct {
	UserID     int     `json:"id"`
	Symbol     string  `json:"stock_name"`
	BidPrice   float64 `json:"bid_price"`
	TakeProfit float64 `json:"take_profit"`
	CutLoss    float64 `json:"cut_loss"`
	Quantity   int     `json:"num_stock"`
}

func (o *Order) Validate() error {
	if o.Symbol == "" {
		return ErrEmptySymbol
	}
	if o.Quantity <= 0 {
		return ErrBadQuantity
	}
	if !(o.CutLoss < o.BidPrice && o.BidPrice < o.TakeProfit) {
		return ErrBadThresholds
	}
	return nil
}
