package domain

// Position is an open holding in one broker's ledger.
type Position struct {
	UserID     int
	Symbol     string
	TakeProfit float64
	CutLoss    float64
	Quantity   int
}
