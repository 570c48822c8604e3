package domain

import (
	"encoding/json"
	"fmt"
)

// ClosedEntry is one liquidated position, as seen inside a broker.
// Rate is the relative gain past the take-profit line or the relative
// loss past the cut-loss line, depending on Reason.
type ClosedEntry struct {
	UserID   int
	Symbol   string
	Quantity int
	Reason   CloseReason
	Rate     float64
}

// Closure is the upstream report of closed volume on closures.report.
// Wire form is the positional pair ["apl", 10].
type Closure struct {
	Symbol   string
	Quantity int64
}

func (c Closure) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Symbol, c.Quantity})
}

func (c *Closure) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &c.Symbol); err != nil {
		return fmt.Errorf("closure symbol: %w", err)
	}
	if err := json.Unmarshal(raw[1], &c.Quantity); err != nil {
		return fmt.Errorf("closure quantity: %w", err)
	}
	return nil
}
