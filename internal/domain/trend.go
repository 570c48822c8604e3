package domain

import (
	"encoding/json"
	"fmt"
)

// TrendEvent is one price move published on trend.events.
// Wire form is the positional pair ["apl", 111.1].
type TrendEvent struct {
	Symbol   string
	NewPrice float64
}

func (e TrendEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Symbol, e.NewPrice})
}

func (e *TrendEvent) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &e.Symbol); err != nil {
		return fmt.Errorf("trend event symbol: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.NewPrice); err != nil {
		return fmt.Errorf("trend event price: %w", err)
	}
	return nil
}
