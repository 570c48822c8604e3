package domain

import (
	"encoding/json"
	"testing"
)

func TestOrderWireSchema(t *testing.T) {
	payload := []byte(`{"id":3,"stock_name":"apl","bid_price":101,"take_profit":150.5,"cut_loss":80,"num_stock":12}`)

	var o Order
	if err := json.Unmarshal(payload, &o); err != nil {
		t.Fatal(err)
	}
	if o.UserID != 3 || o.Symbol != "apl" || o.BidPrice != 101 || o.Quantity != 12 {
		t.Fatalf("unexpected order: %+v", o)
	}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestOrderValidate(t *testing.T) {
	cases := []struct {
		name string
		o    Order
		want error
	}{
		{"empty symbol", Order{UserID: 1, BidPrice: 10, TakeProfit: 20, CutLoss: 5, Quantity: 1}, ErrEmptySymbol},
		{"zero quantity", Order{UserID: 1, Symbol: "apl", BidPrice: 10, TakeProfit: 20, CutLoss: 5}, ErrBadQuantity},
		{"cut loss above bid", Order{UserID: 1, Symbol: "apl", BidPrice: 10, TakeProfit: 20, CutLoss: 11, Quantity: 1}, ErrBadThresholds},
		{"take profit below bid", Order{UserID: 1, Symbol: "apl", BidPrice: 10, TakeProfit: 9, CutLoss: 5, Quantity: 1}, ErrBadThresholds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.o.Validate(); err != tc.want {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTrendEventTupleForm(t *testing.T) {
	data, err := json.Marshal(TrendEvent{Symbol: "apl", NewPrice: 111.1})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["apl",111.1]` {
		t.Fatalf("unexpected wire form: %s", data)
	}

	var ev TrendEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Symbol != "apl" || ev.NewPrice != 111.1 {
		t.Fatalf("roundtrip mismatch: %+v", ev)
	}

	if err := json.Unmarshal([]byte(`[42,"apl"]`), &ev); err == nil {
		t.Fatal("swapped tuple fields must not parse")
	}
}

func TestClosureTupleForm(t *testing.T) {
	data, err := json.Marshal([]Closure{{Symbol: "apl", Quantity: 10}, {Symbol: "mst", Quantity: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[["apl",10],["mst",3]]` {
		t.Fatalf("unexpected wire form: %s", data)
	}

	var cs []Closure
	if err := json.Unmarshal(data, &cs); err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 || cs[0].Quantity != 10 || cs[1].Symbol != "mst" {
		t.Fatalf("roundtrip mismatch: %+v", cs)
	}
}
