package domain

// VolumeCounters tracks accumulated one-sided flow for a symbol.
// ReferencePrice is the quote captured when the counter row was created;
// the trend detector compounds moves onto it between catalog updates.
type VolumeCounters struct {
	Symbol         string
	BuyVolume      int64
	SellVolume     int64
	ReferencePrice float64
}
