package domain

type TrendDirection string
type CloseReason string

const (
	TrendUp   TrendDirection = "UP"
	TrendDown TrendDirection = "DOWN"

	ClosedTakeProfit CloseReason = "TAKE_PROFIT"
	ClosedCutLoss    CloseReason = "CUT_LOSS"
)
