package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketsim/internal/domain"
	"marketsim/internal/memory"
	"marketsim/internal/service"
)

func TestLiquidation_CutLoss(t *testing.T) {
	book := memory.NewPositionBook()
	book.Open(1, "apl", 120, 90, 10)
	m := service.NewLiquidationMonitor(book, zap.NewNop())

	entries := m.Evaluate("apl", 85)
	require.Len(t, entries, 1)
	require.Equal(t, domain.ClosedCutLoss, entries[0].Reason)
	require.Equal(t, 10, entries[0].Quantity)
	require.InDelta(t, (90.0-85.0)/90.0, entries[0].Rate, 1e-12)
	require.Equal(t, 0, book.Len())
}

func TestLiquidation_TakeProfit(t *testing.T) {
	book := memory.NewPositionBook()
	book.Open(1, "apl", 120, 90, 10)
	m := service.NewLiquidationMonitor(book, zap.NewNop())

	entries := m.Evaluate("apl", 130)
	require.Len(t, entries, 1)
	require.Equal(t, domain.ClosedTakeProfit, entries[0].Reason)
	require.InDelta(t, (130.0-120.0)/120.0, entries[0].Rate, 1e-12)
}

func TestLiquidation_HoldsBetweenThresholds(t *testing.T) {
	book := memory.NewPositionBook()
	book.Open(1, "apl", 120, 90, 10)
	m := service.NewLiquidationMonitor(book, zap.NewNop())

	require.Empty(t, m.Evaluate("apl", 110))
	require.Equal(t, 1, book.Len())
}

func TestLiquidation_NeverReportsTwice(t *testing.T) {
	book := memory.NewPositionBook()
	book.Open(1, "apl", 120, 90, 10)
	m := service.NewLiquidationMonitor(book, zap.NewNop())

	require.Len(t, m.Evaluate("apl", 85), 1)
	require.Empty(t, m.Evaluate("apl", 85))
	require.Empty(t, m.Evaluate("apl", 200))
}

func TestLiquidation_OnlyTouchesTheEventSymbol(t *testing.T) {
	book := memory.NewPositionBook()
	book.Open(1, "apl", 120, 90, 10)
	book.Open(1, "mst", 100, 80, 5)
	m := service.NewLiquidationMonitor(book, zap.NewNop())

	entries := m.Evaluate("apl", 85)
	require.Len(t, entries, 1)
	require.Equal(t, "apl", entries[0].Symbol)

	_, ok := book.Get(1, "mst")
	require.True(t, ok)
}

func TestClosures_BuildsUpstreamReport(t *testing.T) {
	entries := []domain.ClosedEntry{
		{UserID: 1, Symbol: "apl", Quantity: 10, Reason: domain.ClosedCutLoss},
		{UserID: 2, Symbol: "apl", Quantity: 5, Reason: domain.ClosedTakeProfit},
	}
	cs := service.Closures(entries)
	require.Equal(t, []domain.Closure{{Symbol: "apl", Quantity: 10}, {Symbol: "apl", Quantity: 5}}, cs)
	require.Nil(t, service.Closures(nil))
}
