package engine

import (
	"go.uber.org/zap"

	"marketsim/internal/domain"
	"marketsim/internal/memory"
)

// TrendConfig tunes the volume thresholds and the per-threshold price step.
// The thresholds are deliberately configuration, not constants: different
// exchange deployments run different sensitivities.
type TrendConfig struct {
	BuyThreshold  int64
	SellThreshold int64
	Step          float64
}

func (c TrendConfig) withDefaults() TrendConfig {
	if c.BuyThreshold <= 0 {
		c.BuyThreshold = 30
	}
	if c.SellThreshold <= 0 {
		c.SellThreshold = 30
	}
	if c.Step <= 0 {
		c.Step = 0.1
	}
	return c
}

// TrendDetector turns accumulated one-sided volume into price moves.
// It is the catalog's single writer.
type TrendDetector struct {
	cfg     TrendConfig
	catalog *memory.Catalog
	volumes *memory.VolumeBook
	logger  *zap.Logger
}

func NewTrendDetector(cfg TrendConfig, catalog *memory.Catalog, volumes *memory.VolumeBook, logger *zap.Logger) *TrendDetector {
	return &TrendDetector{
		cfg:     cfg.withDefaults(),
		catalog: catalog,
		volumes: volumes,
		logger:  logger,
	}
}

// DetectUp fires once per symbol whose buy volume crossed the threshold.
// The whole accumulated move is applied and reported as a single event:
// count thresholds' worth of volume is consumed, the price is multiplied
// by (1 + step*count), and the residual volume stays below the threshold.
func (d *TrendDetector) DetectUp() []domain.TrendEvent {
	var events []domain.TrendEvent
	d.volumes.ForEach(func(c *domain.VolumeCounters) {
		count := c.BuyVolume / d.cfg.BuyThreshold
		if count < 1 {
			return
		}
		newPrice, ok := d.catalog.ApplyMove(c.Symbol, 1+d.cfg.Step*float64(count))
		if !ok {
			return
		}
		c.BuyVolume -= count * d.cfg.BuyThreshold
		c.ReferencePrice = newPrice
		events = append(events, domain.TrendEvent{Symbol: c.Symbol, NewPrice: newPrice})
		d.logger.Info("up trend fired",
			zap.String("symbol", c.Symbol),
			zap.Int64("count", count),
			zap.Float64("new_price", newPrice))
	})
	return events
}

// DetectDown is the sell-side mirror of DetectUp.
func (d *TrendDetector) DetectDown() []domain.TrendEvent {
	var events []domain.TrendEvent
	d.volumes.ForEach(func(c *domain.VolumeCounters) {
		count := c.SellVolume / d.cfg.SellThreshold
		if count < 1 {
			return
		}
		newPrice, ok := d.catalog.ApplyMove(c.Symbol, 1-d.cfg.Step*float64(count))
		if !ok {
			return
		}
		c.SellVolume -= count * d.cfg.SellThreshold
		c.ReferencePrice = newPrice
		events = append(events, domain.TrendEvent{Symbol: c.Symbol, NewPrice: newPrice})
		d.logger.Info("down trend fired",
			zap.String("symbol", c.Symbol),
			zap.Int64("count", count),
			zap.Float64("new_price", newPrice))
	})
	return events
}
