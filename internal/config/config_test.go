package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketsim/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, config.TransportInMemory, cfg.Transport)
	require.Equal(t, 5*time.Second, cfg.RoundTimeout)
	require.EqualValues(t, 30, cfg.BuyThreshold)
	require.EqualValues(t, 30, cfg.SellThreshold)
	require.Equal(t, 0.1, cfg.TrendStep)
	require.Equal(t, 2, cfg.Brokers)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MARKETSIM_BROKERS", "4")
	t.Setenv("MARKETSIM_ROUND_TIMEOUT", "750ms")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Brokers)
	require.Equal(t, 750*time.Millisecond, cfg.RoundTimeout)
}

func TestLoad_RejectsUnknownTransport(t *testing.T) {
	t.Setenv("MARKETSIM_TRANSPORT", "carrier-pigeon")

	_, err := config.Load("")
	require.Error(t, err)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := config.Load("does/not/exist.yaml")
	require.Error(t, err)
}
