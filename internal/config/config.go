package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	TransportInMemory = "inmem"
	TransportKafka    = "kafka"
)

// Config is the full runtime configuration. Values come from defaults,
// an optional marketsim.yaml, and MARKETSIM_* environment variables, in
// increasing precedence.
type Config struct {
	LogLevel     string        `mapstructure:"log_level"`
	RoundTimeout time.Duration `mapstructure:"round_timeout"`

	BuyThreshold  int64   `mapstructure:"buy_threshold"`
	SellThreshold int64   `mapstructure:"sell_threshold"`
	TrendStep     float64 `mapstructure:"trend_step"`

	Brokers       int   `mapstructure:"brokers"`
	Users         int   `mapstructure:"users"`
	OrdersPerUser int   `mapstructure:"orders_per_user"`
	Seed          int64 `mapstructure:"seed"`

	Transport    string   `mapstructure:"transport"`
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
}

func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("round_timeout", 5*time.Second)
	v.SetDefault("buy_threshold", 30)
	v.SetDefault("sell_threshold", 30)
	v.SetDefault("trend_step", 0.1)
	v.SetDefault("brokers", 2)
	v.SetDefault("users", 10)
	v.SetDefault("orders_per_user", 5)
	v.SetDefault("seed", 0)
	v.SetDefault("transport", TransportInMemory)
	v.SetDefault("kafka_brokers", []string{"localhost:9092"})

	v.SetEnvPrefix("MARKETSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("marketsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Transport != TransportInMemory && c.Transport != TransportKafka {
		return fmt.Errorf("config: unknown transport %q", c.Transport)
	}
	if c.Brokers < 1 {
		return fmt.Errorf("config: need at least one broker, got %d", c.Brokers)
	}
	if c.RoundTimeout <= 0 {
		return fmt.Errorf("config: round_timeout must be positive")
	}
	return nil
}
