package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"marketsim/internal/actor"
	"marketsim/internal/bus"
	"marketsim/internal/config"
	"marketsim/internal/domain"
	"marketsim/internal/engine"
	"marketsim/internal/memory"
	"marketsim/internal/sim"
	"marketsim/pkg/logger"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// With the in-memory transport every actor shares one bus; with Kafka
	// each actor gets its own consumer group so fan-out topics reach all
	// of them.
	var shared bus.Bus
	if cfg.Transport == config.TransportInMemory {
		shared = bus.NewInMemoryBus(log.Named("bus"))
	}
	busFor := func(group string) bus.Bus {
		if shared != nil {
			return shared
		}
		return bus.NewKafkaBus(cfg.KafkaBrokers, group, log.Named("bus"))
	}

	catalog := memory.NewCatalog(domain.SeedCatalog())
	volumes := memory.NewVolumeBook()
	detector := engine.NewTrendDetector(engine.TrendConfig{
		BuyThreshold:  cfg.BuyThreshold,
		SellThreshold: cfg.SellThreshold,
		Step:          cfg.TrendStep,
	}, catalog, volumes, log.Named("trend"))

	var wg sync.WaitGroup

	exchange := actor.NewExchange(busFor("exchange"), catalog, volumes, detector, cfg.RoundTimeout, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		exchange.Run(ctx)
	}()

	for i := 1; i <= cfg.Brokers; i++ {
		broker := actor.NewBroker(i, busFor("broker-"+strconv.Itoa(i)), memory.NewPositionBook(), cfg.RoundTimeout, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			broker.Run(ctx)
		}()
	}

	sim.Run(ctx, busFor("users"), sim.Config{
		Users:         cfg.Users,
		OrdersPerUser: cfg.OrdersPerUser,
		Brokers:       cfg.Brokers,
		Seed:          cfg.Seed,
		Timeout:       cfg.RoundTimeout,
	}, log)
	log.Info("all users done, waiting for actors to idle out")

	wg.Wait()
	if shared != nil {
		_ = shared.Close()
	}
	log.Info("simulation finished", zap.Int("brokers", cfg.Brokers), zap.Int("users", cfg.Users))
}
