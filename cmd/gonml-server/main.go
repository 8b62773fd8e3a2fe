package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opennml/gonml/pkg/api"
	"github.com/opennml/gonml/pkg/config"
	"github.com/opennml/gonml/pkg/events"
	"github.com/opennml/gonml/pkg/logging"
	"github.com/opennml/gonml/pkg/snapshot"
	"github.com/opennml/gonml/pkg/topology"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to YAML server configuration")
	listenAddr := flag.String("listen", "", "HTTP listen address (overrides config)")
	dataDir := flag.String("data", "", "Snapshot directory (overrides config)")
	flag.Parse()

	cfg := config.DefaultServerConfig()
	if *configPath != "" {
		loaded, err := config.LoadServerConfig(*configPath)
		if err != nil {
			logging.ErrorLog("failed to load configuration",
				logging.Path(*configPath), logging.Error(err))
			os.Exit(1)
		}
		cfg = loaded
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	logger := logging.DefaultLogger()
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", logging.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.ServerConfig, logger logging.Logger) error {
	bus := events.NewBus()
	defer bus.Shutdown()

	forwardCtx, stopForwarding := context.WithCancel(context.Background())
	defer stopForwarding()

	if cfg.EventListenAddr != "" {
		publisher, err := events.NewPublisher(cfg.EventListenAddr)
		if err != nil {
			return err
		}
		defer publisher.Close()

		for _, topic := range []string{
			topology.TopicNode, topology.TopicPort, topology.TopicLink,
			topology.TopicBiport, topology.TopicBilink,
			topology.TopicTopology, topology.TopicService,
		} {
			subscription, err := bus.Subscribe(forwardCtx, topic)
			if err != nil {
				return err
			}
			go publisher.Forward(subscription)
		}
		logger.Info("publishing events", logging.String("addr", cfg.EventListenAddr))
	}

	store := snapshot.NewStore(cfg.DataDir, cfg.CompressSnapshots)
	ns, err := openNamespace(cfg, store, bus, logger)
	if err != nil {
		return err
	}

	server := api.NewServer(ns, api.Config{
		Addr:      cfg.ListenAddr,
		Version:   version,
		Bus:       bus,
		Snapshots: store,
		Logger:    logger,
	})

	done := make(chan struct{})
	defer close(done)
	go server.UpdateMetricsPeriodically(done)

	if interval := cfg.SnapshotEvery(); interval > 0 {
		go snapshotPeriodically(ns, store, interval, done, logger)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		logger.Info("signal received", logging.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", logging.Error(err))
		}
	}

	// Persist the final state so a restart resumes where we stopped.
	if err := store.Save(ns); err != nil {
		logger.Error("final snapshot failed", logging.Error(err))
	}
	return nil
}

// openNamespace restores the namespace from the latest snapshot, seeds
// it from the configured topology document, or starts empty.
func openNamespace(cfg config.ServerConfig, store *snapshot.Store, bus *events.Bus, logger logging.Logger) (*topology.Manager, error) {
	managerCfg := topology.Config{Bus: bus}

	if store.Exists() {
		ns, err := store.Load(managerCfg)
		if err != nil {
			return nil, err
		}
		logger.Info("namespace restored",
			logging.Path(store.Path()),
			logging.Count(ns.Len()))
		return ns, nil
	}

	if cfg.TopologyFile != "" {
		doc, err := config.LoadTopologyDoc(cfg.TopologyFile)
		if err != nil {
			return nil, err
		}
		ns, err := doc.Build(managerCfg)
		if err != nil {
			return nil, err
		}
		logger.Info("namespace seeded",
			logging.Path(cfg.TopologyFile),
			logging.Count(ns.Len()))
		return ns, nil
	}

	return topology.NewWithConfig(managerCfg), nil
}

func snapshotPeriodically(ns *topology.Manager, store *snapshot.Store, interval time.Duration, done <-chan struct{}, logger logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := store.Save(ns); err != nil {
				logger.Error("periodic snapshot failed", logging.Error(err))
				continue
			}
			logger.Debug("snapshot written", logging.Path(store.Path()))
		}
	}
}
