package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/quantdesk/quantdesk/internal/backtest"
	"github.com/quantdesk/quantdesk/internal/config"
	"github.com/quantdesk/quantdesk/internal/marketdata"
	"github.com/quantdesk/quantdesk/internal/marketdata/synthetic"
	"github.com/quantdesk/quantdesk/internal/marketdata/yahoo"
	"github.com/quantdesk/quantdesk/internal/metrics"
	"github.com/quantdesk/quantdesk/internal/storage/archive"
	backteststore "github.com/quantdesk/quantdesk/internal/storage/backtest"
	"github.com/quantdesk/quantdesk/internal/strategy"
)

// deps bundles the wired application components.
type deps struct {
	backtester *backtest.Backtester
	catalog    *strategy.Catalog
	store      backteststore.Store
	registry   *metrics.Registry
}

func (d *deps) Close() error {
	return d.store.Close()
}

// loadConfig loads the config file if given, otherwise defaults, and
// validates either way.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// buildDeps wires the provider, catalog, store, and archiver from config.
func buildDeps(cfg *config.Config, log *zap.Logger) (*deps, error) {
	syntheticProvider := synthetic.New(
		cfg.MarketData.Synthetic.BasePrice,
		cfg.MarketData.Synthetic.Volatility)

	var provider marketdata.Provider
	switch cfg.MarketData.Provider {
	case "synthetic":
		provider = syntheticProvider
	default:
		provider = yahoo.New()
	}
	if cfg.MarketData.Fallback && cfg.MarketData.Provider != "synthetic" {
		provider = marketdata.NewFallback(log, provider, syntheticProvider)
	}

	var store backteststore.Store
	switch cfg.Storage.Records.Driver {
	case "memory":
		store = backteststore.NewMemoryStore()
	default:
		sqliteStore, err := backteststore.NewSQLiteStore(cfg.Storage.Records.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening record store: %w", err)
		}
		store = sqliteStore
	}

	catalog := strategy.NewDefaultCatalog(log)

	opts := []backtest.Option{backtest.WithLogger(log)}

	if cfg.Storage.Cold.Enabled {
		var blobs archive.Storage
		var err error
		switch cfg.Storage.Cold.Type {
		case "s3":
			blobs, err = archive.NewS3(archive.S3Config{
				Bucket:    cfg.Storage.Cold.S3.Bucket,
				Endpoint:  cfg.Storage.Cold.S3.Endpoint,
				Region:    cfg.Storage.Cold.S3.Region,
				AccessKey: cfg.Storage.Cold.S3.AccessKey,
				SecretKey: cfg.Storage.Cold.S3.SecretKey,
				Prefix:    cfg.Storage.Cold.S3.Prefix,
			})
		default:
			blobs, err = archive.NewLocalFS(cfg.Storage.Cold.Path)
		}
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("opening cold storage: %w", err)
		}
		opts = append(opts, backtest.WithArchiver(archive.NewReports(blobs)))
	}

	var registry *metrics.Registry
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry()
		opts = append(opts, backtest.WithRecorder(registry))
	}

	return &deps{
		backtester: backtest.NewBacktester(provider, catalog, store, opts...),
		catalog:    catalog,
		store:      store,
		registry:   registry,
	}, nil
}
