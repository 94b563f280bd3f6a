package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantdesk/quantdesk/internal/api"
	"github.com/quantdesk/quantdesk/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the QuantDesk API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	d, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}
	defer d.Close()

	log.Info("starting QuantDesk server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("records_driver", cfg.Storage.Records.Driver),
		zap.String("market_data", cfg.MarketData.Provider),
	)

	server := api.NewServer(api.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		APIKey:          cfg.Server.APIKey,
		Version:         Version,
		MetricsPath:     cfg.Metrics.Path,
		DefaultCapital:  cfg.Backtest.InitialCapital,
		DefaultInterval: cfg.Backtest.Interval,
	}, d.backtester, d.catalog, d.registry, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down QuantDesk server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
