package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantdesk/quantdesk/internal/backtest"
	"github.com/quantdesk/quantdesk/internal/logger"
	"github.com/quantdesk/quantdesk/internal/strategy"
)

var (
	backtestSymbol  string
	backtestFrom    string
	backtestTo      string
	backtestCapital float64
	backtestParams  map[string]string
	backtestUser    string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [strategy]",
	Short: "Run a backtest on a strategy",
	Long:  "Run a strategy against historical data and show performance statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "Symbol to backtest (required)")
	backtestCmd.Flags().StringVar(&backtestFrom, "from", "", "Start date YYYY-MM-DD (required)")
	backtestCmd.Flags().StringVar(&backtestTo, "to", "", "End date YYYY-MM-DD (required)")
	backtestCmd.Flags().Float64Var(&backtestCapital, "capital", 0, "Initial capital (default from config)")
	backtestCmd.Flags().StringToStringVar(&backtestParams, "param", nil, "Strategy parameter override, e.g. --param shortPeriod=5")
	backtestCmd.Flags().StringVar(&backtestUser, "user", "cli", "Owner recorded on the run")

	backtestCmd.MarkFlagRequired("symbol")
	backtestCmd.MarkFlagRequired("from")
	backtestCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	fromDate, err := time.Parse("2006-01-02", backtestFrom)
	if err != nil {
		return fmt.Errorf("invalid from date format (expected YYYY-MM-DD): %w", err)
	}
	toDate, err := time.Parse("2006-01-02", backtestTo)
	if err != nil {
		return fmt.Errorf("invalid to date format (expected YYYY-MM-DD): %w", err)
	}

	params := strategy.ParameterSet{}
	for name, raw := range backtestParams {
		var value float64
		if _, err := fmt.Sscanf(raw, "%g", &value); err != nil {
			return fmt.Errorf("invalid value %q for parameter %s", raw, name)
		}
		params[name] = value
	}

	capital := backtestCapital
	if capital == 0 {
		capital = cfg.Backtest.InitialCapital
	}

	d, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}
	defer d.Close()

	record, err := d.backtester.Run(cmd.Context(), backtest.RunRequest{
		UserID:         backtestUser,
		Strategy:       args[0],
		Symbol:         backtestSymbol,
		Interval:       cfg.Backtest.Interval,
		Start:          fromDate,
		End:            toDate,
		Parameters:     params,
		InitialCapital: capital,
	})
	if err != nil {
		return err
	}

	s := record.Summary
	fmt.Println("=== QuantDesk Backtest ===")
	fmt.Printf("Strategy: %s\n", record.Strategy)
	fmt.Printf("Symbol:   %s\n", record.Symbol)
	fmt.Printf("Period:   %s to %s\n", fromDate.Format("2006-01-02"), toDate.Format("2006-01-02"))
	fmt.Printf("Record:   %s\n", record.ID)
	fmt.Println()
	fmt.Printf("Initial capital:  %12.2f\n", s.InitialCapital)
	fmt.Printf("Final capital:    %12.2f\n", s.FinalCapital)
	fmt.Printf("Profit:           %12.2f (%.2f%%)\n", s.Profit, s.ProfitPercentage)
	fmt.Printf("Max drawdown:     %11.2f%%\n", s.MaxDrawdown)
	fmt.Printf("Trades:           %6d (%d won, %d lost, %.1f%% win rate)\n",
		s.TotalTrades, s.WinningTrades, s.LosingTrades, s.WinRate)
	fmt.Printf("Avg trade profit: %12.2f\n", s.AvgTradeProfit)

	if len(record.Trades) > 0 {
		fmt.Println()
		fmt.Println("Trades:")
		for _, trade := range record.Trades {
			line := fmt.Sprintf("  %s  %-4s %6d @ %10.2f",
				trade.Time.Format("2006-01-02"), trade.Side, trade.Quantity, trade.Price)
			if trade.Profit != nil {
				line += fmt.Sprintf("  profit %10.2f", *trade.Profit)
			}
			fmt.Println(line)
		}
	}

	return nil
}
