// Package config loads and validates service configuration from YAML files
// and environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/quantdesk/quantdesk/internal/core"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	MarketData MarketDataConfig `mapstructure:"market_data"`
	Backtest   BacktestConfig   `mapstructure:"backtest"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	Mode   string `mapstructure:"mode"`
	APIKey string `mapstructure:"api_key"`
}

type StorageConfig struct {
	Records RecordsConfig     `mapstructure:"records"`
	Cold    ColdStorageConfig `mapstructure:"cold"`
}

// RecordsConfig selects the hot store for backtest records.
type RecordsConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "memory"
	DSN    string `mapstructure:"dsn"`
}

type ColdStorageConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

type MarketDataConfig struct {
	Provider  string          `mapstructure:"provider"` // "yahoo" or "synthetic"
	Fallback  bool            `mapstructure:"fallback"` // chain synthetic behind the primary
	Synthetic SyntheticConfig `mapstructure:"synthetic"`
}

type SyntheticConfig struct {
	BasePrice  float64 `mapstructure:"base_price"`
	Volatility float64 `mapstructure:"volatility"`
}

// BacktestConfig holds request defaults applied when the caller omits them.
type BacktestConfig struct {
	InitialCapital float64 `mapstructure:"initial_capital"`
	Interval       string  `mapstructure:"interval"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "release",
		},
		Storage: StorageConfig{
			Records: RecordsConfig{
				Driver: "sqlite",
				DSN:    "quantdesk.db",
			},
			Cold: ColdStorageConfig{
				Enabled: false,
				Type:    "localfs",
				Path:    "archive",
			},
		},
		MarketData: MarketDataConfig{
			Provider: "yahoo",
			Fallback: false,
			Synthetic: SyntheticConfig{
				BasePrice:  100,
				Volatility: 0.02,
			},
		},
		Backtest: BacktestConfig{
			InitialCapital: 10000,
			Interval:       "1d",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Storage.Records.Driver {
	case "sqlite":
		if c.Storage.Records.DSN == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.records.dsn required for the sqlite driver"))
		}
	case "memory":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown records driver %q", c.Storage.Records.Driver))
	}

	if c.Storage.Cold.Enabled {
		switch c.Storage.Cold.Type {
		case "localfs":
			if c.Storage.Cold.Path == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("storage.cold.path required for localfs"))
			}
		case "s3":
			if c.Storage.Cold.S3.Bucket == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("storage.cold.s3.bucket required for s3"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown cold storage type %q", c.Storage.Cold.Type))
		}
	}

	switch c.MarketData.Provider {
	case "yahoo", "synthetic":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown market data provider %q", c.MarketData.Provider))
	}

	if c.Backtest.InitialCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backtest.initial_capital must be > 0, got %g", c.Backtest.InitialCapital))
	}

	return nil
}
