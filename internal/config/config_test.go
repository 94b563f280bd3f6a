package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090

storage:
  records:
    driver: memory
  cold:
    enabled: true
    type: localfs
    path: "/tmp/quantdesk/archive"

market_data:
  provider: synthetic
`)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Records.Driver != "memory" {
		t.Errorf("expected memory driver, got %s", cfg.Storage.Records.Driver)
	}
	if cfg.Storage.Cold.Type != "localfs" {
		t.Errorf("expected localfs, got %s", cfg.Storage.Cold.Type)
	}
	if cfg.MarketData.Provider != "synthetic" {
		t.Errorf("expected synthetic provider, got %s", cfg.MarketData.Provider)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Records.Driver != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.Storage.Records.Driver)
	}
	if cfg.Backtest.InitialCapital != 10000 {
		t.Errorf("expected default capital 10000, got %g", cfg.Backtest.InitialCapital)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config { return *Defaults() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"invalid port - zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"invalid port - too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown records driver", func(c *Config) { c.Storage.Records.Driver = "postgres" }, true},
		{"sqlite without dsn", func(c *Config) { c.Storage.Records.DSN = "" }, true},
		{"memory driver needs no dsn", func(c *Config) {
			c.Storage.Records.Driver = "memory"
			c.Storage.Records.DSN = ""
		}, false},
		{"cold s3 without bucket", func(c *Config) {
			c.Storage.Cold.Enabled = true
			c.Storage.Cold.Type = "s3"
		}, true},
		{"unknown cold type", func(c *Config) {
			c.Storage.Cold.Enabled = true
			c.Storage.Cold.Type = "tape"
		}, true},
		{"disabled cold skips validation", func(c *Config) {
			c.Storage.Cold.Enabled = false
			c.Storage.Cold.Type = "tape"
		}, false},
		{"unknown market data provider", func(c *Config) { c.MarketData.Provider = "bloomberg" }, true},
		{"zero default capital", func(c *Config) { c.Backtest.InitialCapital = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("QD_TEST_API_KEY", "secret-key")

	content := []byte(`
server:
  api_key: "${QD_TEST_API_KEY}"
`)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.APIKey != "secret-key" {
		t.Errorf("expected env-expanded api key, got %q", cfg.Server.APIKey)
	}
}
