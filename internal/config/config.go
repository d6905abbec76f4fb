package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "marketstack"
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"data_source"`
	Scan struct {
		MinReturn             float64 `yaml:"min_return"`             // percent, keeps tickers at or below
		Years                 int     `yaml:"years"`                  // lookback for the return scan
		PatternYears          int     `yaml:"pattern_years"`          // lookback for the pattern scan
		AppreciationThreshold float64 `yaml:"appreciation_threshold"` // percent
		SuccessThreshold      float64 `yaml:"success_threshold"`      // percent
	} `yaml:"scan"`
	Universe struct {
		Indices []string `yaml:"indices"` // sp500, nifty50, sensex
		Tickers []string `yaml:"tickers"` // static list, used when no indices configured
	} `yaml:"universe"`
	History struct {
		Dir string `yaml:"dir"`
	} `yaml:"history"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("MARKETSTACK_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("MARKETSTACK_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("MIN_RETURN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.MinReturn = f
		}
	}
	if v := os.Getenv("SCAN_YEARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Years = n
		}
	}
	if v := os.Getenv("HISTORY_DIR"); v != "" {
		cfg.History.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.Scan.Years == 0 {
		cfg.Scan.Years = 7
	}
	if cfg.Scan.PatternYears == 0 {
		cfg.Scan.PatternYears = 10
	}
	if cfg.Scan.AppreciationThreshold == 0 {
		cfg.Scan.AppreciationThreshold = 10
	}
	if cfg.Scan.SuccessThreshold == 0 {
		cfg.Scan.SuccessThreshold = 10
	}
	if len(cfg.Universe.Indices) == 0 && len(cfg.Universe.Tickers) == 0 {
		cfg.Universe.Indices = []string{"sp500", "nifty50", "sensex"}
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = "scan_history"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/scanner.db"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Schedule.DailyCron == "" {
		// 16:30 every day, after US market close
		cfg.Schedule.DailyCron = "0 30 16 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo":
	case "marketstack":
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for marketstack")
		}
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	if c.Scan.Years <= 0 {
		return fmt.Errorf("scan.years must be positive")
	}
	if c.Scan.PatternYears <= 0 {
		return fmt.Errorf("scan.pattern_years must be positive")
	}
	if c.Scan.AppreciationThreshold < 0 {
		return fmt.Errorf("scan.appreciation_threshold must not be negative")
	}
	return nil
}
