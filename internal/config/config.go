package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"` // text or json
}

type Resolve struct {
	// LiveCallTimeoutSec bounds each per-query provider call.
	LiveCallTimeoutSec int `json:"live_call_timeout_sec"`
}

// Schedule is shared by the bulk directory providers.
type Schedule struct {
	Enabled            bool `json:"enabled"`
	RefreshIntervalSec int  `json:"refresh_interval_sec"`
	// Priority orders directories; lower is consulted first.
	Priority int `json:"priority"`
}

type CoinMarketCap struct {
	Schedule
	APIKey   string `json:"api_key"`
	Endpoint string `json:"endpoint"`
	Limit    int    `json:"limit"`
}

type CoinGecko struct {
	Schedule
	APIKey   string `json:"api_key"`
	Endpoint string `json:"endpoint"`
	PerPage  int    `json:"per_page"`
	Pages    int    `json:"pages"`
}

type CoinCap struct {
	Schedule
	APIKey   string `json:"api_key"`
	Endpoint string `json:"endpoint"`
	Limit    int    `json:"limit"`
}

type DexScreener struct {
	Enabled              bool   `json:"enabled"`
	Endpoint             string `json:"endpoint"`
	Priority             int    `json:"priority"`
	MaxRequestsPerMinute int    `json:"max_requests_per_minute"`
	Burst                int    `json:"burst"`
}

// Logo is the secondary provider used to backfill missing logos.
type Logo struct {
	Enabled               bool   `json:"enabled"`
	Endpoint              string `json:"endpoint"`
	APIKey                string `json:"api_key"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
}

type Config struct {
	Server        Server        `json:"server"`
	Log           Log           `json:"log"`
	Resolve       Resolve       `json:"resolve"`
	CoinMarketCap CoinMarketCap `json:"coinmarketcap"`
	CoinGecko     CoinGecko     `json:"coingecko"`
	CoinCap       CoinCap       `json:"coincap"`
	DexScreener   DexScreener   `json:"dexscreener"`
	Logo          Logo          `json:"logo"`
}

func Default() Config {
	return Config{
		Server:  Server{Port: "8080", RequestTimeoutSec: 10},
		Log:     Log{Level: "info", Format: "text"},
		Resolve: Resolve{LiveCallTimeoutSec: 8},
		CoinMarketCap: CoinMarketCap{
			Schedule: Schedule{Enabled: true, RefreshIntervalSec: 300, Priority: 1},
			Endpoint: "https://pro-api.coinmarketcap.com",
			Limit:    5000,
		},
		CoinGecko: CoinGecko{
			Schedule: Schedule{Enabled: false, RefreshIntervalSec: 600, Priority: 2},
			Endpoint: "https://api.coingecko.com",
			PerPage:  250,
			Pages:    4,
		},
		CoinCap: CoinCap{
			Schedule: Schedule{Enabled: false, RefreshIntervalSec: 300, Priority: 3},
			Endpoint: "https://api.coincap.io",
			Limit:    2000,
		},
		DexScreener: DexScreener{
			Enabled:              true,
			Endpoint:             "https://api.dexscreener.com",
			Priority:             1,
			MaxRequestsPerMinute: 300,
			Burst:                10,
		},
		Logo: Logo{
			Enabled:               true,
			Endpoint:              "https://api.coingecko.com",
			MinRequestIntervalSec: 2,
		},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. A .env file in the working directory is loaded first;
// environment variables then override select fields.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.RequestTimeoutSec <= 0 {
		errs = append(errs, errors.New("server.request_timeout_sec must be positive"))
	}
	if c.Resolve.LiveCallTimeoutSec <= 0 {
		errs = append(errs, errors.New("resolve.live_call_timeout_sec must be positive"))
	}
	for _, s := range []struct {
		name string
		Schedule
	}{
		{"coinmarketcap", c.CoinMarketCap.Schedule},
		{"coingecko", c.CoinGecko.Schedule},
		{"coincap", c.CoinCap.Schedule},
	} {
		if s.Enabled && s.RefreshIntervalSec <= 0 {
			errs = append(errs, fmt.Errorf("%s.refresh_interval_sec must be positive", s.name))
		}
	}
	if c.DexScreener.Enabled && c.DexScreener.Endpoint == "" {
		errs = append(errs, errors.New("dexscreener.endpoint is required"))
	}
	return errors.Join(errs...)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	envInt("REQUEST_TIMEOUT_SEC", &cfg.Server.RequestTimeoutSec)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	envInt("LIVE_CALL_TIMEOUT_SEC", &cfg.Resolve.LiveCallTimeoutSec)

	// CMC_API_KEY is accepted as an alias.
	if v := os.Getenv("CMC_API_KEY"); v != "" {
		cfg.CoinMarketCap.APIKey = v
	}
	if v := os.Getenv("COINMARKETCAP_API_KEY"); v != "" {
		cfg.CoinMarketCap.APIKey = v
	}
	if v := os.Getenv("COINMARKETCAP_ENDPOINT"); v != "" {
		cfg.CoinMarketCap.Endpoint = v
	}
	envSchedule("COINMARKETCAP", &cfg.CoinMarketCap.Schedule)

	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.CoinGecko.APIKey = v
		if cfg.Logo.APIKey == "" {
			cfg.Logo.APIKey = v
		}
	}
	if v := os.Getenv("COINGECKO_ENDPOINT"); v != "" {
		cfg.CoinGecko.Endpoint = v
	}
	envSchedule("COINGECKO", &cfg.CoinGecko.Schedule)

	if v := os.Getenv("COINCAP_API_KEY"); v != "" {
		cfg.CoinCap.APIKey = v
	}
	if v := os.Getenv("COINCAP_ENDPOINT"); v != "" {
		cfg.CoinCap.Endpoint = v
	}
	envSchedule("COINCAP", &cfg.CoinCap.Schedule)

	envBool("DEXSCREENER_ENABLED", &cfg.DexScreener.Enabled)
	if v := os.Getenv("DEXSCREENER_ENDPOINT"); v != "" {
		cfg.DexScreener.Endpoint = v
	}
	envInt("DEXSCREENER_MAX_RPM", &cfg.DexScreener.MaxRequestsPerMinute)
	envInt("DEXSCREENER_BURST", &cfg.DexScreener.Burst)

	envBool("LOGO_ENABLED", &cfg.Logo.Enabled)
	if v := os.Getenv("LOGO_ENDPOINT"); v != "" {
		cfg.Logo.Endpoint = v
	}
	if v := os.Getenv("LOGO_API_KEY"); v != "" {
		cfg.Logo.APIKey = v
	}
	envInt("LOGO_MIN_INTERVAL_SEC", &cfg.Logo.MinRequestIntervalSec)
}

func envSchedule(prefix string, s *Schedule) {
	envBool(prefix+"_ENABLED", &s.Enabled)
	envInt(prefix+"_REFRESH_INTERVAL_SEC", &s.RefreshIntervalSec)
	envInt(prefix+"_PRIORITY", &s.Priority)
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x >= 0 {
			*dst = x
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			*dst = true
		case "0", "false", "no", "n":
			*dst = false
		}
	}
}
