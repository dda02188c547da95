package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	// WeatherstackAPIKey may be empty; creation requests then fail individually.
	WeatherstackAPIKey  string `env:"WEATHERSTACK_API_KEY"`
	WeatherstackBaseURL string `env:"WEATHERSTACK_BASE_URL" envDefault:"http://api.weatherstack.com"`

	// Outbound provider calls.
	HTTPTimeout        time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	ProviderMaxRetries int           `env:"PROVIDER_MAX_RETRIES" envDefault:"0"`
	// ProviderCircuitBreaker shares a breaker across requests; off means every
	// creation request reaches the provider.
	ProviderCircuitBreaker bool `env:"PROVIDER_CIRCUIT_BREAKER" envDefault:"false"`

	// StoreOnCreate inserts created records so they can be fetched by id.
	StoreOnCreate bool `env:"STORE_ON_CREATE" envDefault:"false"`
	// StoreStatsInterval controls how often the store size is logged (0 = never).
	StoreStatsInterval time.Duration `env:"STORE_STATS_INTERVAL" envDefault:"15m"`

	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:3000"`

	Port string `env:"PORT" envDefault:"8000"`
}

// Load reads configuration from the environment (and a .env file if present)
// with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return parse(env.Options{})
}

// LoadFrom parses configuration from the given variables only.
func LoadFrom(vars map[string]string) (*AppConfig, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.WeatherstackAPIKey = strings.TrimSpace(cfg.WeatherstackAPIKey)
	if cfg.ProviderMaxRetries < 0 {
		return nil, fmt.Errorf("invalid PROVIDER_MAX_RETRIES: %d", cfg.ProviderMaxRetries)
	}
	if cfg.StoreStatsInterval < 0 {
		return nil, fmt.Errorf("invalid STORE_STATS_INTERVAL: %s", cfg.StoreStatsInterval)
	}

	return cfg, nil
}
