package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// QuoteStore selects where quotes are persisted
type QuoteStore string

const (
	QuoteStorePostgres QuoteStore = "postgres"
	QuoteStoreMemory   QuoteStore = "memory"
)

// Config holds the application configuration
type Config struct {
	GRPCPort   string          `yaml:"grpc_port"`
	HTTPPort   string          `yaml:"http_port"`
	APIToken   string          `yaml:"api_token"` // Empty disables auth on both gRPC and HTTP
	QuoteStore QuoteStore      `yaml:"quote_store"`
	Database   DatabaseConfig  `yaml:"database"`
	Valuation  ValuationConfig `yaml:"valuation"`
}

// DatabaseConfig holds the PostgreSQL connection settings
// ConnStr, when set, takes precedence over the individual fields
type DatabaseConfig struct {
	ConnStr  string `yaml:"conn_str"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// ValuationConfig holds the settings passed to the valuation engine
type ValuationConfig struct {
	StandardDefermentRatePct float64   `yaml:"standard_deferment_rate_pct"`
	TableFallbackRatePct     float64   `yaml:"table_fallback_rate_pct"`
	MinLeaseYears            float64   `yaml:"min_lease_years"`
	MaxLeaseYears            float64   `yaml:"max_lease_years"`
	WaitingPeriods           []float64 `yaml:"waiting_periods"`
	WaitingUpliftPct         float64   `yaml:"waiting_uplift_pct"`
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		GRPCPort:   ":8080",
		HTTPPort:   ":8081",
		APIToken:   "dev-token",
		QuoteStore: QuoteStorePostgres,
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "leasehold",
		},
		Valuation: ValuationConfig{
			StandardDefermentRatePct: 5,
			TableFallbackRatePct:     5,
			MinLeaseYears:            1,
			MaxLeaseYears:            120,
			WaitingPeriods:           []float64{3, 5, 10},
			WaitingUpliftPct:         2.5,
		},
	}
}

// Load builds the configuration
// Sources, later ones winning:
//  1. Defaults
//  2. YAML file at configPath (skipped when empty)
//  3. .env file at envPath (skipped when empty or missing; never overrides the real environment)
//  4. Environment variables
func Load(configPath, envPath string) (Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnv overrides configuration values from environment variables
func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("GRPC_PORT", &cfg.GRPCPort)
	setString("HTTP_PORT", &cfg.HTTPPort)
	setString("API_TOKEN", &cfg.APIToken)
	setString("DB_CONN_STR", &cfg.Database.ConnStr)
	setString("DB_HOST", &cfg.Database.Host)
	setString("DB_PORT", &cfg.Database.Port)
	setString("DB_USER", &cfg.Database.User)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("DB_NAME", &cfg.Database.Name)

	if v := os.Getenv("QUOTE_STORE"); v != "" {
		cfg.QuoteStore = QuoteStore(v)
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"STANDARD_DEFERMENT_RATE", &cfg.Valuation.StandardDefermentRatePct},
		{"TABLE_FALLBACK_RATE", &cfg.Valuation.TableFallbackRatePct},
		{"MIN_LEASE_YEARS", &cfg.Valuation.MinLeaseYears},
		{"MAX_LEASE_YEARS", &cfg.Valuation.MaxLeaseYears},
		{"WAITING_UPLIFT_PCT", &cfg.Valuation.WaitingUpliftPct},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = parsed
	}

	return nil
}

// Validate ensures the configuration is usable
// Returns an error if validation fails
func (c Config) Validate() error {
	if c.QuoteStore != QuoteStorePostgres && c.QuoteStore != QuoteStoreMemory {
		return errors.New("quote store must be postgres or memory")
	}

	v := c.Valuation
	if v.StandardDefermentRatePct <= 0 || v.StandardDefermentRatePct >= 100 {
		return errors.New("standard deferment rate must be between 0 and 100 percent")
	}

	if v.MinLeaseYears <= 0 {
		return errors.New("min lease years must be positive")
	}

	if v.MaxLeaseYears < v.MinLeaseYears {
		return errors.New("max lease years must not be below min lease years")
	}

	if v.WaitingUpliftPct < 0 {
		return errors.New("waiting uplift must not be negative")
	}

	for _, wait := range v.WaitingPeriods {
		if wait < 0 {
			return errors.New("waiting periods must not be negative")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string
// Format: "host=localhost port=5432 user=postgres password=postgres dbname=leasehold sslmode=disable"
func (d DatabaseConfig) ConnectionString() string {
	if d.ConnStr != "" {
		return d.ConnStr
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}
