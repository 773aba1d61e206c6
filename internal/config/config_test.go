package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 5.0, cfg.Valuation.StandardDefermentRatePct)
	assert.Equal(t, []float64{3, 5, 10}, cfg.Valuation.WaitingPeriods)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
grpc_port: ":9090"
quote_store: memory
database:
  host: db.internal
valuation:
  standard_deferment_rate_pct: 4.75
  max_lease_years: 150
  waiting_periods: [1, 2]
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.GRPCPort)
	assert.Equal(t, QuoteStoreMemory, cfg.QuoteStore)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 4.75, cfg.Valuation.StandardDefermentRatePct)
	assert.Equal(t, 150.0, cfg.Valuation.MaxLeaseYears)
	assert.Equal(t, []float64{1, 2}, cfg.Valuation.WaitingPeriods)

	// Untouched keys keep their defaults
	assert.Equal(t, ":8081", cfg.HTTPPort)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 1.0, cfg.Valuation.MinLeaseYears)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "grpc_port: \":9090\"\n")
	t.Setenv("GRPC_PORT", ":7070")
	t.Setenv("QUOTE_STORE", "memory")
	t.Setenv("STANDARD_DEFERMENT_RATE", "5.5")
	t.Setenv("DB_CONN_STR", "postgres://u:p@host/db")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.GRPCPort)
	assert.Equal(t, QuoteStoreMemory, cfg.QuoteStore)
	assert.Equal(t, 5.5, cfg.Valuation.StandardDefermentRatePct)
	assert.Equal(t, "postgres://u:p@host/db", cfg.Database.ConnectionString())
}

func TestLoad_EnvFile(t *testing.T) {
	t.Cleanup(func() { os.Unsetenv("API_TOKEN") })
	path := writeFile(t, ".env", "API_TOKEN=from-dotenv\n")

	cfg, err := Load("", path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIToken)
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("API_TOKEN", "from-env")
	path := writeFile(t, ".env", "API_TOKEN=from-dotenv\n")

	cfg, err := Load("", path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIToken)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed config file", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "valuation: [not, a, map\n")
		_, err := Load(path, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("non-numeric env value", func(t *testing.T) {
		t.Setenv("MIN_LEASE_YEARS", "one")
		_, err := Load("", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid MIN_LEASE_YEARS")
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Setenv("QUOTE_STORE", "redis")
		_, err := Load("", "")
		assert.EqualError(t, err, "quote store must be postgres or memory")
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown quote store",
			mutate:  func(c *Config) { c.QuoteStore = "redis" },
			wantErr: "quote store must be postgres or memory",
		},
		{
			name:    "zero standard deferment rate",
			mutate:  func(c *Config) { c.Valuation.StandardDefermentRatePct = 0 },
			wantErr: "standard deferment rate must be between 0 and 100 percent",
		},
		{
			name:    "deferment rate of 100%",
			mutate:  func(c *Config) { c.Valuation.StandardDefermentRatePct = 100 },
			wantErr: "standard deferment rate must be between 0 and 100 percent",
		},
		{
			name:    "zero min lease years",
			mutate:  func(c *Config) { c.Valuation.MinLeaseYears = 0 },
			wantErr: "min lease years must be positive",
		},
		{
			name:    "max below min",
			mutate:  func(c *Config) { c.Valuation.MaxLeaseYears = 0.5 },
			wantErr: "max lease years must not be below min lease years",
		},
		{
			name:    "negative uplift",
			mutate:  func(c *Config) { c.Valuation.WaitingUpliftPct = -1 },
			wantErr: "waiting uplift must not be negative",
		},
		{
			name:    "negative waiting period",
			mutate:  func(c *Config) { c.Valuation.WaitingPeriods = []float64{3, -5} },
			wantErr: "waiting periods must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	db := Default().Database
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=leasehold sslmode=disable",
		db.ConnectionString())

	db.ConnStr = "postgres://override"
	assert.Equal(t, "postgres://override", db.ConnectionString())
}
