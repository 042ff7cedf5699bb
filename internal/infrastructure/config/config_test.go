package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "tiles-backoffice", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "tiles", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "increase", cfg.Inventory.PurchaseDirection)
		assert.True(t, cfg.Inventory.DefaultCoverage.Equal(decimal.RequireFromString("1.44")))
		assert.True(t, cfg.Inventory.DefaultTaxRate.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, 5, cfg.Dashboard.RecentLimit)
		assert.Equal(t, 30*time.Second, cfg.Dashboard.CacheTTL)
		assert.Equal(t, 15*time.Minute, cfg.JWT.ResetTokenExpiration)
		assert.Equal(t, "local", cfg.Storage.Driver)
	})

	t.Run("loads values from environment variables with TILES prefix", func(t *testing.T) {
		t.Setenv("TILES_APP_PORT", "9000")
		t.Setenv("TILES_DATABASE_HOST", "testdb.local")
		t.Setenv("TILES_DATABASE_PASSWORD", "p@ss word")
		t.Setenv("TILES_INVENTORY_PURCHASE_DIRECTION", "Decrease")
		t.Setenv("TILES_INVENTORY_DEFAULT_COVERAGE", "2.16")
		t.Setenv("TILES_DASHBOARD_CACHE_TTL", "1m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, "decrease", cfg.Inventory.PurchaseDirection)
		assert.True(t, cfg.Inventory.DefaultCoverage.Equal(decimal.RequireFromString("2.16")))
		assert.Equal(t, time.Minute, cfg.Dashboard.CacheTTL)
	})

	t.Run("rejects unknown purchase direction", func(t *testing.T) {
		t.Setenv("TILES_INVENTORY_PURCHASE_DIRECTION", "sideways")
		_, err := Load()
		assert.ErrorContains(t, err, "purchase_direction")
	})

	t.Run("rejects malformed coverage", func(t *testing.T) {
		t.Setenv("TILES_INVENTORY_DEFAULT_COVERAGE", "lots")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires a strong secret", func(t *testing.T) {
		t.Setenv("TILES_APP_ENV", "production")
		t.Setenv("TILES_JWT_SECRET", "short")
		_, err := Load()
		assert.ErrorContains(t, err, "jwt.secret")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("idle connections cannot exceed open", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 100
		assert.Error(t, cfg.validate())
	})

	t.Run("coverage must be positive", func(t *testing.T) {
		cfg := base()
		cfg.Inventory.Coverage = map[string]decimal.Decimal{"tiles": decimal.Zero}
		assert.ErrorContains(t, cfg.validate(), "inventory.coverage.tiles")
	})

	t.Run("s3 needs a bucket", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Driver = "s3"
		assert.Error(t, cfg.validate())
		cfg.Storage.Bucket = "uploads"
		assert.NoError(t, cfg.validate())
	})

	t.Run("sampling ratio bounds", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})

	t.Run("production rules", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())

		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "tiles", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/tiles?sslmode=disable", d.DSN())
}
