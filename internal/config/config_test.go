package config_test

import (
	"testing"
	"time"

	"github.com/cha0jun/leavey/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "3000", cfg.HTTP.Port)
		assert.Equal(t, "stub", cfg.Sync.Driver)
		assert.Equal(t, 5*time.Second, cfg.Sync.Timeout)
		assert.Equal(t, 22, cfg.Recon.DefaultWorkingDays)
		assert.Equal(t, 50, cfg.Outbox.BatchSize)
		assert.Equal(t, "local", cfg.Upload.Driver)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("SYNC_DRIVER", "KAFKA")
		t.Setenv("KAFKA_BROKER", "kafka:9092")
		t.Setenv("SYNC_TIMEOUT", "2s")
		t.Setenv("RECON_DEFAULT_WORKING_DAYS", "20")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.DB.Host)
		assert.Equal(t, "kafka", cfg.Sync.Driver)
		assert.Equal(t, "kafka:9092", cfg.Kafka.Broker)
		assert.Equal(t, 2*time.Second, cfg.Sync.Timeout)
		assert.Equal(t, 20, cfg.Recon.DefaultWorkingDays)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load()
		assert.EqualError(t, err, "JWT_SECRET is required")
	})

	t.Run("kafka sync without broker", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SYNC_DRIVER", "kafka")
		t.Setenv("KAFKA_BROKER", "")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
