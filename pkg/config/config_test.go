package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, StoragePostgres, cfg.App.Storage)
	assert.Equal(t, 10, cfg.App.RestaurantIDMaxAttempts)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, time.UTC, cfg.App.Location())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("APP_TIMEZONE", "America/Bogota")
	v.Set("STORAGE_DRIVER", "Memory")
	v.Set("RESTAURANT_ID_MAX_ATTEMPTS", "3")
	v.Set("REDIS_ADDR", "localhost:6379")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.App.Storage)
	assert.Equal(t, 3, cfg.App.RestaurantIDMaxAttempts)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "America/Bogota", cfg.App.Location().String())
}

func TestFromViper_ZonaInvalida(t *testing.T) {
	v := viper.New()
	v.Set("APP_TIMEZONE", "Marte/Olympus")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "sqlite")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "horarios", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/horarios?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
