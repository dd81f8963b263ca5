package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.False(t, cfg.AMQP.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.Equal(t, "text", cfg.Log.SlogFormat())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("PSQL_MAX_CONNS", "8")
	t.Setenv("LEDGER_TOKENS", "0x3000000000000000000000000000000000000003,0x4000000000000000000000000000000000000004")
	t.Setenv("LEDGER_FAUCET_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "json", cfg.Log.SlogFormat())
	assert.Equal(t, int32(8), cfg.Psql.MaxConns)
	assert.True(t, cfg.Ledger.FaucetEnabled)

	tokens, err := cfg.Ledger.TokenAddresses()
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "sqlite"}},
		{"bad token", map[string]string{"LEDGER_TOKENS": "not-an-address"}},
		{"bad seed owner", map[string]string{"LEDGER_SEED_OWNER": "0x0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{}
	cfg.Log.Format = "JSON"
	cfg.Log.Level = "warn"

	logger := cfg.Log.NewLogger(&buf)
	logger.Info("dropped")
	logger.Warn("kept", slog.Int("n", 1))

	out := buf.String()
	assert.False(t, strings.Contains(out, "dropped"))
	assert.True(t, strings.HasPrefix(out, "{"), out)
	assert.True(t, strings.Contains(out, `"service":"certsale"`), out)
}
