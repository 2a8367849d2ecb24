package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"server"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestParseFlags_Overrides(t *testing.T) {
	resetArgs(t, "-a", ":9090", "-d", "postgres://x/y", "-u", "ops", "-t", "25")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "postgres://x/y", cfg.DatabaseDSN)
	assert.Equal(t, "ops", cfg.AdminUsername)
	assert.Equal(t, 25*time.Second, cfg.ShutdownTimeout)
}

func TestParseJson_Overrides(t *testing.T) {
	file := filepath.Join(t.TempDir(), "server.json")
	payload, err := json.Marshal(map[string]any{
		"http_addr":        ":7070",
		"admin_username":   "desk",
		"shutdown_timeout": "30s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, payload, 0o600))

	resetArgs(t, "-c", file)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, "desk", cfg.AdminUsername)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, "change-this-secure-password", cfg.AdminPassword)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":6060")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":6060", cfg.HTTPAddr)
	assert.Equal(t, "s3cret", cfg.AdminPassword)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", cfg.AdminPasswordHash)
}

func TestLoadConfig_FlagBeatsJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"http_addr": ":7070"}`), 0o600))

	resetArgs(t, "-c", file, "-a", ":9999")

	cfg := LoadConfig()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
}
