package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "memory"

[lab]
timezone = "Asia/Kolkata"
completion_interval = 30

[idempotency]
ttl = 600
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Lab.CompletionInterval())
	assert.Equal(t, 10*time.Minute, cfg.Idempotency.TTL())

	loc, err := cfg.Lab.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "postgres"
host = "db.internal"
`)
	t.Setenv("DB_HOST", "override-host")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "override-host", cfg.Database.Host)
	assert.Equal(t, 7000, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
	assert.Contains(t, cfg.Database.DSN(), "host=override-host")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	t.Setenv("HTTP_PORT", "eighty")
	_, err = Load(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "bad port", modify: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "unknown driver", modify: func(c *Config) { c.Database.Driver = "sqlite" }},
		{name: "missing host", modify: func(c *Config) { c.Database.Host = "" }},
		{name: "bad timezone", modify: func(c *Config) { c.Lab.Timezone = "Mars/Olympus" }},
		{name: "bad rate limit", modify: func(c *Config) { c.RateLimit.Burst = 0 }},
		{name: "bad ttl", modify: func(c *Config) { c.Idempotency.TTLSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}
