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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "env-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL.Duration)
	assert.Equal(t, 15*time.Minute, cfg.Verify.CodeTTL.Duration)
	assert.Equal(t, "*/10 * * * *", cfg.Verify.SweepSchedule)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
store:
  backend: file
  dir: /var/lib/backoffice
auth:
  secret: file-secret
  token_ttl: 30m
verify:
  code_ttl: 5m
  sweep_schedule: "0 * * * *"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/backoffice", cfg.Store.Dir)
	assert.Equal(t, "file-secret", cfg.Auth.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL.Duration)
	assert.Equal(t, 5*time.Minute, cfg.Verify.CodeTTL.Duration)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: memory
auth:
  secret: file-secret
`)
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("STORE_DSN", "file:test.db")
	t.Setenv("AUTH_SECRET", "env-secret")
	t.Setenv("AUTH_TOKEN_TTL", "90s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "file:test.db", cfg.Store.DSN)
	assert.Equal(t, "env-secret", cfg.Auth.Secret)
	assert.Equal(t, 90*time.Second, cfg.Auth.TokenTTL.Duration)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Auth.Secret = "s"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, "unknown store backend"},
		{"file backend needs dir", func(c *Config) { c.Store.Backend = BackendFile; c.Store.Dir = "" }, "store.dir"},
		{"sqlite backend needs dsn", func(c *Config) { c.Store.Backend = BackendSQLite; c.Store.DSN = "" }, "store.dsn"},
		{"missing secret", func(c *Config) { c.Auth.Secret = "" }, "auth.secret"},
		{"non-positive token ttl", func(c *Config) { c.Auth.TokenTTL.Duration = 0 }, "auth.token_ttl"},
		{"non-positive code ttl", func(c *Config) { c.Verify.CodeTTL.Duration = -time.Second }, "verify.code_ttl"},
		{"empty sweep schedule", func(c *Config) { c.Verify.SweepSchedule = "" }, "verify.sweep_schedule"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDuration_UnmarshalText_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, d.UnmarshalText([]byte("not-a-duration")))
}
