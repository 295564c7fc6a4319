// Package config loads the back-office configuration from an optional YAML
// file with environment-variable overrides on top. Environment always wins,
// so a deployment can ship one file and tune single values per instance.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Duration wraps time.Duration so values parse from "90s"/"15m" strings in
// both YAML and environment variables.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(raw))
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the env parser.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// StoreConfig selects and parameterizes the persistence backend.
type StoreConfig struct {
	// Backend is one of memory, file, sqlite.
	Backend string `yaml:"backend" env:"STORE_BACKEND"`
	// Dir is the data directory of the file backend.
	Dir string `yaml:"dir" env:"STORE_DIR"`
	// DSN is the sqlite data source name.
	DSN string `yaml:"dsn" env:"STORE_DSN"`
}

// AuthConfig parameterizes session token issuance.
type AuthConfig struct {
	Secret   string   `yaml:"secret" env:"AUTH_SECRET"`
	TokenTTL Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL"`
}

// VerifyConfig parameterizes the verification-code capability.
type VerifyConfig struct {
	CodeTTL Duration `yaml:"code_ttl" env:"VERIFY_CODE_TTL"`
	// SweepSchedule is a cron expression for the expiry sweep.
	SweepSchedule string `yaml:"sweep_schedule" env:"VERIFY_SWEEP_SCHEDULE"`
}

// BootstrapConfig creates the first admin account on an empty store.
type BootstrapConfig struct {
	AdminLogin    string `yaml:"admin_login" env:"BOOTSTRAP_ADMIN_LOGIN"`
	AdminPassword string `yaml:"admin_password" env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// Config is the full back-office configuration.
type Config struct {
	LogLevel    string          `yaml:"log_level" env:"LOG_LEVEL"`
	MetricsAddr string          `yaml:"metrics_addr" env:"METRICS_ADDR"`
	Store       StoreConfig     `yaml:"store"`
	Auth        AuthConfig      `yaml:"auth"`
	Verify      VerifyConfig    `yaml:"verify"`
	Bootstrap   BootstrapConfig `yaml:"bootstrap"`
}

// Default returns the configuration used when neither file nor environment
// say otherwise.
func Default() Config {
	return Config{
		LogLevel:    "info",
		MetricsAddr: ":9090",
		Store: StoreConfig{
			Backend: BackendMemory,
			Dir:     "data",
			DSN:     "file:backoffice.db?_journal_mode=WAL",
		},
		Auth: AuthConfig{
			TokenTTL: Duration{Duration: time.Hour},
		},
		Verify: VerifyConfig{
			CodeTTL:       Duration{Duration: 15 * time.Minute},
			SweepSchedule: "*/10 * * * *",
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the wiring cannot work with.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir must be set for the file backend")
		}
	case BackendSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn must be set for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret must be set")
	}
	if c.Auth.TokenTTL.Duration <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %v", c.Auth.TokenTTL.Duration)
	}
	if c.Verify.CodeTTL.Duration <= 0 {
		return fmt.Errorf("verify.code_ttl must be positive, got %v", c.Verify.CodeTTL.Duration)
	}
	if c.Verify.SweepSchedule == "" {
		return fmt.Errorf("verify.sweep_schedule must be set")
	}
	return nil
}
