package config

import (
	"encoding/base64"
	"fmt"

	"github.com/example/farmhouse/internal/domain/booking"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	// Empty DatabaseURL selects the in-memory store.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// bcrypt hash of the shared house password (see the hash command).
	GatePasswordHash string `envconfig:"GATE_PASSWORD_HASH" required:"true"`

	CookieHashKeyB64  string `envconfig:"COOKIE_HASH_KEY" required:"true"`
	CookieBlockKeyB64 string `envconfig:"COOKIE_BLOCK_KEY" required:"true"`

	Rooms []string `envconfig:"ROOMS"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	CookieHashKey  []byte `ignored:"true"`
	CookieBlockKey []byte `ignored:"true"`
}

// Load reads configuration from the environment, with a .env file as
// fallback for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	var err error
	cfg.CookieHashKey, err = decodeB64(cfg.CookieHashKeyB64)
	if err != nil {
		return Config{}, fmt.Errorf("COOKIE_HASH_KEY: %w", err)
	}
	cfg.CookieBlockKey, err = decodeB64(cfg.CookieBlockKeyB64)
	if err != nil {
		return Config{}, fmt.Errorf("COOKIE_BLOCK_KEY: %w", err)
	}
	return cfg, nil
}

// Registry returns the configured room list, falling back to the built-in
// house rooms when ROOMS is unset.
func (c Config) Registry() booking.Registry {
	if len(c.Rooms) == 0 {
		return booking.DefaultRegistry()
	}
	return booking.Registry(c.Rooms)
}

func (c Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

func decodeB64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
