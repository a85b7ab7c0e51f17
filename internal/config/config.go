// Package config loads the service configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Config holds every setting the chat service reads at startup.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// DBDriver selects the database/sql driver behind the GORM postgres dialector:
	// "pgx" (default) or "postgres" (lib/pq).
	DBDriver       string `env:"DB_DRIVER" envDefault:"pgx"`
	DBDSN          string `env:"DB_DSN,required,notEmpty"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	AutoMigrate    bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// RedisAddr is optional. Without it the gateway delivers in-process only.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AccessTokenSecret string        `env:"ACCESS_TOKEN_SECRET,required,notEmpty"`
	WSTokenSecret     string        `env:"WS_TOKEN_SECRET,required,notEmpty"`
	WSTokenTTL        time.Duration `env:"WS_TOKEN_TTL" envDefault:"60s"`

	LocalesDir      string `env:"LOCALES_DIR" envDefault:"locales"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// AllowedOrigins is a comma separated list; "*" accepts any origin.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads .env (if any) and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: .env file not loaded, using process environment")
	}
	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AccessTokenSecret == c.WSTokenSecret {
		return fmt.Errorf("WS_TOKEN_SECRET must differ from ACCESS_TOKEN_SECRET")
	}
	if c.WSTokenTTL <= 0 {
		return fmt.Errorf("WS_TOKEN_TTL must be positive")
	}
	return nil
}

// OriginAllowed reports whether a WebSocket handshake from origin is accepted.
func (c *Config) OriginAllowed(origin string) bool {
	for _, o := range c.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
