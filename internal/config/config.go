package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	//App
	Env string `env:"ENV" envDefault:"dev"` // dev / staging / prod
	//HTTP
	HTTPAddr     string   `env:"HTTP_ADDR" envDefault:":8080"`
	APIPrefix    string   `env:"API_PREFIX" envDefault:"/api/auth"`
	MaxBodyBytes int64    `env:"REQUEST_BODY_MAX_SIZE" envDefault:"1048576"`
	CORSOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	//Auth / Security
	JWTSecret       string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"account-service"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"12"`
	HashConcurrency int           `env:"HASH_CONCURRENCY" envDefault:"0"` // 0 = NumCPU

	// Accounts
	RolePolicy         string `env:"ROLE_POLICY" envDefault:"fixed"`
	DefaultRole        string `env:"DEFAULT_ROLE" envDefault:"user"`
	EmailCaseSensitive bool   `env:"EMAIL_CASE_SENSITIVE" envDefault:"false"`

	// Infrastructure
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"memory"`
	DBAddr          string        `env:"DB_ADDR"`
	DBDebug         bool          `env:"DB_DEBUG" envDefault:"false"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	AccountCacheTTL time.Duration `env:"ACCOUNT_CACHE_TTL" envDefault:"5m"`
	RabbitURL       string        `env:"RABBIT_URL"`
	RabbitExchange  string        `env:"RABBIT_EXCHANGE" envDefault:"account.events"`

	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"1m"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	// bcrypt's own bounds
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be within 4..31, got %d", c.BcryptCost)
	}
	if c.HashConcurrency < 0 {
		return fmt.Errorf("HASH_CONCURRENCY must not be negative")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if !domain.IsValidRolePolicy(c.RolePolicy) {
		return fmt.Errorf("invalid ROLE_POLICY: %q", c.RolePolicy)
	}
	if !domain.IsValidRole(c.DefaultRole) {
		return fmt.Errorf("invalid DEFAULT_ROLE: %q", c.DefaultRole)
	}

	if !strings.HasPrefix(c.APIPrefix, "/") || (len(c.APIPrefix) > 1 && strings.HasSuffix(c.APIPrefix, "/")) {
		return fmt.Errorf("API_PREFIX must start with / and not end with /, got %q", c.APIPrefix)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("REQUEST_BODY_MAX_SIZE must be positive")
	}

	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DBAddr == "" {
			return fmt.Errorf("missing required env var: DB_ADDR (STORE_DRIVER=postgres)")
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER: %q", c.StoreDriver)
	}
	return nil
}
