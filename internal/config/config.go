package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Credential store backends.
const (
	CredentialStorePostgres = "postgres"
	CredentialStoreRedis    = "redis"
)

// Update modes for resource PUT requests.
const (
	UpdateModeOverwrite = "overwrite"
	UpdateModeMerge     = "merge"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Resources ResourceConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME, default=bookseller-api"`
	Env                   string `env:"APP_ENV, default=development"`
	Host                  string `env:"APP_HOST, default=0.0.0.0"`
	Port                  string `env:"APP_PORT, default=8080"`
	Version               string `env:"APP_VERSION, default=dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS, default=30"`
	ExposeStoreErrors     bool   `env:"HTTP_EXPOSE_STORE_ERRORS, default=false"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	Host           string `env:"DB_HOST, required"`
	Port           int    `env:"DB_PORT, default=5432"`
	User           string `env:"DB_USER, required"`
	Password       string `env:"DB_PASSWORD, required"`
	Database       string `env:"DB_NAME, required"`
	SSLMode        string `env:"DB_SSLMODE, default=disable"`
	MaxConns       int32  `env:"DB_MAX_CONNS, default=10"`
	MinConns       int32  `env:"DB_MIN_CONNS, default=2"`
	ConnMaxIdleSec int32  `env:"DB_CONN_MAX_IDLE_SECONDS, default=30"`
	ConnMaxLifeSec int32  `env:"DB_CONN_MAX_LIFE_SECONDS, default=300"`
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL, default=info"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	Enabled               bool   `env:"AUTH_ENABLED, default=true"`
	JWTSecret             string `env:"AUTH_JWT_SECRET, required"`
	AccessTokenTTLMinutes int    `env:"AUTH_ACCESS_TOKEN_TTL_MINUTES, default=60"`
	BcryptCost            int    `env:"AUTH_BCRYPT_COST, default=12"`
	CredentialStore       string `env:"AUTH_CREDENTIAL_STORE, default=postgres"`
	WriteRole             string `env:"AUTH_WRITE_ROLE"`
	RateLimitPerMinute    int    `env:"AUTH_RATE_LIMIT_PER_MINUTE, default=30"`
}

// ResourceConfig tunes the CRUD layer.
type ResourceConfig struct {
	UpdateMode string `env:"RESOURCE_UPDATE_MODE, default=overwrite"`
}

// Load reads configuration from a .env file (if any) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(context.Background(), envconfig.OsLookuper())
}

// LoadWith decodes configuration from the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.CredentialStore {
	case CredentialStorePostgres:
	case CredentialStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("AUTH_CREDENTIAL_STORE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("invalid AUTH_CREDENTIAL_STORE %q", c.Auth.CredentialStore)
	}
	switch c.Resources.UpdateMode {
	case UpdateModeOverwrite, UpdateModeMerge:
	default:
		return fmt.Errorf("invalid RESOURCE_UPDATE_MODE %q", c.Resources.UpdateMode)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// DSN builds a postgres connection URL from the discrete settings.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:   "/" + p.Database,
	}
	q := url.Values{}
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// AccessTokenTTL returns the token validity window.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}
