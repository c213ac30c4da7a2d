package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	HTTP     HTTP
	Store    Store
	Postgres Postgres
	Redis    Redis
	Cache    Cache
	Import   Import
	CORS     CORS
}

// HTTP bounds server and per-request timing.
type HTTP struct {
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"10s"`
}

// Store selects the relational backend.
type Store struct {
	Driver      string `env:"STORE_DRIVER" envDefault:"postgres"`
	SQLiteDSN   string `env:"SQLITE_DSN" envDefault:"file:trivia.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"`
	AutoMigrate bool   `env:"STORE_AUTO_MIGRATE" envDefault:"false"`
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:"postgres"`
	Password string `env:"PG_PASSWORD" envDefault:""`
	Database string `env:"PG_DATABASE" envDefault:"trivia"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// ConnString renders the keyword/value DSN understood by pgx.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode, p.MaxConns)
}

// Redis holds cache configuration. An empty address disables caching.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Enabled reports whether a Redis address is configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

// Cache governs the category cache.
type Cache struct {
	CategoryTTL  time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
	WarmInterval time.Duration `env:"CATEGORY_WARM_INTERVAL" envDefault:"1m"`
}

// Import configures the remote question sources used by the migrator.
type Import struct {
	OpenTDBURL     string        `env:"OPENTDB_URL" envDefault:""`
	TriviaAPIURL   string        `env:"TRIVIA_API_URL" envDefault:""`
	TriviaAPIKey   string        `env:"TRIVIA_API_KEY" envDefault:""`
	RequestTimeout time.Duration `env:"IMPORT_HTTP_TIMEOUT" envDefault:"5s"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,PUT,POST,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints the env tags cannot express.
func (c *App) Validate() error {
	switch c.Store.Driver {
	case "postgres":
		if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.Database == "" {
			return fmt.Errorf("postgres driver needs PG_HOST, PG_USER and PG_DATABASE")
		}
		if c.Postgres.MaxConns < 1 {
			return fmt.Errorf("PG_MAX_CONNS must be positive, got %d", c.Postgres.MaxConns)
		}
	case "sqlite":
		if c.Store.SQLiteDSN == "" {
			return fmt.Errorf("sqlite driver needs SQLITE_DSN")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want postgres or sqlite)", c.Store.Driver)
	}
	if c.Cache.WarmInterval < 0 {
		return fmt.Errorf("CATEGORY_WARM_INTERVAL must not be negative")
	}
	return nil
}
