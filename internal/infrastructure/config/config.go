package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	Port      string `env:"PORT,       default=5000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	DataStore string `env:"DATA_STORE, default=mongo"`
	BodyLimit string `env:"BODY_LIMIT, default=10M"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	CORS    CORSConfig
	Mail    MailConfig
	Admin   AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portfolio"`
}

// RedisConfig leaves Redis disabled when Addr is empty.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	Store  string        `env:"SESSION_STORE,  default=mongo"`
	TTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	Cookie string        `env:"SESSION_COOKIE, default=portfolio.sid"`
}

type CORSConfig struct {
	Origins     []string `env:"CORS_ORIGINS, default=http://localhost:5173,http://localhost:3000"`
	FrontendURL string   `env:"FRONTEND_URL"`
}

type MailConfig struct {
	Host     string        `env:"SMTP_HOST,    default=smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT,    default=587"`
	User     string        `env:"EMAIL_USER"`
	Password string        `env:"EMAIL_PASS"`
	To       string        `env:"MAIL_TO"`
	Timeout  time.Duration `env:"MAIL_TIMEOUT, default=10s"`
	Workers  int           `env:"MAIL_WORKERS, default=2"`
}

// AdminConfig seeds the first admin account (cmd/seed and memory mode).
type AdminConfig struct {
	Username  string `env:"ADMIN_USERNAME"`
	Email     string `env:"ADMIN_EMAIL"`
	Password  string `env:"ADMIN_PASSWORD"`
	FirstName string `env:"ADMIN_FIRST_NAME, default=Portfolio"`
	LastName  string `env:"ADMIN_LAST_NAME,  default=Admin"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins is CORS_ORIGINS plus FRONTEND_URL, deduplicated.
func (c *Config) AllowedOrigins() []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range append(append([]string{}, c.CORS.Origins...), c.CORS.FrontendURL) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}

// MailEnabled reports whether SMTP credentials are configured.
func (c *Config) MailEnabled() bool {
	return c.Mail.User != "" && c.Mail.Password != ""
}

// HasAdmin reports whether the ADMIN_* seed variables are set.
func (c *Config) HasAdmin() bool {
	return c.Admin.Username != "" && c.Admin.Email != "" && c.Admin.Password != ""
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DataStore = strings.ToLower(strings.TrimSpace(c.DataStore))
	c.Session.Store = strings.ToLower(strings.TrimSpace(c.Session.Store))
	if c.Mail.To == "" {
		c.Mail.To = c.Mail.User
	}
	// Sessions cannot outlive the process when there is no database at all.
	if c.DataStore == StoreMemory && c.Session.Store == StoreMongo {
		c.Session.Store = StoreMemory
	}
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	switch c.DataStore {
	case StoreMongo, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("DATA_STORE must be mongo or memory, got %q", c.DataStore))
	}
	switch c.Session.Store {
	case StoreMongo, StoreRedis, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be mongo, redis or memory, got %q", c.Session.Store))
	}
	if c.Session.Store == StoreRedis && c.Redis.Addr == "" {
		errs = append(errs, errors.New("SESSION_STORE=redis requires REDIS_ADDR"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.IsProduction() && len(c.Session.Secret) < 32 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 characters in production"))
	}
	if c.Mail.Workers <= 0 {
		errs = append(errs, errors.New("MAIL_WORKERS must be positive"))
	}
	if c.Mail.Timeout <= 0 {
		errs = append(errs, errors.New("MAIL_TIMEOUT must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
