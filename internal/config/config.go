package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"

	StateStoreRedis = "redis"
	StateStoreBolt  = "bolt"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Storage     StorageConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Session     SessionConfig
	OAuth       OAuthConfig
	Password    PasswordConfig
	Tasks       TasksConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxConn      int
}

type StorageConfig struct {
	Driver string
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// Enabled reports whether a Redis server is configured at all.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

type SessionConfig struct {
	Secret       string
	Issuer       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type ProviderCredentials struct {
	ClientID     string
	ClientSecret string
}

func (p ProviderCredentials) Configured() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

type OAuthConfig struct {
	Google          ProviderCredentials
	GitHub          ProviderCredentials
	RedirectBaseURL string
	PostLoginURL    string
	StateTTL        time.Duration
	StateStore      string
	BoltPath        string
	JanitorInterval time.Duration
	JanitorSchedule string
}

type PasswordConfig struct {
	Cost int
}

type TasksConfig struct {
	EnforceOwner bool
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env),
// applies defaults and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "taskmanager"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:      getInt("SERVER_MAX_CONN", 0),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getString("STORAGE_DRIVER", DriverMongo)),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "taskmanager"),
			User:            getString("DB_USER", "taskmanager"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 2),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:            os.Getenv("MONGODB_URI"),
			Database:       getString("MONGODB_DATABASE", "reunion"),
			ConnectTimeout: getDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:       getString("SESSION_SECRET", os.Getenv("JWT_SECRET")),
			Issuer:       getString("SESSION_ISSUER", "taskmanager"),
			TTL:          getDuration("SESSION_TTL", 30*24*time.Hour),
			CookieName:   getString("SESSION_COOKIE_NAME", "session_token"),
			CookieSecure: getBool("SESSION_COOKIE_SECURE", false),
		},
		OAuth: OAuthConfig{
			Google: ProviderCredentials{
				ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
				ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			},
			GitHub: ProviderCredentials{
				ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
				ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			},
			RedirectBaseURL: strings.TrimRight(getString("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"), "/"),
			PostLoginURL:    getString("OAUTH_POST_LOGIN_URL", "/"),
			StateTTL:        getDuration("OAUTH_STATE_TTL", 10*time.Minute),
			StateStore:      strings.ToLower(getString("OAUTH_STATE_STORE", StateStoreBolt)),
			BoltPath:        getString("OAUTH_STATE_BOLT_PATH", "./data/oauth_state.db"),
			JanitorInterval: getDuration("OAUTH_STATE_JANITOR_INTERVAL", time.Minute),
			JanitorSchedule: os.Getenv("OAUTH_STATE_JANITOR_SCHEDULE"),
		},
		Password: PasswordConfig{
			Cost: getInt("PASSWORD_HASH_COST", 14),
		},
		Tasks: TasksConfig{
			EnforceOwner: getBool("TASKS_ENFORCE_OWNER", false),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Storage.Driver == DriverPostgres && cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required for the mongo driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	switch c.OAuth.StateStore {
	case StateStoreRedis:
		if !c.Redis.Enabled() {
			errs = append(errs, errors.New("OAUTH_STATE_STORE=redis requires REDIS_URL"))
		}
	case StateStoreBolt:
		if c.OAuth.BoltPath == "" {
			errs = append(errs, errors.New("OAUTH_STATE_BOLT_PATH is required for the bolt state store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown OAUTH_STATE_STORE %q", c.OAuth.StateStore))
	}

	if c.Password.Cost < 4 || c.Password.Cost > 31 {
		errs = append(errs, fmt.Errorf("PASSWORD_HASH_COST %d out of range 4..31", c.Password.Cost))
	}

	return errors.Join(errs...)
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

// CallbackURL is the redirect URI registered with an identity provider.
func (c *Config) CallbackURL(provider string) string {
	return fmt.Sprintf("%s/api/v1/auth/%s/callback", c.OAuth.RedirectBaseURL, provider)
}
