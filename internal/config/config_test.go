package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", DriverMemory)
	t.Setenv("OAUTH_STATE_STORE", StateStoreBolt)
	t.Setenv("REDIS_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("PASSWORD_HASH_COST", "")
	t.Setenv("OAUTH_STATE_JANITOR_SCHEDULE", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "session_token", cfg.Session.CookieName)
	assert.Equal(t, 14, cfg.Password.Cost)
	assert.Equal(t, "reunion", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Minute, cfg.OAuth.StateTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Tasks.EnforceOwner)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, "http://localhost:8080/api/v1/auth/google/callback", cfg.CallbackURL("google"))
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_TTL", "3600")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TASKS_ENFORCE_OWNER", "true")
	t.Setenv("OAUTH_REDIRECT_BASE_URL", "https://tasks.example.com/")
	t.Setenv("OAUTH_STATE_JANITOR_SCHEDULE", "0 */5 * * * *")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
	assert.True(t, cfg.Tasks.EnforceOwner)
	assert.Equal(t, "0 */5 * * * *", cfg.OAuth.JanitorSchedule)
	assert.Equal(t, "https://tasks.example.com/api/v1/auth/github/callback", cfg.CallbackURL("github"))
}

func TestLoad_PostgresURLIsBuiltFromParts(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", DriverPostgres)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "tasks")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/tasks?sslmode=disable", cfg.Database.URL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid memory config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.Session.Secret = "" },
			wantErr: "SESSION_SECRET is required",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "sqlite" },
			wantErr: `unknown STORAGE_DRIVER "sqlite"`,
		},
		{
			name:    "mongo without uri",
			mutate:  func(c *Config) { c.Storage.Driver = DriverMongo },
			wantErr: "MONGODB_URI is required",
		},
		{
			name:    "redis state store without redis",
			mutate:  func(c *Config) { c.OAuth.StateStore = StateStoreRedis },
			wantErr: "requires REDIS_URL",
		},
		{
			name:    "password cost out of range",
			mutate:  func(c *Config) { c.Password.Cost = 2 },
			wantErr: "PASSWORD_HASH_COST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Storage:  StorageConfig{Driver: DriverMemory},
				Session:  SessionConfig{Secret: "s", TTL: time.Hour},
				OAuth:    OAuthConfig{StateStore: StateStoreBolt, BoltPath: "x.db"},
				Password: PasswordConfig{Cost: 10},
			}
			tt.mutate(cfg)

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
