package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"BONITO_APP_NAME",
	"BONITO_APP_ENV",
	"BONITO_APP_PORT",
	"BONITO_DATABASE_HOST",
	"BONITO_DATABASE_PORT",
	"BONITO_DATABASE_USER",
	"BONITO_DATABASE_PASSWORD",
	"BONITO_DATABASE_DBNAME",
	"BONITO_DATABASE_SSLMODE",
	"BONITO_DATABASE_MAX_OPEN_CONNS",
	"BONITO_DATABASE_MAX_IDLE_CONNS",
	"BONITO_AGENDA_STORE",
	"BONITO_AGENDA_TIMEZONE",
	"BONITO_AGENDA_UPCOMING_DAYS",
	"BONITO_AUTH_SECRET",
	"BONITO_DRAFT_STORE",
	"BONITO_DRAFT_TTL",
	"BONITO_DRAFT_KEY_PREFIX",
	"BONITO_HTTP_CORS_ALLOW_ORIGINS",
	"BONITO_HTTP_SWAGGER_ENABLED",
	"BONITO_TELEMETRY_SAMPLING_RATIO",
	"BONITO_TELEMETRY_DB_LOG_FULL_SQL",
}

// clearEnv blanks every key the tests touch; viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "bonito-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "bonito", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)

		assert.Equal(t, AgendaStorePostgres, cfg.Agenda.Store)
		assert.Equal(t, "America/Bogota", cfg.Agenda.Timezone)
		assert.Equal(t, 7, cfg.Agenda.UpcomingDays)

		assert.Equal(t, DraftStoreRedis, cfg.Draft.Store)
		assert.Equal(t, 7*24*time.Hour, cfg.Draft.TTL)
		assert.Equal(t, "bonito:draft:", cfg.Draft.KeyPrefix)

		assert.Equal(t, "audit_events", cfg.Mongo.Collection)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, 200*time.Millisecond, cfg.Telemetry.DBSlowQueryThresh)
		assert.False(t, cfg.HTTP.SwaggerEnabled)
	})

	t.Run("loads values from environment variables with BONITO prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BONITO_APP_NAME", "test-app")
		t.Setenv("BONITO_APP_ENV", "testing")
		t.Setenv("BONITO_APP_PORT", "9000")
		t.Setenv("BONITO_DATABASE_HOST", "testdb.local")
		t.Setenv("BONITO_DATABASE_PORT", "5433")
		t.Setenv("BONITO_DATABASE_USER", "testuser")
		t.Setenv("BONITO_DATABASE_PASSWORD", "testpass")
		t.Setenv("BONITO_DATABASE_DBNAME", "testdb")
		t.Setenv("BONITO_DATABASE_SSLMODE", "require")
		t.Setenv("BONITO_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("BONITO_DATABASE_MAX_IDLE_CONNS", "20")
		t.Setenv("BONITO_AGENDA_STORE", "Mongo")
		t.Setenv("BONITO_AGENDA_TIMEZONE", "UTC")
		t.Setenv("BONITO_AGENDA_UPCOMING_DAYS", "14")
		t.Setenv("BONITO_DRAFT_STORE", "memory")
		t.Setenv("BONITO_DRAFT_TTL", "2h")
		t.Setenv("BONITO_HTTP_SWAGGER_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 20, cfg.Database.MaxIdleConns)
		assert.Equal(t, AgendaStoreMongo, cfg.Agenda.Store)
		assert.Equal(t, "UTC", cfg.Agenda.Timezone)
		assert.Equal(t, 14, cfg.Agenda.UpcomingDays)
		assert.Equal(t, DraftStoreMemory, cfg.Draft.Store)
		assert.Equal(t, 2*time.Hour, cfg.Draft.TTL)
		assert.True(t, cfg.HTTP.SwaggerEnabled)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BONITO_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("BONITO_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BONITO_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects unknown agenda store", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BONITO_AGENDA_STORE", "firestore")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "agenda.store")
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BONITO_AGENDA_TIMEZONE", "Mars/Olympus_Mons")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "agenda.timezone")
	})

	t.Run("rejects unknown draft store", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BONITO_DRAFT_STORE", "localstorage")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "draft.store")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BONITO_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BONITO_APP_ENV", "production")
		t.Setenv("BONITO_AUTH_SECRET", "this-is-a-very-secure-token-secret-32chars")
		t.Setenv("BONITO_DATABASE_PASSWORD", "secure-password")
		t.Setenv("BONITO_DATABASE_SSLMODE", "require")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"requires auth.secret", "BONITO_AUTH_SECRET", "", "auth.secret is required in production"},
		{"requires long auth.secret", "BONITO_AUTH_SECRET", "short-secret", "auth.secret must be at least 32 characters"},
		{"requires database.password", "BONITO_DATABASE_PASSWORD", "", "database.password is required in production"},
		{"requires SSL", "BONITO_DATABASE_SSLMODE", "disable", "database.sslmode cannot be 'disable' in production"},
		{"rejects memory agenda store", "BONITO_AGENDA_STORE", "memory", "agenda.store cannot be 'memory'"},
		{"rejects memory draft store", "BONITO_DRAFT_STORE", "memory", "draft.store cannot be 'memory'"},
		{"rejects wildcard CORS", "BONITO_HTTP_CORS_ALLOW_ORIGINS", "*", "cors_allow_origins cannot be '*'"},
		{"rejects full SQL in traces", "BONITO_TELEMETRY_DB_LOG_FULL_SQL", "true", "db_log_full_sql must be false"},
		{"rejects swagger", "BONITO_HTTP_SWAGGER_ENABLED", "true", "swagger_enabled must be false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidProductionBase(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
