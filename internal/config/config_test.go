package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsDisablePersistence(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("DB_URL", "")
	t.Setenv("STORE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverDisabled, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CorsOrigins)
	assert.False(t, cfg.R2.Enabled())
	assert.False(t, cfg.Google.Enabled())
}

func TestLoad_AutoPicksPostgresWithURL(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("DB_URL", "postgres://localhost/safehands")
	t.Setenv("STORE_DRIVER", "auto")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
}

func TestLoad_RejectsPostgresWithoutURL(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("DB_URL", "")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
}

func TestIsSuperAdminEmail(t *testing.T) {
	cfg := Config{SuperAdminEmails: []string{"Owner@Example.com", " ops@example.com"}}

	assert.True(t, cfg.IsSuperAdminEmail("owner@example.com"))
	assert.True(t, cfg.IsSuperAdminEmail("ops@example.com"))
	assert.False(t, cfg.IsSuperAdminEmail("guest@example.com"))
}

func TestLoad_NestedPrefixes(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("R2_ACCOUNT_ID", "acct")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "vault")
	t.Setenv("GOOGLE_CLIENT_ID", "cid")
	t.Setenv("GOOGLE_CLIENT_SECRET", "csecret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.R2.Enabled())
	assert.Equal(t, "auto", cfg.R2.Region)
	assert.True(t, cfg.Google.Enabled())
}
