package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"STUDYGROUPS_ADDR", "STUDYGROUPS_STORE", "DATABASE_URL", "STUDYGROUPS_SQLITE_DSN",
		"STUDYGROUPS_SEED", "STUDYGROUPS_CREATOR_MEMBERSHIP", "STUDYGROUPS_ALLOWED_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "file::memory:?cache=shared", cfg.SQLiteDSN)
	assert.False(t, cfg.Seed)
	assert.False(t, cfg.CreatorMembership)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STUDYGROUPS_ADDR", ":9090")
	t.Setenv("STUDYGROUPS_STORE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/studygroups")
	t.Setenv("STUDYGROUPS_SEED", "true")
	t.Setenv("STUDYGROUPS_CREATOR_MEMBERSHIP", "1")
	t.Setenv("STUDYGROUPS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.True(t, cfg.Seed)
	assert.True(t, cfg.CreatorMembership)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestFromEnvErrors(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STUDYGROUPS_STORE", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("STUDYGROUPS_STORE", "mongo")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "mongo")
	})

	t.Run("bad boolean", func(t *testing.T) {
		t.Setenv("STUDYGROUPS_STORE", "memory")
		t.Setenv("STUDYGROUPS_SEED", "perhaps")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "STUDYGROUPS_SEED")
	})
}
