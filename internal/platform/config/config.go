package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	platformstrings "studygroups/pkg/platform/strings"
)

// Store backends selectable through STUDYGROUPS_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Server captures process configuration.
type Server struct {
	Addr              string
	Store             string
	DatabaseURL       string
	SQLiteDSN         string
	Seed              bool
	CreatorMembership bool
	AllowedOrigins    []string
	LogLevel          string
	LogFormat         string
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func FromEnv() (Server, error) {
	_ = godotenv.Load()

	cfg := Server{
		Addr:           envOr("STUDYGROUPS_ADDR", ":8080"),
		Store:          strings.ToLower(envOr("STUDYGROUPS_STORE", StoreMemory)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLiteDSN:      envOr("STUDYGROUPS_SQLITE_DSN", "file::memory:?cache=shared"),
		AllowedOrigins: platformstrings.SplitList(os.Getenv("STUDYGROUPS_ALLOWED_ORIGINS"), ","),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.Seed, err = envBool("STUDYGROUPS_SEED", false); err != nil {
		return Server{}, err
	}
	if cfg.CreatorMembership, err = envBool("STUDYGROUPS_CREATOR_MEMBERSHIP", false); err != nil {
		return Server{}, err
	}

	switch cfg.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Server{}, fmt.Errorf("DATABASE_URL is required when STUDYGROUPS_STORE=%s", StorePostgres)
		}
	default:
		return Server{}, fmt.Errorf("unknown STUDYGROUPS_STORE %q", cfg.Store)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}
