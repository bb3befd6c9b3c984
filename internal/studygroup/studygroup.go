// Package studygroup wires the study group module: store selection, seeding,
// repository and HTTP handler.
package studygroup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"studygroups/internal/platform/config"
	"studygroups/internal/platform/postgres"
	"studygroups/internal/studygroup/handler"
	"studygroups/internal/studygroup/metrics"
	"studygroups/internal/studygroup/repository"
	"studygroups/internal/studygroup/store"
	"studygroups/internal/studygroup/store/memory"
	pgstore "studygroups/internal/studygroup/store/postgres"
	"studygroups/internal/studygroup/store/sqlite"
)

// Store is a repository store that can also report emptiness for seeding.
type Store interface {
	repository.Store
	store.Seeder
}

// Module bundles the wired study group components.
type Module struct {
	Repository *repository.Repository
	Handler    *handler.Handler
	close      func() error
}

// Close releases the underlying store connection, if any.
func (m *Module) Close() error {
	if m.close == nil {
		return nil
	}
	return m.close()
}

// OpenStore opens the backend selected by cfg.Store. The returned closer is
// never nil.
func OpenStore(ctx context.Context, cfg config.Server) (Store, func() error, error) {
	switch cfg.Store {
	case config.StorePostgres:
		if err := postgres.Migrate(cfg.DatabaseURL, pgstore.Migrations, pgstore.MigrationsDir); err != nil {
			return nil, nil, err
		}
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pgstore.New(db), db.Close, nil
	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite pool: %w", err)
		}
		return sqlite.New(db), sqlDB.Close, nil
	case config.StoreMemory, "":
		return memory.NewInMemory(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// New opens the configured store, seeds it when asked and builds the
// repository and handler on top of it.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger, reg prometheus.Registerer) (*Module, error) {
	s, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	m, err := NewWithStore(ctx, s, cfg, logger, reg)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	m.close = closeStore
	return m, nil
}

// NewWithStore builds the module on an already opened store.
func NewWithStore(ctx context.Context, s Store, cfg config.Server, logger *slog.Logger, reg prometheus.Registerer) (*Module, error) {
	repo := repository.New(s,
		repository.WithLogger(logger),
		repository.WithMetrics(metrics.NewWithRegisterer(reg)),
		repository.WithCreatorMembership(cfg.CreatorMembership),
	)

	if cfg.Seed {
		group, err := store.SeedBootstrapStudyGroup(ctx, s, time.Now())
		if err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
		if group != nil {
			logger.InfoContext(ctx, "seeded bootstrap study group",
				"study_group_id", int64(group.ID),
				"name", group.Name(),
			)
		}
	}

	return &Module{
		Repository: repo,
		Handler:    handler.New(repo, logger),
	}, nil
}
