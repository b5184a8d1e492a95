package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vsinha/production/pkg/application/services/production"
	"github.com/vsinha/production/pkg/domain/repositories"
	"github.com/vsinha/production/pkg/infrastructure/config"
	"github.com/vsinha/production/pkg/infrastructure/lock"
	"github.com/vsinha/production/pkg/infrastructure/repositories/gormstore"
)

// backend is the storage a long-running command works against
type backend struct {
	productions repositories.ProductionRepository
	boms        repositories.BOMRepository
	config      repositories.ConfigurationRepository
	closers     []func() error
}

func (b *backend) Close() error {
	var firstErr error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// openDatabase connects the gorm store and migrates it when configured to
func openDatabase(cfg config.DatabaseConfig, logger logrus.FieldLogger) (*gormstore.Store, func() error, error) {
	if cfg.DSN == "" {
		return nil, nil, fmt.Errorf("database dsn is required")
	}

	db, err := gormstore.Open(cfg.Driver, cfg.DSN, logger)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.AutoMigrate {
		if err := gormstore.AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database migration completed")
	}

	return gormstore.NewStore(db), sqlDB.Close, nil
}

// openBackend selects the gorm store when a DSN is configured, otherwise an
// in-memory store seeded from scenarioDir when one is given
func openBackend(ctx context.Context, cfg *config.Config, scenarioDir string, logger logrus.FieldLogger) (*backend, error) {
	if cfg.Database.DSN != "" {
		store, closer, err := openDatabase(cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		logger.WithField("driver", cfg.Database.Driver).Info("using database storage")
		return &backend{productions: store, boms: store, config: store, closers: []func() error{closer}}, nil
	}

	seed := emptyScenario()
	if scenarioDir != "" {
		scenario, err := loadScenario(scenarioDir)
		if err != nil {
			return nil, err
		}
		seed = scenario
	}
	stores, err := newMemoryStores(ctx, seed)
	if err != nil {
		return nil, err
	}
	logger.WithField("productions", len(seed.Productions)).Info("using in-memory storage")
	return &backend{productions: stores.productions, boms: stores.boms, config: stores.config}, nil
}

// newLocker returns a Redis locker when an address is configured, a process-local one otherwise
func newLocker(ctx context.Context, cfg config.RedisConfig, logger logrus.FieldLogger) (production.Locker, func() error, error) {
	if cfg.Addr == "" {
		return lock.NewLocalLocker(), func() error { return nil }, nil
	}

	rdb, err := lock.Connect(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	logger.WithField("addr", cfg.Addr).Info("using redis locks")
	return lock.NewRedisLocker(rdb, cfg.LockTTL, logger), rdb.Close, nil
}
