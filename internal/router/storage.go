package router

import (
	"fmt"

	mem "qms-backend/internal/adapters/storage/memory"
	pg "qms-backend/internal/adapters/storage/postgres"
	lite "qms-backend/internal/adapters/storage/sqlite"
	"qms-backend/internal/domain/events"
	"qms-backend/internal/platform/config"
)

// OpenEventsRepo abre el store configurado. El closer libera la conexión (no-op en memoria).
func OpenEventsRepo(cfg config.StorageConfig) (events.Repository, func() error, error) {
	switch cfg.Driver {
	case "memory":
		return mem.NewEventRepo(), func() error { return nil }, nil

	case "postgres":
		db, err := pg.Open(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.RunMigrations(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return pg.NewEventsRepo(db), db.Close, nil

	case "sqlite":
		db, err := lite.Open(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("get sql db: %w", err)
		}
		return lite.NewEventsRepo(db), sqlDB.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}
