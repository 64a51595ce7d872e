package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/WiMProject/backend-test/internal/config"
	"github.com/WiMProject/backend-test/internal/db"
	"github.com/WiMProject/backend-test/internal/user"
)

// OpenRepository builds the user repository for the configured driver. The
// returned func releases the underlying connection.
func OpenRepository(ctx context.Context, cfg *config.Config) (user.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if cfg.Postgres.AutoMigrate {
			if err := db.Migrate(cfg.Postgres, db.Up); err != nil {
				return nil, nil, err
			}
		}

		pg, err := db.New(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return user.NewRepository(pg.Pool), pg.Close, nil

	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := conn.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close SQLite database")
			}
		}
		return user.NewSQLiteRepository(conn), closeFn, nil

	case config.DriverMemory:
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		return user.NewMemoryRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
