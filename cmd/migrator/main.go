package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/WiMProject/backend-test/internal/app"
	"github.com/WiMProject/backend-test/internal/config"
	"github.com/WiMProject/backend-test/internal/db"
)

func main() {
	var direction string
	flag.StringVar(&direction, "direction", string(db.Up), "migration direction: up or down")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	app.SetupLogger(cfg.App, cfg.Log)

	if cfg.Storage.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("Migrations only apply to the postgres driver")
	}

	if err := db.Migrate(cfg.Postgres, db.Direction(direction)); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
