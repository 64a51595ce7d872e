package app

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/WiMProject/backend-test/internal/config"
)

// SetupLogger configures the global zerolog logger: human readable console
// output for the local env, JSON everywhere else.
func SetupLogger(cfg config.AppConfig, logCfg config.LogConfig) {
	level, err := zerolog.ParseLevel(logCfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Env == "local" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	log.Logger = log.With().Str("service", cfg.Name).Logger()
}
