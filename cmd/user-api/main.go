package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/WiMProject/backend-test/internal/app"
	"github.com/WiMProject/backend-test/internal/config"
	userHttp "github.com/WiMProject/backend-test/internal/handler/http"
	"github.com/WiMProject/backend-test/internal/metrics"
	userService "github.com/WiMProject/backend-test/internal/user"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	app.SetupLogger(cfg.App, cfg.Log)
	log.Info().Str("env", cfg.App.Env).Str("storage", cfg.Storage.Driver).Msg("Starting user-api...")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := metrics.NewProm(registry)

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 30*time.Second)
	userRepository, closeStore, err := app.OpenRepository(connectCtx, cfg)
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open user storage")
	}

	userSvc := userService.NewService(metrics.InstrumentRepository(userRepository, prom))
	userHandler := userHttp.NewUserHandler(userSvc)
	router := userHttp.NewRouter(userHandler, prom)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("port", cfg.App.Port).Msg("Could not listen")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	closeStore()

	log.Info().Msg("user-api stopped gracefully")
}
