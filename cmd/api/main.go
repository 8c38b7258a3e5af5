package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taskhive/tasktracker/internal/api"
	"github.com/taskhive/tasktracker/internal/infrastructure/config"
	"github.com/taskhive/tasktracker/internal/infrastructure/db/postgres"
	"github.com/taskhive/tasktracker/pkg/logger"
	"github.com/taskhive/tasktracker/pkg/token"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "api"})
		boot.Fatal().Err(err).Msg("configuration invalid")
	}

	log := logger.Init(logger.Options{
		Service: "api",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	key, err := cfg.JWT.KeyBytes()
	if err != nil {
		log.Fatal().Err(err).Msg("signing key invalid")
	}
	tokens, err := token.NewConfig(key, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token configuration invalid")
	}

	pool, err := postgres.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}
	defer pool.Close()

	if err := postgres.NewMigrator(cfg.Database.DSN, log).Up(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	e := api.NewRouter(pool, tokens, cfg.CORS.AllowedOrigins, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
