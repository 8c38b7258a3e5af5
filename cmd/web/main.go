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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/taskhive/tasktracker/internal/infrastructure/config"
	"github.com/taskhive/tasktracker/internal/web"
	"github.com/taskhive/tasktracker/internal/web/apiclient"
	"github.com/taskhive/tasktracker/internal/web/session"
	"github.com/taskhive/tasktracker/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "web"})
		boot.Fatal().Err(err).Msg("configuration invalid")
	}

	log := logger.Init(logger.Options{
		Service: "web",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	store, err := sessionStore(ctx, cfg.Web, log)
	if err != nil {
		log.Fatal().Err(err).Msg("session store unavailable")
	}
	sessions := session.NewManager(store, cfg.Web.CookieName, cfg.Web.CookieSecure)

	srv := web.NewServer(apiclient.New(cfg.Web.APIBaseURL), sessions, log)
	e := srv.Router()

	go func() {
		log.Info().Str("port", cfg.Web.Port).Msg("web listening")
		if err := e.Start(":" + cfg.Web.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// sessionStore picks Redis when configured and falls back to in-process
// memory otherwise. Memory is fine for a single dev instance; anything with
// more than one replica needs Redis.
func sessionStore(ctx context.Context, cfg config.WebConfig, log zerolog.Logger) (session.Store, error) {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("SESSION_REDIS_ADDR not set, using in-memory sessions")
		return session.NewMemoryStore(cfg.SessionTTL), nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("sessions backed by redis")
	return session.NewRedisStore(client, cfg.SessionTTL), nil
}
