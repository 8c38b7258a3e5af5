package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/taskhive/tasktracker/internal/infrastructure/config"
	"github.com/taskhive/tasktracker/internal/infrastructure/db/postgres"
	"github.com/taskhive/tasktracker/pkg/logger"
)

// The api binary applies migrations on startup; this tool exists for
// operating the schema by hand, mainly rollbacks and status checks.
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Service: "migrate", Level: cfg.LogLevel, Pretty: true})

	migrator := postgres.NewMigrator(cfg.Database.DSN, log)

	switch os.Args[1] {
	case "up":
		err = migrator.Up(ctx)
	case "down":
		err = migrator.Down(ctx)
	case "status":
		err = migrator.Status(ctx)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migration command failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate <up|down|status>")
}
