package main

import (
	"context"
	"log/slog"
	"os"

	"bookingSync/internal/config"
	"bookingSync/internal/lib/logger/sl"
	"bookingSync/internal/storage/postgres"
	syncengine "bookingSync/internal/sync"
	"bookingSync/internal/upstream"
)

// One-shot full sync of all bookings from the external API, meant for
// the initial bootstrap or a manual re-sync.
func main() {
	cfg := config.MustLoad()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Info("starting full sync of all bookings")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	client := upstream.New(&cfg.Upstream)
	engine := syncengine.New(log, client, storage, cfg.Upstream.Workers)

	if err = engine.FullSync(context.Background()); err != nil {
		log.Error("full sync failed", sl.Err(err))
		os.Exit(1)
	}

	log.Info("full sync completed successfully")
}
