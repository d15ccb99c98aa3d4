package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingSync/internal/config"
	"bookingSync/internal/currency"
	"bookingSync/internal/http-server/handlers/booking/fetchReport"
	"bookingSync/internal/http-server/handlers/booking/runSync"
	"bookingSync/internal/http-server/middleware/apikey"
	"bookingSync/internal/http-server/middleware/mwlogger"
	"bookingSync/internal/lib/logger/handlers/slogpretty"
	"bookingSync/internal/lib/logger/sl"
	"bookingSync/internal/report"
	"bookingSync/internal/storage/postgres"
	syncengine "bookingSync/internal/sync"
	"bookingSync/internal/upstream"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting booking sync", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	rates := currency.NewECBSource("", nil)
	if err = rates.Refresh(context.Background()); err != nil {
		// Запросы отчётов будут падать до первого успешного обновления курсов
		log.Error("failed to load exchange rates", sl.Err(err))
	}

	converter := currency.NewConverter(rates)
	client := upstream.New(&cfg.Upstream)
	engine := syncengine.New(log, client, storage, cfg.Upstream.Workers)
	guard := syncengine.NewGuard()
	builder := report.NewBuilder(storage, converter)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Group(func(r chi.Router) {
		r.Use(apikey.New(log, cfg.APIKey))
		r.Get("/bookings", fetchReport.New(log, builder))
		r.Post("/sync", runSync.New(log, engine, guard))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go runScheduledJobs(log, cfg, engine, guard, rates, stop)

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

// runScheduledJobs drives the periodic work: incremental syncs, active
// booking refreshes and exchange rate updates. The guard keeps a tick
// from starting while the previous run of the same type is in flight.
func runScheduledJobs(
	log *slog.Logger,
	cfg *config.Config,
	engine *syncengine.Engine,
	guard *syncengine.Guard,
	rates *currency.ECBSource,
	stop chan os.Signal,
) {
	incremental := time.NewTicker(cfg.Sync.IncrementalInterval)
	defer incremental.Stop()

	refresh := time.NewTicker(cfg.Sync.RefreshInterval)
	defer refresh.Stop()

	ratesTicker := time.NewTicker(cfg.Sync.RatesInterval)
	defer ratesTicker.Stop()

	ctx := context.Background()

	for {
		select {
		case <-incremental.C:
			runGuarded(log, guard, runSync.ModeIncremental, func() error {
				return engine.IncrementalSync(ctx)
			})
		case <-refresh.C:
			runGuarded(log, guard, runSync.ModeRefresh, func() error {
				return engine.RefreshActive(ctx)
			})
		case <-ratesTicker.C:
			if err := rates.Refresh(ctx); err != nil {
				log.Error("failed to refresh exchange rates", sl.Err(err))
			}
		case <-stop:
			return
		}
	}
}

func runGuarded(log *slog.Logger, guard *syncengine.Guard, mode string, fn func() error) {
	err := guard.TryRun(mode, fn)
	if errors.Is(err, syncengine.ErrAlreadyRunning) {
		log.Warn("previous run still in progress, skipping tick", slog.String("mode", mode))
		return
	}
	if err != nil {
		log.Error("scheduled run failed", slog.String("mode", mode), sl.Err(err))
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
