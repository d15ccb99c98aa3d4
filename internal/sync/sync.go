package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bookingSync/internal/lib/logger/sl"
	"bookingSync/internal/models"
	"bookingSync/internal/storage/postgres"
	"bookingSync/internal/upstream"
)

const defaultWorkers = 10

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Fetcher
type Fetcher interface {
	FetchPage(ctx context.Context, f upstream.Filter, page int) (*upstream.Page, error)
	FetchBooking(ctx context.Context, id string) (*upstream.RawBooking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	UpsertBookings(bookings []models.Booking) error
	LatestBookingCreated() (time.Time, error)
	ListActiveBookings() ([]models.Booking, error)
}

// Engine pulls bookings out of the upstream API and into the store.
// A run fetches the first page, plans the rest from its reported count,
// fans the remaining pages out over a bounded pool of workers and
// upserts each page in its own transaction. Malformed records are
// skipped, failed pages fail the run; pages already committed stay.
type Engine struct {
	log     *slog.Logger
	fetcher Fetcher
	store   Store
	workers int
}

func New(log *slog.Logger, fetcher Fetcher, store Store, workers int) *Engine {
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Engine{
		log:     log,
		fetcher: fetcher,
		store:   store,
		workers: workers,
	}
}

// FullSync fetches the complete booking history. Safe to re-run: every
// record upserts by its upstream id.
func (e *Engine) FullSync(ctx context.Context) error {
	const op = "sync.FullSync"

	if err := e.run(ctx, upstream.Filter{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IncrementalSync fetches only bookings created strictly after the
// newest one already stored. The bound is exclusive: the anchor record
// itself is already present and refetching it would change nothing.
// An empty store falls back to a full sync.
func (e *Engine) IncrementalSync(ctx context.Context) error {
	const op = "sync.IncrementalSync"

	latest, err := e.store.LatestBookingCreated()
	if errors.Is(err, postgres.ErrNoBookings) {
		e.log.Info("store is empty, running full sync instead")
		return e.FullSync(ctx)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = e.run(ctx, upstream.Filter{CreatedAfter: &latest}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RefreshActive refetches every stored booking whose status is not
// terminal and updates it in place. One booking failing does not stop
// the sweep for the rest.
func (e *Engine) RefreshActive(ctx context.Context) error {
	const op = "sync.RefreshActive"

	log := e.log.With(slog.String("op", op))

	active, err := e.store.ListActiveBookings()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("refreshing active bookings", slog.Int("count", len(active)))

	for _, b := range active {
		if err = ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if models.IsTerminalStatus(b.Status) {
			continue
		}

		if err = e.refreshOne(ctx, b.ID); err != nil {
			log.Error("failed to refresh booking", slog.String("id", b.ID), sl.Err(err))
		}
	}

	return nil
}

func (e *Engine) refreshOne(ctx context.Context, id string) error {
	raw, err := e.fetcher.FetchBooking(ctx, id)
	if err != nil {
		return err
	}

	booking, err := Normalize(raw)
	if err != nil {
		return err
	}

	return e.store.UpsertBookings([]models.Booking{booking})
}

func (e *Engine) run(ctx context.Context, f upstream.Filter) error {
	first, err := e.fetcher.FetchPage(ctx, f, 1)
	if err != nil {
		return err
	}

	if err = e.processPage(first); err != nil {
		return err
	}

	pages := PlanPages(first.Count, len(first.Results))
	if len(pages) == 0 {
		return nil
	}

	e.log.Info("fetching remaining pages",
		slog.Int("count", first.Count),
		slog.Int("pages", len(pages)),
	)

	return e.fanOut(ctx, f, pages)
}

// fanOut fetches and processes the planned pages on a bounded worker
// pool. The first page error is kept and returned after every worker
// has drained; pages committed before the failure stay committed.
func (e *Engine) fanOut(ctx context.Context, f upstream.Filter, pages []int) error {
	workers := e.workers
	if workers > len(pages) {
		workers = len(pages)
	}

	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for page := range jobs {
				if ctx.Err() != nil {
					setErr(ctx.Err())
					continue
				}

				if err := e.syncPage(ctx, f, page); err != nil {
					e.log.Error("failed to sync page", slog.Int("page", page), sl.Err(err))
					setErr(err)
				}
			}
		}()
	}

	for _, page := range pages {
		jobs <- page
	}
	close(jobs)

	wg.Wait()

	return firstErr
}

func (e *Engine) syncPage(ctx context.Context, f upstream.Filter, page int) error {
	p, err := e.fetcher.FetchPage(ctx, f, page)
	if err != nil {
		return err
	}

	return e.processPage(p)
}

// processPage normalizes and upserts one page. Malformed records are
// logged and dropped so one bad record cannot hold the rest of the page
// hostage; the upsert itself is all-or-nothing for the page.
func (e *Engine) processPage(p *upstream.Page) error {
	bookings := make([]models.Booking, 0, len(p.Results))

	for i := range p.Results {
		booking, err := Normalize(&p.Results[i])
		if err != nil {
			e.log.Warn("skipping malformed booking", sl.Err(err))
			continue
		}

		bookings = append(bookings, booking)
	}

	if len(bookings) == 0 {
		return nil
	}

	return e.store.UpsertBookings(bookings)
}
