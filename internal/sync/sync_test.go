package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"bookingSync/internal/lib/logger/handlers/slogdiscard"
	"bookingSync/internal/models"
	"bookingSync/internal/storage/postgres"
	"bookingSync/internal/sync/mocks"
	"bookingSync/internal/upstream"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rawBooking(id string) upstream.RawBooking {
	return upstream.RawBooking{
		ID:             id,
		BookingCode:    "CODE-" + id,
		BookingStatus:  models.StatusPending,
		Experience:     upstream.RawExperience{Name: "Experience"},
		RateName:       "Standard",
		BookingCreated: "2024-04-11T10:00:00Z",
		RatesQuantity:  []upstream.RawRateQuantity{{Quantity: 1}},
		Price: upstream.RawPrice{
			FinalRetailPrice: &upstream.RawRetailPrice{
				Currency: "EUR",
				Amount:   decimal.RequireFromString("10.00"),
			},
		},
	}
}

func rawPage(count int, ids ...string) *upstream.Page {
	results := make([]upstream.RawBooking, 0, len(ids))
	for _, id := range ids {
		results = append(results, rawBooking(id))
	}

	return &upstream.Page{Count: count, Results: results}
}

// upsertRecorder collects every upserted id across workers.
type upsertRecorder struct {
	mu  sync.Mutex
	ids []string
}

func (r *upsertRecorder) record(args mock.Arguments) {
	bookings := args.Get(0).([]models.Booking)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range bookings {
		r.ids = append(r.ids, b.ID)
	}
}

func (r *upsertRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ids = nil
}

func (r *upsertRecorder) sorted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := append([]string(nil), r.ids...)
	sort.Strings(ids)

	return ids
}

func TestFullSyncSinglePage(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, 1).
		Return(rawPage(2, "1", "2"), nil).Once()

	rec := &upsertRecorder{}
	store.On("UpsertBookings", mock.Anything).Run(rec.record).Return(nil).Once()

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 4)

	err := engine.FullSync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, rec.sorted())
}

func TestFullSyncFansOutRemainingPages(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, 1).
		Return(rawPage(25, "01", "02", "03", "04", "05"), nil).Once()

	for page := 2; page <= 5; page++ {
		ids := make([]string, 0, 5)
		for i := 1; i <= 5; i++ {
			ids = append(ids, fmt.Sprintf("%02d", (page-1)*5+i))
		}
		fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, page).
			Return(rawPage(25, ids...), nil).Once()
	}

	rec := &upsertRecorder{}
	store.On("UpsertBookings", mock.Anything).Run(rec.record).Return(nil).Times(5)

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 3)

	err := engine.FullSync(context.Background())
	require.NoError(t, err)

	ids := rec.sorted()
	require.Len(t, ids, 25)
	for i, id := range ids {
		assert.Equal(t, fmt.Sprintf("%02d", i+1), id, "every record of every page upserted exactly once")
	}
}

func TestFullSyncIsIdempotent(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, 1).
		Return(rawPage(4, "a", "b", "c", "d"), nil)

	rec := &upsertRecorder{}
	store.On("UpsertBookings", mock.Anything).Run(rec.record).Return(nil)

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 2)

	require.NoError(t, engine.FullSync(context.Background()))
	firstRun := rec.sorted()

	rec.reset()

	require.NoError(t, engine.FullSync(context.Background()))
	secondRun := rec.sorted()

	assert.Equal(t, firstRun, secondRun, "unchanged upstream yields the same upserted set")
}

func TestFullSyncSkipsMalformedRecord(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	page := rawPage(20,
		"01", "02", "03", "04", "05", "06", "07", "08", "09", "10",
		"11", "12", "13", "14", "15", "16", "17", "18", "19", "20",
	)
	page.Results[7].Price.FinalRetailPrice = nil

	fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, 1).Return(page, nil).Once()

	rec := &upsertRecorder{}
	store.On("UpsertBookings", mock.Anything).Run(rec.record).Return(nil).Once()

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 2)

	err := engine.FullSync(context.Background())
	require.NoError(t, err)

	ids := rec.sorted()
	assert.Len(t, ids, 19, "one malformed record must not hold back the other nineteen")
	assert.NotContains(t, ids, "08")
}

func TestFullSyncPageFetchErrorFailsRun(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, 1).
		Return(rawPage(30, "01", "02", "03", "04", "05", "06", "07", "08", "09", "10"), nil).Once()
	fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, 2).
		Return(nil, errors.New("upstream exploded")).Once()
	fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, 3).
		Return(rawPage(30, "21", "22", "23", "24", "25", "26", "27", "28", "29", "30"), nil).Once()

	rec := &upsertRecorder{}
	store.On("UpsertBookings", mock.Anything).Run(rec.record).Return(nil)

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 1)

	err := engine.FullSync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")

	// committed pages stay committed
	assert.Contains(t, rec.sorted(), "01")
}

func TestFullSyncFirstPageErrorAbortsBeforeUpserting(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, 1).
		Return(nil, errors.New("connection refused")).Once()

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 2)

	err := engine.FullSync(context.Background())
	require.Error(t, err)

	store.AssertNotCalled(t, "UpsertBookings", mock.Anything)
}

func TestIncrementalSyncUsesExclusiveAnchor(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	anchor := time.Date(2024, 4, 11, 10, 0, 0, 0, time.UTC)

	store.On("LatestBookingCreated").Return(anchor, nil).Once()

	// the filter sent upstream is the strictly-after form anchored on
	// the newest stored timestamp
	fetcher.On("FetchPage", mock.Anything, upstream.Filter{CreatedAfter: &anchor}, 1).
		Return(rawPage(1, "new-1"), nil).Once()

	rec := &upsertRecorder{}
	store.On("UpsertBookings", mock.Anything).Run(rec.record).Return(nil).Once()

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 2)

	err := engine.IncrementalSync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"new-1"}, rec.sorted())
}

func TestIncrementalSyncAnchorRecordReupsertsCleanly(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	anchor := time.Date(2024, 4, 11, 10, 0, 0, 0, time.UTC)

	store.On("LatestBookingCreated").Return(anchor, nil).Once()

	// An upstream applying the bound inclusively would send the anchor
	// record back; it must upsert by id, not duplicate.
	page := rawPage(2, "anchor-id", "new-1")
	page.Results[0].BookingCreated = anchor.Format(time.RFC3339)

	fetcher.On("FetchPage", mock.Anything, upstream.Filter{CreatedAfter: &anchor}, 1).
		Return(page, nil).Once()

	rec := &upsertRecorder{}
	store.On("UpsertBookings", mock.Anything).Run(rec.record).Return(nil).Once()

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 2)

	require.NoError(t, engine.IncrementalSync(context.Background()))
	assert.Equal(t, []string{"anchor-id", "new-1"}, rec.sorted())
}

func TestIncrementalSyncEmptyStoreFallsBackToFullSync(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	store.On("LatestBookingCreated").Return(time.Time{}, postgres.ErrNoBookings).Once()

	fetcher.On("FetchPage", mock.Anything, upstream.Filter{}, 1).
		Return(rawPage(1, "1"), nil).Once()

	store.On("UpsertBookings", mock.Anything).Return(nil).Once()

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 2)

	err := engine.IncrementalSync(context.Background())
	require.NoError(t, err)
}

func TestRefreshActiveContinuesPastFailures(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	active := []models.Booking{
		{ID: "a", Status: models.StatusPending},
		{ID: "b", Status: models.StatusOnHold},
		{ID: "c", Status: models.StatusAccepted},
	}

	store.On("ListActiveBookings").Return(active, nil).Once()

	fetcher.On("FetchBooking", mock.Anything, "a").Return(ptrRawBooking("a"), nil).Once()
	fetcher.On("FetchBooking", mock.Anything, "b").Return(nil, errors.New("timeout")).Once()
	fetcher.On("FetchBooking", mock.Anything, "c").Return(ptrRawBooking("c"), nil).Once()

	rec := &upsertRecorder{}
	store.On("UpsertBookings", mock.Anything).Run(rec.record).Return(nil).Times(2)

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 2)

	err := engine.RefreshActive(context.Background())
	require.NoError(t, err, "one booking failing must not fail the sweep")

	assert.Equal(t, []string{"a", "c"}, rec.sorted())
}

func TestRefreshActiveUpdatesStatusInPlace(t *testing.T) {
	t.Parallel()

	fetcher := mocks.NewFetcher(t)
	store := mocks.NewStore(t)

	store.On("ListActiveBookings").
		Return([]models.Booking{{ID: "a", Status: models.StatusPending}}, nil).Once()

	updated := ptrRawBooking("a")
	updated.BookingStatus = models.StatusCompleted

	fetcher.On("FetchBooking", mock.Anything, "a").Return(updated, nil).Once()

	store.On("UpsertBookings", mock.MatchedBy(func(bookings []models.Booking) bool {
		return len(bookings) == 1 &&
			bookings[0].ID == "a" &&
			bookings[0].Status == models.StatusCompleted
	})).Return(nil).Once()

	engine := New(slogdiscard.NewDiscardLogger(), fetcher, store, 2)

	require.NoError(t, engine.RefreshActive(context.Background()))
}

func ptrRawBooking(id string) *upstream.RawBooking {
	raw := rawBooking(id)
	return &raw
}
