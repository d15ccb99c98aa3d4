package sync

import (
	"testing"
	"time"

	"bookingSync/internal/upstream"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRawBooking() *upstream.RawBooking {
	return &upstream.RawBooking{
		ID:             "123",
		BookingCode:    "ABC123",
		BookingStatus:  "ACCEPTED",
		Experience:     upstream.RawExperience{Name: "Test Experience"},
		RateName:       "Standard Rate",
		BookingCreated: "2024-04-11T10:00:00Z",
		RatesQuantity: []upstream.RawRateQuantity{
			{Quantity: 2},
		},
		Price: upstream.RawPrice{
			FinalRetailPrice: &upstream.RawRetailPrice{
				Currency: "USD",
				Amount:   decimal.RequireFromString("100.00"),
			},
		},
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	booking, err := Normalize(sampleRawBooking())
	require.NoError(t, err)

	assert.Equal(t, "123", booking.ID)
	assert.Equal(t, "ABC123", booking.Code)
	assert.Equal(t, "ACCEPTED", booking.Status)
	assert.Equal(t, "Test Experience", booking.Experience)
	assert.Equal(t, "Standard Rate", booking.Rate)
	assert.Equal(t, 2, booking.Participants)
	assert.Equal(t, "USD", booking.OriginalCurrency)
	assert.True(t, booking.PriceOriginalCurrency.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, time.Date(2024, 4, 11, 10, 0, 0, 0, time.UTC), booking.BookingCreated)
}

func TestNormalizeSumsRateQuantities(t *testing.T) {
	t.Parallel()

	raw := sampleRawBooking()
	raw.RatesQuantity = []upstream.RawRateQuantity{
		{Quantity: 2},
		{Quantity: 3},
		{Quantity: 1},
	}

	booking, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, 6, booking.Participants)
}

func TestNormalizeEmptyRatesQuantity(t *testing.T) {
	t.Parallel()

	raw := sampleRawBooking()
	raw.RatesQuantity = nil

	booking, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, 0, booking.Participants)
}

func TestNormalizeTimestampWithoutZone(t *testing.T) {
	t.Parallel()

	raw := sampleRawBooking()
	raw.BookingCreated = "2024-04-11T10:00:00"

	booking, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 4, 11, 10, 0, 0, 0, time.UTC), booking.BookingCreated)
}

func TestNormalizeTimestampWithOffset(t *testing.T) {
	t.Parallel()

	raw := sampleRawBooking()
	raw.BookingCreated = "2024-04-11T12:00:00+02:00"

	booking, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 4, 11, 10, 0, 0, 0, time.UTC), booking.BookingCreated)
	assert.Equal(t, time.UTC, booking.BookingCreated.Location())
}

func TestNormalizeMalformedRecords(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(raw *upstream.RawBooking)
	}{
		{
			name:   "Missing id",
			mutate: func(raw *upstream.RawBooking) { raw.ID = "" },
		},
		{
			name:   "Missing status",
			mutate: func(raw *upstream.RawBooking) { raw.BookingStatus = "" },
		},
		{
			name:   "Missing price block",
			mutate: func(raw *upstream.RawBooking) { raw.Price.FinalRetailPrice = nil },
		},
		{
			name:   "Missing price currency",
			mutate: func(raw *upstream.RawBooking) { raw.Price.FinalRetailPrice.Currency = "" },
		},
		{
			name: "Negative price",
			mutate: func(raw *upstream.RawBooking) {
				raw.Price.FinalRetailPrice.Amount = decimal.RequireFromString("-1.00")
			},
		},
		{
			name:   "Missing bookingCreated",
			mutate: func(raw *upstream.RawBooking) { raw.BookingCreated = "" },
		},
		{
			name:   "Garbage bookingCreated",
			mutate: func(raw *upstream.RawBooking) { raw.BookingCreated = "yesterday" },
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := sampleRawBooking()
			tc.mutate(raw)

			_, err := Normalize(raw)
			require.Error(t, err)

			var normErr *NormalizeError
			assert.ErrorAs(t, err, &normErr)
		})
	}
}

func TestNormalizeErrorKeepsOffendingID(t *testing.T) {
	t.Parallel()

	raw := sampleRawBooking()
	raw.BookingStatus = ""

	_, err := Normalize(raw)
	require.Error(t, err)

	var normErr *NormalizeError
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, "123", normErr.ID)
	assert.Contains(t, err.Error(), "123")
}
