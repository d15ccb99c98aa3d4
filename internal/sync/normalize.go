package sync

import (
	"fmt"
	"time"

	"bookingSync/internal/models"
	"bookingSync/internal/upstream"
)

// NormalizeError marks a single malformed upstream record. The caller
// decides whether to skip the record or abort; the sync engine skips.
type NormalizeError struct {
	ID  string
	Err error
}

func (e *NormalizeError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("normalize booking: %s", e.Err)
	}
	return fmt.Sprintf("normalize booking %s: %s", e.ID, e.Err)
}

func (e *NormalizeError) Unwrap() error {
	return e.Err
}

// Upstream sometimes emits bookingCreated without a zone suffix; those
// values are UTC.
var bookingCreatedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Normalize maps one raw upstream record into the canonical booking.
// Participants come from the per-rate quantities because the upstream
// participants field is mostly null; an empty list is a zero-participant
// booking, not an error.
func Normalize(raw *upstream.RawBooking) (models.Booking, error) {
	if raw.ID == "" {
		return models.Booking{}, &NormalizeError{Err: fmt.Errorf("missing id")}
	}
	if raw.BookingStatus == "" {
		return models.Booking{}, &NormalizeError{ID: raw.ID, Err: fmt.Errorf("missing bookingStatus")}
	}
	if raw.Price.FinalRetailPrice == nil {
		return models.Booking{}, &NormalizeError{ID: raw.ID, Err: fmt.Errorf("missing price.finalRetailPrice")}
	}
	if raw.Price.FinalRetailPrice.Currency == "" {
		return models.Booking{}, &NormalizeError{ID: raw.ID, Err: fmt.Errorf("missing price currency")}
	}
	if raw.Price.FinalRetailPrice.Amount.IsNegative() {
		return models.Booking{}, &NormalizeError{ID: raw.ID, Err: fmt.Errorf("negative price amount")}
	}

	created, err := parseBookingCreated(raw.BookingCreated)
	if err != nil {
		return models.Booking{}, &NormalizeError{ID: raw.ID, Err: err}
	}

	participants := 0
	for _, rq := range raw.RatesQuantity {
		participants += rq.Quantity
	}
	if participants < 0 {
		return models.Booking{}, &NormalizeError{ID: raw.ID, Err: fmt.Errorf("negative participants")}
	}

	return models.Booking{
		ID:                    raw.ID,
		Code:                  raw.BookingCode,
		Status:                raw.BookingStatus,
		Experience:            raw.Experience.Name,
		Rate:                  raw.RateName,
		BookingCreated:        created,
		Participants:          participants,
		OriginalCurrency:      raw.Price.FinalRetailPrice.Currency,
		PriceOriginalCurrency: raw.Price.FinalRetailPrice.Amount,
	}, nil
}

func parseBookingCreated(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing bookingCreated")
	}

	for _, layout := range bookingCreatedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid bookingCreated %q", value)
}
