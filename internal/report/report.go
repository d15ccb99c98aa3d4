package report

import (
	"errors"
	"fmt"
	"time"

	"bookingSync/internal/currency"
	"bookingSync/internal/models"

	"github.com/shopspring/decimal"
)

var ErrBadRange = errors.New("start time is after end time")

// Request is one report query: a target currency plus an optional,
// inclusive booking_created window.
type Request struct {
	Currency string
	Start    *time.Time
	End      *time.Time
}

func (r Request) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return ErrBadRange
	}

	return nil
}

// Row is one booking as it appears in a report, converted into the
// requested currency.
type Row struct {
	Code                   string          `json:"code,omitempty"`
	Experience             string          `json:"experience"`
	Rate                   string          `json:"rate"`
	BookingCreated         time.Time       `json:"bookingCreated"`
	Participants           int             `json:"participants"`
	OriginalCurrency       string          `json:"originalCurrency"`
	PriceOriginalCurrency  decimal.Decimal `json:"priceOriginalCurrency"`
	RequestedCurrency      string          `json:"requestedCurrency"`
	PriceRequestedCurrency decimal.Decimal `json:"priceRequestedCurrency"`
}

type Report struct {
	Bookings                    []Row           `json:"bookings"`
	TotalPriceOriginalCurrency  decimal.Decimal `json:"totalPriceOriginalCurrency"`
	TotalPriceRequestedCurrency decimal.Decimal `json:"totalPriceRequestedCurrency"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingLister
type BookingLister interface {
	ListBookings(start, end *time.Time) ([]models.Booking, error)
}

// Builder reads stored bookings and produces currency-converted
// reports. It never touches the upstream API.
type Builder struct {
	store     BookingLister
	converter *currency.Converter
}

func NewBuilder(store BookingLister, converter *currency.Converter) *Builder {
	return &Builder{
		store:     store,
		converter: converter,
	}
}

// Build filters, converts and sums. An empty filtered set is a valid
// report with zero totals.
func (b *Builder) Build(req Request) (*Report, error) {
	const op = "report.Build"

	if err := req.Validate(); err != nil {
		return nil, err
	}

	coefficient, err := b.converter.Coefficient(req.Currency)
	if err != nil {
		return nil, err
	}

	bookings, err := b.store.ListBookings(req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows := make([]Row, 0, len(bookings))
	totalOriginal := decimal.Zero
	totalRequested := decimal.Zero

	for _, booking := range bookings {
		converted := currency.Convert(booking.PriceOriginalCurrency, coefficient)

		rows = append(rows, Row{
			Code:                   booking.Code,
			Experience:             booking.Experience,
			Rate:                   booking.Rate,
			BookingCreated:         booking.BookingCreated,
			Participants:           booking.Participants,
			OriginalCurrency:       booking.OriginalCurrency,
			PriceOriginalCurrency:  booking.PriceOriginalCurrency,
			RequestedCurrency:      req.Currency,
			PriceRequestedCurrency: converted,
		})

		totalOriginal = totalOriginal.Add(booking.PriceOriginalCurrency)
		totalRequested = totalRequested.Add(converted)
	}

	return &Report{
		Bookings:                    rows,
		TotalPriceOriginalCurrency:  totalOriginal.Round(2),
		TotalPriceRequestedCurrency: totalRequested.Round(2),
	}, nil
}
