package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusOnHold    = "ON_HOLD"
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusExpired   = "EXPIRED"
	StatusRejected  = "REJECTED"
)

// IsTerminalStatus reports whether a booking in this status can never
// change again upstream.
func IsTerminalStatus(status string) bool {
	return status == StatusCancelled || status == StatusCompleted
}

type Booking struct {
	ID                    string          `json:"id"`
	Code                  string          `json:"code,omitempty"`
	Status                string          `json:"status"`
	Experience            string          `json:"experience"`
	Rate                  string          `json:"rate"`
	BookingCreated        time.Time       `json:"booking_created"`
	Participants          int             `json:"participants"`
	OriginalCurrency      string          `json:"original_currency"`
	PriceOriginalCurrency decimal.Decimal `json:"price_original_currency"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
