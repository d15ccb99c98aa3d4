package upstream

import "github.com/shopspring/decimal"

// Page is the shape every list endpoint of the upstream returns: the
// total number of matching records plus one page of them.
type Page struct {
	Count   int          `json:"count"`
	Results []RawBooking `json:"results"`
}

// RawBooking mirrors one record of the upstream wire format.
type RawBooking struct {
	ID             string            `json:"id"`
	BookingCode    string            `json:"bookingCode"`
	BookingStatus  string            `json:"bookingStatus"`
	Experience     RawExperience     `json:"experience"`
	RateName       string            `json:"rateName"`
	BookingCreated string            `json:"bookingCreated"`
	RatesQuantity  []RawRateQuantity `json:"ratesQuantity"`
	Price          RawPrice          `json:"price"`
}

type RawExperience struct {
	Name string `json:"name"`
}

type RawRateQuantity struct {
	Quantity int `json:"quantity"`
}

type RawPrice struct {
	FinalRetailPrice *RawRetailPrice `json:"finalRetailPrice"`
}

type RawRetailPrice struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}
