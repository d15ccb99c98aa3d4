package currency

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultECBURL serves the daily euro foreign exchange reference rates.
const DefaultECBURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"

// ECBSource caches the ECB daily reference rates. Refresh replaces the
// whole table at once; Rate reads never block each other.
type ECBSource struct {
	url  string
	http *http.Client

	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

func NewECBSource(url string, client *http.Client) *ECBSource {
	if url == "" {
		url = DefaultECBURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &ECBSource{
		url:   url,
		http:  client,
		rates: make(map[string]decimal.Decimal),
	}
}

type ecbEnvelope struct {
	Cube struct {
		Day struct {
			Rates []struct {
				Currency string          `xml:"currency,attr"`
				Rate     decimal.Decimal `xml:"rate,attr"`
			} `xml:"Cube"`
		} `xml:"Cube"`
	} `xml:"Cube"`
}

// Refresh fetches the current feed and swaps the cached table. On
// failure the previous table stays in place.
func (s *ECBSource) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("refresh rates: %w", err)
	}

	res, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("refresh rates: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh rates: unexpected status %d", res.StatusCode)
	}

	var envelope ecbEnvelope
	if err = xml.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("refresh rates: %w", err)
	}

	rates := make(map[string]decimal.Decimal, len(envelope.Cube.Day.Rates))
	for _, r := range envelope.Cube.Day.Rates {
		rates[r.Currency] = r.Rate
	}

	if len(rates) == 0 {
		return fmt.Errorf("refresh rates: feed contained no rates")
	}

	s.mu.Lock()
	s.rates = rates
	s.mu.Unlock()

	return nil
}

// Rate returns the rate between two currencies. The feed quotes
// everything against EUR; other pairs are crossed through it.
func (s *ECBSource) Rate(from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	fromRate, err := s.eurRate(from)
	if err != nil {
		return decimal.Decimal{}, err
	}

	toRate, err := s.eurRate(to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	// rate(from, to) = rate(EUR, to) / rate(EUR, from)
	return toRate.DivRound(fromRate, 8), nil
}

func (s *ECBSource) eurRate(code string) (decimal.Decimal, error) {
	if code == baseCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, ok := s.rates[code]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", code, ErrUnknownCurrency)
	}

	return rate, nil
}
