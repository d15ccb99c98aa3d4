package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bookingSync/internal/config"

	"golang.org/x/time/rate"
)

var ErrUnexpectedStatus = errors.New("unexpected upstream status")

const timeFilterLayout = time.RFC3339

// Filter holds the optional parameters a sync run sends upstream.
type Filter struct {
	CreatedAfter *time.Time
}

func (f Filter) queryParams() url.Values {
	params := url.Values{}
	params.Set("sort", "bookingCreated")

	if f.CreatedAfter != nil {
		params.Set("bookingCreated[gt]", f.CreatedAfter.Format(timeFilterLayout))
	}

	return params
}

// Client talks to the external booking API. Every request carries the
// API key and goes through a shared rate limiter so concurrent page
// workers cannot overwhelm the upstream.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func New(cfg *config.Upstream) *Client {
	return &Client{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 10),
	}
}

// FetchPage requests one page of bookings. Page 1 is requested without a
// page param, the way the upstream expects the first call of a run.
func (c *Client) FetchPage(ctx context.Context, f Filter, page int) (*Page, error) {
	params := f.queryParams()
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	var p Page
	if err := c.get(ctx, c.baseURL+"?"+params.Encode(), &p); err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}

	return &p, nil
}

// FetchBooking requests a single booking by its upstream id.
func (c *Client) FetchBooking(ctx context.Context, id string) (*RawBooking, error) {
	var raw RawBooking
	if err := c.get(ctx, c.baseURL+"/"+url.PathEscape(id), &raw); err != nil {
		return nil, fmt.Errorf("fetch booking %s: %w", id, err)
	}

	return &raw, nil
}

func (c *Client) get(ctx context.Context, reqURL string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	if err = json.NewDecoder(res.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
