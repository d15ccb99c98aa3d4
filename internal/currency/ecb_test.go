package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ecbFeed = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<Cube>
		<Cube time="2025-08-29">
			<Cube currency="USD" rate="1.0850"/>
			<Cube currency="GBP" rate="0.8425"/>
			<Cube currency="JPY" rate="163.45"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func testECBSource(t *testing.T, body string, status int) *ECBSource {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewECBSource(srv.URL, srv.Client())
}

func TestECBSourceRates(t *testing.T) {
	t.Parallel()

	source := testECBSource(t, ecbFeed, http.StatusOK)
	require.NoError(t, source.Refresh(context.Background()))

	rate, err := source.Rate("EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "1.085", rate.String())

	rate, err = source.Rate("EUR", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "1", rate.String())
}

func TestECBSourceCrossRate(t *testing.T) {
	t.Parallel()

	source := testECBSource(t, ecbFeed, http.StatusOK)
	require.NoError(t, source.Refresh(context.Background()))

	// USD -> GBP goes through the EUR anchor
	rate, err := source.Rate("USD", "GBP")
	require.NoError(t, err)
	assert.Equal(t, "0.7765", rate.Round(4).String())
}

func TestECBSourceUnknownCurrency(t *testing.T) {
	t.Parallel()

	source := testECBSource(t, ecbFeed, http.StatusOK)
	require.NoError(t, source.Refresh(context.Background()))

	_, err := source.Rate("EUR", "XXX")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	assert.Contains(t, err.Error(), "XXX")
}

func TestECBSourceBeforeFirstRefresh(t *testing.T) {
	t.Parallel()

	source := NewECBSource("http://127.0.0.1:0", nil)

	_, err := source.Rate("EUR", "USD")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestECBSourceRefreshFailureKeepsOldRates(t *testing.T) {
	t.Parallel()

	var failing bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(ecbFeed))
	}))
	t.Cleanup(srv.Close)

	source := NewECBSource(srv.URL, srv.Client())
	require.NoError(t, source.Refresh(context.Background()))

	failing = true
	require.Error(t, source.Refresh(context.Background()))

	rate, err := source.Rate("EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "1.085", rate.String())
}
