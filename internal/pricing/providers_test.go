package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetalMockServer(xau, xag float64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"curr": "USD", "xauPrice": xau, "xagPrice": xag},
			},
		})
	}))
}

func TestMetalProviderFetchSpot(t *testing.T) {
	server := newMetalMockServer(2650.25, 31.12)
	defer server.Close()

	p := NewMetalProvider(server.Client(), server.URL)
	spot, err := p.FetchSpot(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 2650.25, spot["XAU"], 1e-9)
	assert.InDelta(t, 31.12, spot["XAG"], 1e-9)
}

func TestMetalProviderRejectsBadPayloads(t *testing.T) {
	t.Run("empty_items", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items":[]}`))
		}))
		defer server.Close()

		p := NewMetalProvider(server.Client(), server.URL)
		_, err := p.FetchSpot(context.Background())
		assert.Error(t, err)
	})

	t.Run("server_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		p := NewMetalProvider(server.Client(), server.URL)
		_, err := p.FetchSpot(context.Background())
		assert.ErrorContains(t, err, "unexpected status 502")
	})

	t.Run("zero_gold_price", func(t *testing.T) {
		server := newMetalMockServer(0, 31.12)
		defer server.Close()

		p := NewMetalProvider(server.Client(), server.URL)
		_, err := p.FetchSpot(context.Background())
		assert.ErrorContains(t, err, "invalid gold price")
	})
}

// newForexMockServer responds with Yahoo chart payloads.
// rateMap maps forex ticker (e.g. "USDAED=X") to the rate value.
func newForexMockServer(rateMap map[string]float64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticker := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")

		rate, ok := rateMap[ticker]
		if !ok {
			_, _ = w.Write([]byte(`{"chart":{"result":[],"error":{"code":"Not Found","description":"no data"}}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"chart": map[string]interface{}{
				"result": []map[string]interface{}{
					{"meta": map[string]interface{}{"regularMarketPrice": rate}},
				},
			},
		})
	}))
}

func TestForexProviderFetchRate(t *testing.T) {
	server := newForexMockServer(map[string]float64{
		"USDAED=X": 3.6725,
		"INRAED=X": 0.0441,
	})
	defer server.Close()

	p := NewForexProvider(server.Client(), server.URL)

	rate, err := p.FetchRate(context.Background(), "USDAED")
	require.NoError(t, err)
	assert.InDelta(t, 3.6725, rate, 1e-9)

	rate, err = p.FetchRate(context.Background(), "INRAED")
	require.NoError(t, err)
	assert.InDelta(t, 0.0441, rate, 1e-9)
}

func TestForexProviderChartError(t *testing.T) {
	server := newForexMockServer(nil)
	defer server.Close()

	p := NewForexProvider(server.Client(), server.URL)
	_, err := p.FetchRate(context.Background(), "GBPAED")
	assert.ErrorContains(t, err, "chart error")
}

func TestNAVProviderFetchLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/120503/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"meta": {"scheme_name": "Axis Bluechip Fund - Direct Growth"},
			"data": [{"date": "13-06-2025", "nav": "62.4100"}],
			"status": "SUCCESS"
		}`))
	}))
	defer server.Close()

	p := NewNAVProvider(server.Client(), server.URL)
	q, err := p.FetchLatest(context.Background(), "120503")
	require.NoError(t, err)

	assert.Equal(t, "120503", q.SchemeCode)
	assert.Equal(t, "Axis Bluechip Fund - Direct Growth", q.SchemeName)
	assert.Equal(t, SourceLive, q.Source)
	require.True(t, q.NAV.Valid)
	nav, _ := q.NAV.Decimal.Float64()
	assert.InDelta(t, 62.41, nav, 1e-9)
}

func TestNAVProviderBadNAV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"date": "13-06-2025", "nav": "N.A."}]}`))
	}))
	defer server.Close()

	p := NewNAVProvider(server.Client(), server.URL)
	_, err := p.FetchLatest(context.Background(), "999999")
	assert.ErrorContains(t, err, "parsing nav")
}
