package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// yahooChartResponse is the subset of the Yahoo Finance chart payload the
// forex provider reads.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// ForexProvider fetches currency-pair rates from the Yahoo Finance chart
// endpoint. Pairs use Yahoo tickers like "USDAED=X".
type ForexProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewForexProvider creates a forex rate provider for the given endpoint.
func NewForexProvider(httpClient *http.Client, baseURL string) *ForexProvider {
	return &ForexProvider{httpClient: httpClient, baseURL: baseURL}
}

// Name returns the provider's display name.
func (p *ForexProvider) Name() string { return "Yahoo Finance FX" }

// FetchRate fetches the rate for a pair such as "USDAED" (1 USD in AED).
func (p *ForexProvider) FetchRate(ctx context.Context, pair string) (float64, error) {
	ticker := pair + "=X"
	url := p.baseURL + "/" + ticker + "?interval=1d&range=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building forex request: %w", err)
	}
	req.Header.Set("User-Agent", metalUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("forex http request for %s: %w", ticker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("forex request for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return 0, fmt.Errorf("decoding forex response for %s: %w", ticker, err)
	}

	if chartResp.Chart.Error != nil {
		return 0, fmt.Errorf("forex chart error for %s: %s: %s", ticker, chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}

	if len(chartResp.Chart.Result) == 0 {
		return 0, fmt.Errorf("no forex results for %s", ticker)
	}

	rate := chartResp.Chart.Result[0].Meta.RegularMarketPrice
	if rate <= 0 {
		return 0, fmt.Errorf("invalid forex rate for %s: %f", ticker, rate)
	}

	return rate, nil
}
