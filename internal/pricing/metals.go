package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const metalUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

// goldPriceResponse is the goldprice.org dbXRates payload.
type goldPriceResponse struct {
	Items []struct {
		Currency string  `json:"curr"`
		XAUPrice float64 `json:"xauPrice"`
		XAGPrice float64 `json:"xagPrice"`
	} `json:"items"`
}

// MetalProvider fetches XAU and XAG spot prices in USD per troy ounce.
type MetalProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewMetalProvider creates a metal spot price provider for the given feed URL.
func NewMetalProvider(httpClient *http.Client, baseURL string) *MetalProvider {
	return &MetalProvider{httpClient: httpClient, baseURL: baseURL}
}

// Name returns the provider's display name.
func (p *MetalProvider) Name() string { return "GoldPrice" }

// FetchSpot fetches the current gold and silver spot prices.
// Returns a map keyed by metal symbol (XAU, XAG) in USD per troy ounce.
func (p *MetalProvider) FetchSpot(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building metal request: %w", err)
	}
	req.Header.Set("User-Agent", metalUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metal http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metal request: unexpected status %d", resp.StatusCode)
	}

	var feed goldPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding metal response: %w", err)
	}

	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("no metal quotes in response")
	}

	item := feed.Items[0]
	if item.XAUPrice <= 0 {
		return nil, fmt.Errorf("invalid gold price: %f", item.XAUPrice)
	}

	spot := map[string]float64{"XAU": item.XAUPrice}
	if item.XAGPrice > 0 {
		spot["XAG"] = item.XAGPrice
	}
	return spot, nil
}
