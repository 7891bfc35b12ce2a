package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// mfapiResponse is the mfapi.in latest-NAV payload. NAV values come back as
// strings and are parsed with decimal to avoid float drift.
type mfapiResponse struct {
	Meta struct {
		SchemeName string `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"`
		NAV  string `json:"nav"`
	} `json:"data"`
	Status string `json:"status"`
}

// NAVProvider fetches mutual fund NAVs by AMFI scheme code.
type NAVProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewNAVProvider creates a mutual fund NAV provider for the given endpoint.
func NewNAVProvider(httpClient *http.Client, baseURL string) *NAVProvider {
	return &NAVProvider{httpClient: httpClient, baseURL: baseURL}
}

// Name returns the provider's display name.
func (p *NAVProvider) Name() string { return "MFAPI" }

// FetchLatest fetches the latest published NAV for a scheme code.
func (p *NAVProvider) FetchLatest(ctx context.Context, schemeCode string) (NAVQuote, error) {
	url := p.baseURL + "/" + schemeCode + "/latest"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NAVQuote{}, fmt.Errorf("building nav request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return NAVQuote{}, fmt.Errorf("nav http request for %s: %w", schemeCode, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return NAVQuote{}, fmt.Errorf("nav request for %s: unexpected status %d", schemeCode, resp.StatusCode)
	}

	var payload mfapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return NAVQuote{}, fmt.Errorf("decoding nav response for %s: %w", schemeCode, err)
	}

	if len(payload.Data) == 0 {
		return NAVQuote{}, fmt.Errorf("no nav data for scheme %s", schemeCode)
	}

	nav, err := decimal.NewFromString(payload.Data[0].NAV)
	if err != nil {
		return NAVQuote{}, fmt.Errorf("parsing nav %q for scheme %s: %w", payload.Data[0].NAV, schemeCode, err)
	}
	if nav.Sign() <= 0 {
		return NAVQuote{}, fmt.Errorf("invalid nav for scheme %s: %s", schemeCode, nav)
	}

	return NAVQuote{
		SchemeCode: schemeCode,
		SchemeName: payload.Meta.SchemeName,
		Source:     SourceLive,
		Date:       payload.Data[0].Date,
		NAV:        valid(nav),
	}, nil
}
