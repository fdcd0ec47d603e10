package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/roboadvisor/investai/internal/config"
)

// BackendClient talks to the relational backend that owns the stock table
// and the macro-indicator snapshots.
type BackendClient struct {
	client *resty.Client
}

// NewBackendClient creates a new backend client
func NewBackendClient(cfg *config.Config) *BackendClient {
	client := resty.New()
	client.SetBaseURL(cfg.BackendURL)
	client.SetTimeout(30 * time.Second)

	return &BackendClient{client: client}
}

// LatestIndicators returns the current macro-indicator snapshot as a flat
// name → value mapping. No staleness tracking; whatever the backend
// returns is treated as current.
func (b *BackendClient) LatestIndicators(ctx context.Context) (map[string]string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		Get("/api/indicators/latest")
	if err != nil {
		return nil, fmt.Errorf("fetch indicators: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("backend API error %d: %s", resp.StatusCode(), resp.String())
	}

	var indicators map[string]string
	if err := json.Unmarshal(resp.Body(), &indicators); err != nil {
		return nil, fmt.Errorf("parse indicators response: %w", err)
	}

	return indicators, nil
}

type stockSearchResult struct {
	StockID   string `json:"stockId"`
	StockName string `json:"stockName"`
}

// ResolveTicker looks a free-text company name up in the backend stock
// table and returns its ticker, or "" when nothing matched.
func (b *BackendClient) ResolveTicker(ctx context.Context, name string) (string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParam("query", name).
		Get("/api/stocks/search")
	if err != nil {
		return "", fmt.Errorf("search stock %q: %w", name, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("backend API error %d: %s", resp.StatusCode(), resp.String())
	}

	var stocks []stockSearchResult
	if err := json.Unmarshal(resp.Body(), &stocks); err != nil {
		return "", fmt.Errorf("parse stock search response: %w", err)
	}
	if len(stocks) == 0 {
		return "", nil
	}

	return stocks[0].StockID, nil
}
