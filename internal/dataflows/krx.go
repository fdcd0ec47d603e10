package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/roboadvisor/investai/internal/config"
	"github.com/roboadvisor/investai/internal/models"
)

// KRXClient fetches Korean market snapshots from the market-data gateway.
// Per-ticker snapshots are always fetched fresh; only market-wide reports
// and name lookups go through the file cache, since those back the
// dashboard and change at most once per trading day.
type KRXClient struct {
	client    *resty.Client
	cache     *CacheManager
	nameCache *CacheManager
}

// NewKRXClient creates a new market-data client
func NewKRXClient(cfg *config.Config) *KRXClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "krx")

	client := resty.New()
	client.SetBaseURL(cfg.MarketDataURL)
	client.SetTimeout(30 * time.Second)

	return &KRXClient{
		client:    client,
		cache:     NewCacheManager(cacheDir, 5*time.Minute, cfg.CacheEnabled),
		nameCache: NewCacheManager(cacheDir, 24*time.Hour, cfg.CacheEnabled),
	}
}

// Snapshot returns the OHLCV record for one ticker on one date, or
// (nil, nil) when the date has no data for that ticker.
func (k *KRXClient) Snapshot(ctx context.Context, ticker, date string) (*models.MarketSnapshot, error) {
	rows, err := k.SnapshotRange(ctx, ticker, date, date)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[len(rows)-1], nil
}

// SnapshotRange returns the per-day OHLCV records for one ticker between
// two dates inclusive, oldest first. An empty slice means no trading data.
func (k *KRXClient) SnapshotRange(ctx context.Context, ticker, from, to string) ([]*models.MarketSnapshot, error) {
	if err := ValidateTicker(ticker); err != nil {
		return nil, err
	}

	var rows []*models.MarketSnapshot
	resp, err := k.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ticker": ticker,
			"from":   from,
			"to":     to,
		}).
		Get("/api/v1/ohlcv")
	if err != nil {
		return nil, fmt.Errorf("fetch ohlcv for %s: %w", ticker, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("market API error %d: %s", resp.StatusCode(), resp.String())
	}
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("parse ohlcv response: %w", err)
	}

	return rows, nil
}

// MarketOHLCV returns the full-market OHLCV report for one date, one row
// per listed ticker. An empty slice means the date was not a trading day.
func (k *KRXClient) MarketOHLCV(ctx context.Context, date string) ([]*models.MarketSnapshot, error) {
	params := map[string]string{"date": date, "market": "ALL"}

	var cached []*models.MarketSnapshot
	if k.cache.Get("krx", "market_ohlcv", params, &cached) {
		return cached, nil
	}

	var rows []*models.MarketSnapshot
	resp, err := k.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/api/v1/market/ohlcv")
	if err != nil {
		return nil, fmt.Errorf("fetch market ohlcv for %s: %w", date, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("market API error %d: %s", resp.StatusCode(), resp.String())
	}
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("parse market ohlcv response: %w", err)
	}

	// Non-trading days come back empty; caching them would mask the next
	// trading day for the TTL window.
	if len(rows) > 0 {
		k.cache.Set("krx", "market_ohlcv", params, rows)
	}

	return rows, nil
}

// MarketCap returns the market-cap report for one date, largest caps first
// not guaranteed; callers sort.
func (k *KRXClient) MarketCap(ctx context.Context, date string) ([]*models.MarketCapEntry, error) {
	params := map[string]string{"date": date, "market": "ALL"}

	var cached []*models.MarketCapEntry
	if k.cache.Get("krx", "market_cap", params, &cached) {
		return cached, nil
	}

	var rows []*models.MarketCapEntry
	resp, err := k.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/api/v1/market/cap")
	if err != nil {
		return nil, fmt.Errorf("fetch market cap for %s: %w", date, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("market API error %d: %s", resp.StatusCode(), resp.String())
	}
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("parse market cap response: %w", err)
	}

	if len(rows) > 0 {
		k.cache.Set("krx", "market_cap", params, rows)
	}

	return rows, nil
}

// IndexOHLCV returns the daily candles of a market index (KOSPI "1001",
// KOSDAQ "2001") between two dates inclusive, oldest first.
func (k *KRXClient) IndexOHLCV(ctx context.Context, from, to, code string) ([]*models.IndexCandle, error) {
	params := map[string]string{"code": code, "from": from, "to": to}

	var cached []*models.IndexCandle
	if k.cache.Get("krx", "index_ohlcv", params, &cached) {
		return cached, nil
	}

	var rows []*models.IndexCandle
	resp, err := k.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/api/v1/index/ohlcv")
	if err != nil {
		return nil, fmt.Errorf("fetch index ohlcv for %s: %w", code, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("market API error %d: %s", resp.StatusCode(), resp.String())
	}
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("parse index ohlcv response: %w", err)
	}

	if len(rows) > 0 {
		k.cache.Set("krx", "index_ohlcv", params, rows)
	}

	return rows, nil
}

// TickerName resolves a ticker to its display name. Names are stable, so
// hits stay cached for a day.
func (k *KRXClient) TickerName(ctx context.Context, ticker string) (string, error) {
	if err := ValidateTicker(ticker); err != nil {
		return "", err
	}

	var cached struct {
		Name string `json:"name"`
	}
	if k.nameCache.Get("krx", "ticker_name", ticker, &cached) {
		return cached.Name, nil
	}

	resp, err := k.client.R().
		SetContext(ctx).
		SetResult(&cached).
		Get("/api/v1/ticker/" + ticker + "/name")
	if err != nil {
		return "", fmt.Errorf("fetch name for %s: %w", ticker, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("market API error %d: %s", resp.StatusCode(), resp.String())
	}

	if cached.Name != "" {
		k.nameCache.Set("krx", "ticker_name", ticker, cached)
	}

	return cached.Name, nil
}
