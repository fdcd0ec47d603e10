package advisor

import (
	"context"

	"github.com/roboadvisor/investai/internal/models"
)

// TextGenerator is the text-completion boundary. Callers pass the full
// prompt; nothing about the provider or its sessions leaks through.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// MarketSource supplies per-ticker snapshots. Snapshot returns (nil, nil)
// when the date has no data for the ticker.
type MarketSource interface {
	Snapshot(ctx context.Context, ticker, date string) (*models.MarketSnapshot, error)
	SnapshotRange(ctx context.Context, ticker, from, to string) ([]*models.MarketSnapshot, error)
	TickerName(ctx context.Context, ticker string) (string, error)
}

// IndicatorSource supplies the current macro-indicator snapshot.
type IndicatorSource interface {
	LatestIndicators(ctx context.Context) (map[string]string, error)
}

// TickerResolver maps a free-text company name to a ticker, "" on miss.
type TickerResolver interface {
	ResolveTicker(ctx context.Context, name string) (string, error)
}

// PassageSearcher returns the passages most similar to a query.
type PassageSearcher interface {
	Search(ctx context.Context, query string, k int) ([]*models.Passage, error)
}
