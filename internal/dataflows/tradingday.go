package dataflows

import (
	"context"
	"time"

	"github.com/roboadvisor/investai/internal/models"
)

// SnapshotProber is the slice of the market client needed to test a date
// for trading activity on a single reference ticker.
type SnapshotProber interface {
	Snapshot(ctx context.Context, ticker, date string) (*models.MarketSnapshot, error)
}

// MarketProber is the market-wide variant used by the dashboard.
type MarketProber interface {
	MarketOHLCV(ctx context.Context, date string) ([]*models.MarketSnapshot, error)
}

// rollBackWeekend moves a weekend date to the preceding Friday.
func rollBackWeekend(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, -1)
	case time.Sunday:
		return t.AddDate(0, 0, -2)
	}
	return t
}

// LatestTradingDay finds the most recent date with trading data by probing
// the reference ticker, starting from now (weekends roll back to Friday)
// and walking up to 7 days into the past. When every probe comes up empty
// the weekend-adjusted start date is returned anyway; the downstream
// lookup then decides what to do with it.
func LatestTradingDay(ctx context.Context, src SnapshotProber, refTicker string, now time.Time) time.Time {
	start := rollBackWeekend(now)

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, -i)
		snap, err := src.Snapshot(ctx, refTicker, FormatDate(day))
		if err != nil {
			continue
		}
		if snap != nil {
			return day
		}
	}

	return start
}

// LatestMarketDay is the dashboard's version of the probe: it walks up to
// 10 days looking for a non-empty full-market report and returns the date
// string. Fetch errors count as misses.
func LatestMarketDay(ctx context.Context, src MarketProber, now time.Time) string {
	day := rollBackWeekend(now)

	for i := 0; i < 10; i++ {
		rows, err := src.MarketOHLCV(ctx, FormatDate(day))
		if err == nil && len(rows) > 0 {
			return FormatDate(day)
		}
		day = day.AddDate(0, 0, -1)
	}

	return FormatDate(now)
}
