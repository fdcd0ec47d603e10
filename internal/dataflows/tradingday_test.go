package dataflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roboadvisor/investai/internal/models"
)

type stubProber struct {
	tradingDays map[string]bool
	probed      []string
	failAll     bool
}

func (s *stubProber) Snapshot(ctx context.Context, ticker, date string) (*models.MarketSnapshot, error) {
	s.probed = append(s.probed, date)
	if s.failAll {
		return nil, errors.New("gateway down")
	}
	if s.tradingDays[date] {
		return &models.MarketSnapshot{Ticker: ticker, Date: date, Close: 70000}, nil
	}
	return nil, nil
}

func (s *stubProber) MarketOHLCV(ctx context.Context, date string) ([]*models.MarketSnapshot, error) {
	s.probed = append(s.probed, date)
	if s.failAll {
		return nil, errors.New("gateway down")
	}
	if s.tradingDays[date] {
		return []*models.MarketSnapshot{{Ticker: "005930", Date: date}}, nil
	}
	return nil, nil
}

func TestLatestTradingDayWeekendStartsFromFriday(t *testing.T) {
	// 2025-01-11 is a Saturday; the probe must start on Friday the 10th.
	saturday := time.Date(2025, 1, 11, 15, 0, 0, 0, time.UTC)
	src := &stubProber{tradingDays: map[string]bool{"20250110": true}}

	day := LatestTradingDay(context.Background(), src, "005930", saturday)

	if got := FormatDate(day); got != "20250110" {
		t.Fatalf("expected 20250110, got %s", got)
	}
	if src.probed[0] != "20250110" {
		t.Fatalf("first probe should be Friday, got %s", src.probed[0])
	}
}

func TestLatestTradingDaySundayRollsBackTwoDays(t *testing.T) {
	sunday := time.Date(2025, 1, 12, 9, 0, 0, 0, time.UTC)
	src := &stubProber{tradingDays: map[string]bool{"20250110": true}}

	day := LatestTradingDay(context.Background(), src, "005930", sunday)

	if got := FormatDate(day); got != "20250110" {
		t.Fatalf("expected 20250110, got %s", got)
	}
}

func TestLatestTradingDaySkipsHoliday(t *testing.T) {
	// Wednesday with Tue/Wed closed: probe walks back to Monday.
	wednesday := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	src := &stubProber{tradingDays: map[string]bool{"20250113": true}}

	day := LatestTradingDay(context.Background(), src, "005930", wednesday)

	if got := FormatDate(day); got != "20250113" {
		t.Fatalf("expected 20250113, got %s", got)
	}
}

func TestLatestTradingDayExhaustedFallsBackToStart(t *testing.T) {
	monday := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)
	src := &stubProber{failAll: true}

	day := LatestTradingDay(context.Background(), src, "005930", monday)

	if got := FormatDate(day); got != "20250113" {
		t.Fatalf("expected fallback to start date 20250113, got %s", got)
	}
	if len(src.probed) != 7 {
		t.Fatalf("expected 7 probes, got %d", len(src.probed))
	}
}

func TestLatestMarketDayWalksBack(t *testing.T) {
	monday := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)
	src := &stubProber{tradingDays: map[string]bool{"20250110": true}}

	got := LatestMarketDay(context.Background(), src, monday)

	if got != "20250110" {
		t.Fatalf("expected 20250110, got %s", got)
	}
}

func TestLatestMarketDayExhaustedReturnsToday(t *testing.T) {
	monday := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)
	src := &stubProber{failAll: true}

	got := LatestMarketDay(context.Background(), src, monday)

	if got != "20250113" {
		t.Fatalf("expected today fallback 20250113, got %s", got)
	}
	if len(src.probed) != 10 {
		t.Fatalf("expected 10 probes, got %d", len(src.probed))
	}
}
