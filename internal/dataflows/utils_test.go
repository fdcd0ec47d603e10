package dataflows

import (
	"testing"
	"time"

	"github.com/roboadvisor/investai/internal/models"
)

func TestCacheManagerRoundTrip(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Minute, true)

	rows := []*models.MarketSnapshot{{Ticker: "005930", Close: 70000, Date: "20250110"}}
	if err := cm.Set("krx", "market_ohlcv", map[string]string{"date": "20250110"}, rows); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got []*models.MarketSnapshot
	if !cm.Get("krx", "market_ohlcv", map[string]string{"date": "20250110"}, &got) {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].Close != 70000 {
		t.Fatalf("unexpected cached data: %+v", got)
	}

	// Different params miss.
	if cm.Get("krx", "market_ohlcv", map[string]string{"date": "20250111"}, &got) {
		t.Fatal("expected cache miss for different params")
	}
}

func TestCacheManagerDisabled(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Minute, false)

	if err := cm.Set("krx", "test", "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got string
	if cm.Get("krx", "test", "k", &got) {
		t.Fatal("disabled cache must never hit")
	}
}

func TestCacheManagerExpiry(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), -time.Second, true)

	if err := cm.Set("krx", "test", "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got string
	if cm.Get("krx", "test", "k", &got) {
		t.Fatal("expired entry must miss")
	}
}

func TestValidateTicker(t *testing.T) {
	cases := []struct {
		ticker string
		ok     bool
	}{
		{"005930", true},
		{"035420", true},
		{"00593A", true},
		{"", false},
		{"5930", false},
		{"0059300", false},
		{"00593a", false},
		{"삼성전자", false},
	}

	for _, c := range cases {
		err := ValidateTicker(c.ticker)
		if c.ok && err != nil {
			t.Errorf("ValidateTicker(%q) unexpected error: %v", c.ticker, err)
		}
		if !c.ok && err == nil {
			t.Errorf("ValidateTicker(%q) expected error", c.ticker)
		}
	}
}
