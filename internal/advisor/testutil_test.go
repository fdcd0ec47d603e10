package advisor

import (
	"context"
	"errors"

	"github.com/roboadvisor/investai/internal/models"
)

// scriptGenerator replays canned replies in order and records every call.
type scriptGenerator struct {
	replies []string
	err     error
	calls   int
	prompts []string
	temps   []float32
}

func (g *scriptGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	g.prompts = append(g.prompts, prompt)
	g.temps = append(g.temps, temperature)
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "", errors.New("script exhausted")
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

type stubResolver struct {
	table map[string]string
	err   error
	asked []string
}

func (r *stubResolver) ResolveTicker(ctx context.Context, name string) (string, error) {
	r.asked = append(r.asked, name)
	if r.err != nil {
		return "", r.err
	}
	return r.table[name], nil
}

type stubMarket struct {
	snapshots map[string]*models.MarketSnapshot // keyed by ticker+date
	ranges    map[string][]*models.MarketSnapshot
	names     map[string]string
	err       error
}

func (m *stubMarket) Snapshot(ctx context.Context, ticker, date string) (*models.MarketSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshots[ticker+date], nil
}

func (m *stubMarket) SnapshotRange(ctx context.Context, ticker, from, to string) ([]*models.MarketSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ranges[ticker], nil
}

func (m *stubMarket) TickerName(ctx context.Context, ticker string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.names[ticker], nil
}

type stubIndicators struct {
	data map[string]string
	err  error
}

func (s *stubIndicators) LatestIndicators(ctx context.Context) (map[string]string, error) {
	return s.data, s.err
}

type stubSearcher struct {
	passages []*models.Passage
	err      error
	queries  []string
}

func (s *stubSearcher) Search(ctx context.Context, query string, k int) ([]*models.Passage, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.passages, nil
}
