package dashboard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/dataflows"
	"github.com/roboadvisor/investai/internal/models"
)

// ErrNotFound means the ticker has no data for the latest trading day.
var ErrNotFound = errors.New("stock data not found")

// MarketData is the slice of the market client the dashboard consumes.
type MarketData interface {
	Snapshot(ctx context.Context, ticker, date string) (*models.MarketSnapshot, error)
	SnapshotRange(ctx context.Context, ticker, from, to string) ([]*models.MarketSnapshot, error)
	MarketOHLCV(ctx context.Context, date string) ([]*models.MarketSnapshot, error)
	MarketCap(ctx context.Context, date string) ([]*models.MarketCapEntry, error)
	IndexOHLCV(ctx context.Context, from, to, code string) ([]*models.IndexCandle, error)
	TickerName(ctx context.Context, ticker string) (string, error)
}

// IndexQuoteSource recovers a headline index level when the daily series
// is unavailable.
type IndexQuoteSource interface {
	IndexQuote(ctx context.Context, symbol string) (*models.IndexQuote, error)
}

// indexSpecs maps response keys to the upstream index code and the quote
// symbol used as a last-resort fallback.
var indexSpecs = []struct {
	key    string
	code   string
	symbol string
}{
	{"kospi", "1001", "^KS11"},
	{"kosdaq", "2001", "^KQ11"},
}

const (
	indexWindowDays         = 21
	indexFallbackWindowDays = 120
	chartPoints             = 7
	stockChartWindowDays    = 14
	rankedCount             = 5
	marketCapCount          = 10
)

// Aggregator builds the market dashboard payload and memoizes it. The
// aggregate is always computed fully off to the side and swapped in under
// the mutex only once complete, so readers never see partial data.
type Aggregator struct {
	market MarketData
	quotes IndexQuoteSource
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger

	mu       sync.Mutex
	cached   *models.Dashboard
	cachedAt time.Time
}

func NewAggregator(market MarketData, quotes IndexQuoteSource, ttl time.Duration, log *zap.Logger) *Aggregator {
	return &Aggregator{
		market: market,
		quotes: quotes,
		ttl:    ttl,
		now:    time.Now,
		log:    log,
	}
}

// Dashboard returns the memoized aggregate, recomputing it when the TTL
// has passed. A failed recompute falls back to the previous complete
// aggregate when one exists.
func (a *Aggregator) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	a.mu.Lock()
	if a.cached != nil && a.now().Sub(a.cachedAt) < a.ttl {
		d := a.cached
		a.mu.Unlock()
		return d, nil
	}
	a.mu.Unlock()

	return a.Refresh(ctx)
}

// Refresh recomputes the aggregate unconditionally. Used by the cron
// pre-warm so the HTTP path is usually a cache hit.
func (a *Aggregator) Refresh(ctx context.Context) (*models.Dashboard, error) {
	fresh, err := a.compute(ctx)
	if err != nil {
		a.log.Error("dashboard recompute failed", zap.Error(err))
		a.mu.Lock()
		stale := a.cached
		a.mu.Unlock()
		if stale != nil {
			return stale, nil
		}
		return nil, err
	}

	a.mu.Lock()
	a.cached = fresh
	a.cachedAt = a.now()
	a.mu.Unlock()

	return fresh, nil
}

func (a *Aggregator) compute(ctx context.Context) (*models.Dashboard, error) {
	now := a.now()
	latestDay := dataflows.LatestMarketDay(ctx, a.market, now)

	rows, err := a.market.MarketOHLCV(ctx, latestDay)
	if err != nil {
		return nil, err
	}
	a.log.Info("market report loaded",
		zap.String("date", latestDay), zap.Int("tickers", len(rows)))

	d := &models.Dashboard{
		Indices:      make(map[string]models.IndexSummary, len(indexSpecs)),
		TopGainers:   []models.RankedStock{},
		TopLosers:    []models.RankedStock{},
		TopVolume:    []models.VolumeStock{},
		TopMarketCap: []models.RankedStock{},
	}

	for _, spec := range indexSpecs {
		d.Indices[spec.key] = a.indexSummary(ctx, spec.code, spec.symbol, now)
	}

	byGain := append([]*models.MarketSnapshot(nil), rows...)
	sort.SliceStable(byGain, func(i, j int) bool { return byGain[i].ChangePct > byGain[j].ChangePct })
	for _, row := range headSnapshots(byGain, rankedCount) {
		d.TopGainers = append(d.TopGainers, a.rankedStock(ctx, row))
	}
	for i, j := 0, len(byGain)-1; i < j; i, j = i+1, j-1 {
		byGain[i], byGain[j] = byGain[j], byGain[i]
	}
	for _, row := range headSnapshots(byGain, rankedCount) {
		d.TopLosers = append(d.TopLosers, a.rankedStock(ctx, row))
	}

	byVolume := append([]*models.MarketSnapshot(nil), rows...)
	sort.SliceStable(byVolume, func(i, j int) bool { return byVolume[i].Volume > byVolume[j].Volume })
	for _, row := range headSnapshots(byVolume, rankedCount) {
		d.TopVolume = append(d.TopVolume, models.VolumeStock{
			Code:   row.Ticker,
			Name:   a.tickerName(ctx, row),
			Volume: row.Volume,
		})
	}

	d.TopMarketCap = a.topMarketCap(ctx, latestDay, rows)

	return d, nil
}

// indexSummary builds one index entry: 21-day series for the chart and
// change figures, widening the window when the short one comes back thin,
// then the point quote, then zeros.
func (a *Aggregator) indexSummary(ctx context.Context, code, symbol string, now time.Time) models.IndexSummary {
	to := dataflows.FormatDate(now)

	for _, days := range []int{indexWindowDays, indexFallbackWindowDays} {
		from := dataflows.FormatDate(now.AddDate(0, 0, -days))
		series, err := a.market.IndexOHLCV(ctx, from, to, code)
		if err != nil {
			a.log.Warn("index series fetch failed",
				zap.String("code", code), zap.String("from", from), zap.Error(err))
			continue
		}
		if len(series) < 2 {
			a.log.Warn("index series too short",
				zap.String("code", code), zap.String("from", from), zap.Int("rows", len(series)))
			continue
		}
		return summaryFromSeries(series)
	}

	if quote, err := a.quotes.IndexQuote(ctx, symbol); err == nil && quote != nil {
		a.log.Info("index headline recovered from quote", zap.String("symbol", symbol))
		return models.IndexSummary{
			Value:       round2(quote.Value),
			ChangeValue: round2(quote.ChangeValue),
			ChangeRate:  round2(quote.ChangeRate),
			ChartData:   []models.ChartPoint{},
		}
	}

	a.log.Error("index data unavailable on every path", zap.String("code", code))
	return models.IndexSummary{ChartData: []models.ChartPoint{}}
}

func summaryFromSeries(series []*models.IndexCandle) models.IndexSummary {
	chart := series
	if len(chart) > chartPoints {
		chart = chart[len(chart)-chartPoints:]
	}
	points := make([]models.ChartPoint, 0, len(chart))
	for _, candle := range chart {
		points = append(points, models.ChartPoint{Value: candle.Close})
	}

	latest := decimal.NewFromFloat(series[len(series)-1].Close)
	previous := decimal.NewFromFloat(series[len(series)-2].Close)

	summary := models.IndexSummary{
		Value:     latest.Round(2).InexactFloat64(),
		ChartData: points,
	}
	if !previous.IsZero() {
		summary.ChangeValue = latest.Sub(previous).Round(2).InexactFloat64()
		summary.ChangeRate = latest.Div(previous).
			Sub(decimal.NewFromInt(1)).
			Mul(decimal.NewFromInt(100)).
			Round(2).InexactFloat64()
	}
	return summary
}

// topMarketCap joins the cap ranking against the day's OHLCV table;
// tickers missing from the price report are skipped.
func (a *Aggregator) topMarketCap(ctx context.Context, date string, rows []*models.MarketSnapshot) []models.RankedStock {
	out := []models.RankedStock{}

	caps, err := a.market.MarketCap(ctx, date)
	if err != nil {
		a.log.Error("market cap report failed", zap.String("date", date), zap.Error(err))
		return out
	}

	sort.SliceStable(caps, func(i, j int) bool { return caps[i].MarketCap > caps[j].MarketCap })
	if len(caps) > marketCapCount {
		caps = caps[:marketCapCount]
	}

	prices := make(map[string]*models.MarketSnapshot, len(rows))
	for _, row := range rows {
		prices[row.Ticker] = row
	}

	for _, entry := range caps {
		row, ok := prices[entry.Ticker]
		if !ok {
			continue
		}
		out = append(out, a.rankedStock(ctx, row))
	}
	return out
}

// StockDetails returns compact quotes for the requested tickers in request
// order; tickers without data that day are skipped.
func (a *Aggregator) StockDetails(ctx context.Context, tickers []string) ([]models.StockListItem, error) {
	out := []models.StockListItem{}
	if len(tickers) == 0 {
		return out, nil
	}

	latestDay := dataflows.LatestMarketDay(ctx, a.market, a.now())
	rows, err := a.market.MarketOHLCV(ctx, latestDay)
	if err != nil {
		return nil, err
	}

	byTicker := make(map[string]*models.MarketSnapshot, len(rows))
	for _, row := range rows {
		byTicker[row.Ticker] = row
	}

	for _, ticker := range tickers {
		row, ok := byTicker[ticker]
		if !ok {
			continue
		}
		out = append(out, models.StockListItem{
			ID:        ticker,
			Name:      a.tickerName(ctx, row),
			Price:     row.Close,
			ChangePct: round2(row.ChangePct),
		})
	}
	return out, nil
}

// StockDetail returns the full quote for one ticker on the latest trading
// day, or ErrNotFound when the ticker has no data.
func (a *Aggregator) StockDetail(ctx context.Context, ticker string) (*models.StockDetail, error) {
	latestDay := dataflows.LatestMarketDay(ctx, a.market, a.now())

	row, err := a.market.Snapshot(ctx, ticker, latestDay)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}

	return &models.StockDetail{
		Name:      a.tickerName(ctx, row),
		Ticker:    ticker,
		Price:     row.Close,
		ChangePct: round2(row.ChangePct),
		OHLC: models.StockOHLC{
			Open: row.Open,
			High: row.High,
			Low:  row.Low,
		},
	}, nil
}

// StockChart returns the closes of the last two weeks, oldest first.
func (a *Aggregator) StockChart(ctx context.Context, ticker string) ([]int64, error) {
	now := a.now()
	from := dataflows.FormatDate(now.AddDate(0, 0, -stockChartWindowDays))
	to := dataflows.FormatDate(now)

	rows, err := a.market.SnapshotRange(ctx, ticker, from, to)
	if err != nil {
		return nil, err
	}

	closes := make([]int64, 0, len(rows))
	for _, row := range rows {
		closes = append(closes, row.Close)
	}
	return closes, nil
}

func (a *Aggregator) rankedStock(ctx context.Context, row *models.MarketSnapshot) models.RankedStock {
	return models.RankedStock{
		Code:       row.Ticker,
		Name:       a.tickerName(ctx, row),
		Price:      row.Close,
		ChangeRate: round2(row.ChangePct),
	}
}

// tickerName prefers the name embedded in the report row and falls back
// to a lookup; a failed lookup degrades to the ticker itself.
func (a *Aggregator) tickerName(ctx context.Context, row *models.MarketSnapshot) string {
	if row.Name != "" {
		return row.Name
	}
	name, err := a.market.TickerName(ctx, row.Ticker)
	if err != nil || name == "" {
		return row.Ticker
	}
	return name
}

func headSnapshots(rows []*models.MarketSnapshot, n int) []*models.MarketSnapshot {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
