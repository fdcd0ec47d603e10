package models

// ChartPoint is one value on a dashboard sparkline.
type ChartPoint struct {
	Value float64 `json:"value"`
}

// IndexSummary is the headline state of one market index plus a short
// close-price history for charting.
type IndexSummary struct {
	Value       float64      `json:"value"`
	ChangeValue float64      `json:"changeValue"`
	ChangeRate  float64      `json:"changeRate"`
	ChartData   []ChartPoint `json:"chartData"`
}

// RankedStock is one entry of a price-based ranking (gainers, losers,
// market cap).
type RankedStock struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Price      int64   `json:"price"`
	ChangeRate float64 `json:"change_rate"`
}

// VolumeStock is one entry of the traded-volume ranking.
type VolumeStock struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Volume int64  `json:"volume"`
}

// Dashboard aggregates everything the front page needs in one payload.
type Dashboard struct {
	Indices      map[string]IndexSummary `json:"indices"`
	TopGainers   []RankedStock           `json:"topGainers"`
	TopLosers    []RankedStock           `json:"topLosers"`
	TopVolume    []VolumeStock           `json:"topVolume"`
	TopMarketCap []RankedStock           `json:"topMarketCap"`
}

// StockListItem is the compact per-ticker quote used by watchlists.
type StockListItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     int64   `json:"price"`
	ChangePct float64 `json:"changePct"`
}

// StockOHLC is the intraday range of a detailed quote.
type StockOHLC struct {
	Open int64 `json:"open"`
	High int64 `json:"high"`
	Low  int64 `json:"low"`
}

// StockDetail is the full single-ticker quote payload.
type StockDetail struct {
	Name      string    `json:"name"`
	Ticker    string    `json:"ticker"`
	Price     int64     `json:"price"`
	ChangePct float64   `json:"changePct"`
	OHLC      StockOHLC `json:"ohlc"`
}
