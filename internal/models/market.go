package models

// MarketSnapshot is a single-date OHLCV record for one ticker. Prices are
// KRW integers as returned upstream, Date is YYYYMMDD.
type MarketSnapshot struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name,omitempty"`
	Close     int64   `json:"close"`
	ChangePct float64 `json:"change_pct"`
	Volume    int64   `json:"volume"`
	Open      int64   `json:"open"`
	High      int64   `json:"high"`
	Low       int64   `json:"low"`
	Date      string  `json:"date"`
}

// MarketCapEntry is one row of the market-cap ranking report.
type MarketCapEntry struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name,omitempty"`
	MarketCap int64  `json:"market_cap"`
}

// IndexCandle is one daily bar of an index-level OHLC series.
type IndexCandle struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// IndexQuote is a point-in-time index level, used when the daily series
// is unavailable and only the headline number can be recovered.
type IndexQuote struct {
	Value       float64 `json:"value"`
	ChangeValue float64 `json:"changeValue"`
	ChangeRate  float64 `json:"changeRate"`
}
