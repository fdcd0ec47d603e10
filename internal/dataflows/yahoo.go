package dataflows

import (
	"context"
	"fmt"

	"github.com/piquette/finance-go/quote"

	"github.com/roboadvisor/investai/internal/models"
)

// YahooIndexClient recovers a headline index level from Yahoo Finance when
// the primary market-data gateway cannot serve the daily series. Only the
// latest value survives this path; there is no chart history.
type YahooIndexClient struct{}

func NewYahooIndexClient() *YahooIndexClient {
	return &YahooIndexClient{}
}

// IndexQuote fetches the regular-market level of an index symbol such as
// ^KS11 or ^KQ11.
func (y *YahooIndexClient) IndexQuote(ctx context.Context, symbol string) (*models.IndexQuote, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch yahoo quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no yahoo quote for %s", symbol)
	}

	return &models.IndexQuote{
		Value:       q.RegularMarketPrice,
		ChangeValue: q.RegularMarketChange,
		ChangeRate:  q.RegularMarketChangePercent,
	}, nil
}
