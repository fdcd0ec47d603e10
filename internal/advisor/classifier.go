package advisor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/models"
)

// fallbackTickers covers the widely-asked names when the backend stock
// table cannot resolve them.
var fallbackTickers = map[string]string{
	"삼성전자":      "005930",
	"네이버":       "035420",
	"현대차":       "005380",
	"SK하이닉스":    "000660",
	"카카오":       "035720",
	"LG에너지솔루션":  "373220",
	"삼성바이오로직스": "207940",
	"POSCO홀딩스":  "005490",
}

// Classifier routes a question to one of the four answer categories and
// extracts the ticker when the question names a resolvable company.
type Classifier struct {
	gen      TextGenerator
	resolver TickerResolver
	log      *zap.Logger
}

func NewClassifier(gen TextGenerator, resolver TickerResolver, log *zap.Logger) *Classifier {
	return &Classifier{gen: gen, resolver: resolver, log: log}
}

// Classify runs the classification prompt at zero temperature and parses
// the labeled reply. An unparseable or unknown category falls open to
// general_advice; a company name that resolves nowhere yields an absent
// ticker, never a failure.
func (c *Classifier) Classify(ctx context.Context, question string) (models.Classification, error) {
	prompt := fmt.Sprintf(classifyPromptTemplate, question)

	raw, err := c.gen.Generate(ctx, prompt, 0.0)
	if err != nil {
		return models.Classification{}, fmt.Errorf("classify question: %w", err)
	}

	fields := parseClassifierOutput(raw)

	category := models.CategoryGeneralAdvice
	if fields.CategoryFound {
		if parsed, ok := models.ParseCategory(fields.Category); ok {
			category = parsed
		} else {
			c.log.Warn("unrecognized category, defaulting to general advice",
				zap.String("category", fields.Category))
		}
	} else {
		c.log.Warn("classifier reply missing category field, defaulting to general advice")
	}

	cls := models.Classification{Category: category}

	// Tickers only matter for the two company-specific categories.
	if category != models.CategoryEquityQuote && category != models.CategoryAnalystReport {
		return cls, nil
	}
	if !fields.StockFound || fields.Stock == "" || fields.Stock == "none" {
		return cls, nil
	}

	cls.Ticker = c.resolveTicker(ctx, fields.Stock)
	return cls, nil
}

func (c *Classifier) resolveTicker(ctx context.Context, name string) string {
	ticker, err := c.resolver.ResolveTicker(ctx, name)
	if err != nil {
		c.log.Warn("ticker resolution failed, trying fallback table",
			zap.String("name", name), zap.Error(err))
	}
	if ticker != "" {
		return ticker
	}
	return fallbackTickers[name]
}
