package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/models"
)

// ErrProcessing is the only failure that reaches the caller. Internal
// detail stays in the logs; untrusted callers get the sentinel.
var ErrProcessing = errors.New("query processing failed")

// QuestionClassifier decides the category and optional ticker for a question.
type QuestionClassifier interface {
	Classify(ctx context.Context, question string) (models.Classification, error)
}

// ReportAnswerer answers from retrieved analyst reports.
type ReportAnswerer interface {
	Answer(ctx context.Context, question string) (string, []models.Source)
}

// IndicatorAnswerer answers from the macro-indicator snapshot.
type IndicatorAnswerer interface {
	Answer(ctx context.Context, question string) string
}

// QuoteAnswerer answers from a live quote for a resolved ticker.
type QuoteAnswerer interface {
	Answer(ctx context.Context, question, ticker string) string
}

// GeneralAnswerer answers open-ended questions with no data fetch.
type GeneralAnswerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Orchestrator runs one question through classify → strategy → validate
// and shapes the response. Safe for concurrent use; all state is
// constructor-injected clients.
type Orchestrator struct {
	classifier QuestionClassifier
	reports    ReportAnswerer
	indicators IndicatorAnswerer
	quotes     QuoteAnswerer
	general    GeneralAnswerer
	now        func() time.Time
	log        *zap.Logger
}

func NewOrchestrator(
	classifier QuestionClassifier,
	reports ReportAnswerer,
	indicators IndicatorAnswerer,
	quotes QuoteAnswerer,
	general GeneralAnswerer,
	log *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		reports:    reports,
		indicators: indicators,
		quotes:     quotes,
		general:    general,
		now:        time.Now,
		log:        log,
	}
}

// Handle processes one question end to end. Strategy-internal failures
// arrive here already absorbed into answer text; anything else, including
// a blank answer, becomes ErrProcessing.
func (o *Orchestrator) Handle(ctx context.Context, sessionID, question string) (*models.QueryResponse, error) {
	o.log.Info("question received",
		zap.String("session_id", sessionID), zap.String("question", question))

	cls, err := o.classifier.Classify(ctx, question)
	if err != nil {
		o.log.Error("classification failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil, ErrProcessing
	}

	o.log.Info("question classified",
		zap.String("session_id", sessionID),
		zap.String("category", string(cls.Category)),
		zap.String("ticker", cls.Ticker))

	now := o.now()
	var answer string
	var sources []models.Source

	switch cls.Category {
	case models.CategoryAnalystReport:
		answer, sources = o.reports.Answer(ctx, question)

	case models.CategoryMacroIndicator:
		answer = o.indicators.Answer(ctx, question)
		sources = []models.Source{{
			Title:          "한국은행 경제통계",
			SecuritiesFirm: "ECOS",
			Date:           now.Format("2006-01-02"),
		}}

	case models.CategoryEquityQuote:
		if cls.Ticker == "" {
			// No resolvable company: fall back to general advice.
			answer, err = o.general.Answer(ctx, question)
		} else {
			answer = o.quotes.Answer(ctx, question, cls.Ticker)
			sources = []models.Source{{
				Title:          "실시간 주가 (" + cls.Ticker + ")",
				SecuritiesFirm: "KRX",
				Date:           now.Format("2006-01-02"),
			}}
		}

	default:
		answer, err = o.general.Answer(ctx, question)
	}

	if err != nil {
		o.log.Error("strategy failed",
			zap.String("session_id", sessionID),
			zap.String("category", string(cls.Category)), zap.Error(err))
		return nil, ErrProcessing
	}
	if strings.TrimSpace(answer) == "" {
		o.log.Error("empty answer produced",
			zap.String("session_id", sessionID),
			zap.String("category", string(cls.Category)))
		return nil, ErrProcessing
	}

	if sources == nil {
		sources = []models.Source{}
	}

	return &models.QueryResponse{
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Category:  string(cls.Category),
		Sources:   sources,
		Timestamp: now.Format(time.RFC3339),
	}, nil
}
