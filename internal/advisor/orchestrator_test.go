package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/models"
)

type fakeClassifier struct {
	cls models.Classification
	err error
}

func (f *fakeClassifier) Classify(ctx context.Context, question string) (models.Classification, error) {
	return f.cls, f.err
}

type fakeReports struct {
	answer  string
	sources []models.Source
}

func (f *fakeReports) Answer(ctx context.Context, question string) (string, []models.Source) {
	return f.answer, f.sources
}

type fakeIndicatorAnswerer struct{ answer string }

func (f *fakeIndicatorAnswerer) Answer(ctx context.Context, question string) string { return f.answer }

type fakeQuotes struct {
	answer string
	ticker string
}

func (f *fakeQuotes) Answer(ctx context.Context, question, ticker string) string {
	f.ticker = ticker
	return f.answer
}

type fakeGeneral struct {
	answer string
	err    error
	calls  int
}

func (f *fakeGeneral) Answer(ctx context.Context, question string) (string, error) {
	f.calls++
	return f.answer, f.err
}

func newTestOrchestrator(cls *fakeClassifier, reports *fakeReports, indicators *fakeIndicatorAnswerer, quotes *fakeQuotes, general *fakeGeneral) *Orchestrator {
	o := NewOrchestrator(cls, reports, indicators, quotes, general, zap.NewNop())
	o.now = func() time.Time { return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC) }
	return o
}

func TestHandleDispatchesEquityQuote(t *testing.T) {
	quotes := &fakeQuotes{answer: "[시장 감성: 중립]\n\n현재가는 70,000원입니다."}
	o := newTestOrchestrator(
		&fakeClassifier{cls: models.Classification{Category: models.CategoryEquityQuote, Ticker: "005930"}},
		&fakeReports{}, &fakeIndicatorAnswerer{}, quotes, &fakeGeneral{},
	)

	resp, err := o.Handle(context.Background(), "s1", "삼성전자 주가 어때?")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if resp.Category != "equity_quote" {
		t.Errorf("category = %s", resp.Category)
	}
	if quotes.ticker != "005930" {
		t.Errorf("quote strategy got ticker %q", quotes.ticker)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].SecuritiesFirm != "KRX" {
		t.Errorf("expected synthetic KRX citation, got %+v", resp.Sources)
	}
	if !strings.Contains(resp.Sources[0].Title, "005930") {
		t.Errorf("citation should name the ticker: %+v", resp.Sources[0])
	}
	if resp.Timestamp != "2025-01-10T12:00:00Z" {
		t.Errorf("timestamp = %s", resp.Timestamp)
	}
}

func TestHandleEquityQuoteWithoutTickerFallsBackToGeneral(t *testing.T) {
	general := &fakeGeneral{answer: "일반 상담 답변입니다."}
	o := newTestOrchestrator(
		&fakeClassifier{cls: models.Classification{Category: models.CategoryEquityQuote}},
		&fakeReports{}, &fakeIndicatorAnswerer{}, &fakeQuotes{answer: "unused"}, general,
	)

	resp, err := o.Handle(context.Background(), "s1", "어디 주가가 제일 싸?")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if general.calls != 1 {
		t.Error("general strategy should have been substituted")
	}
	if len(resp.Sources) != 0 {
		t.Errorf("general fallback carries no sources, got %+v", resp.Sources)
	}
	// Category reports what was classified, not what answered.
	if resp.Category != "equity_quote" {
		t.Errorf("category = %s", resp.Category)
	}
}

func TestHandleMacroAttachesCentralBankCitation(t *testing.T) {
	o := newTestOrchestrator(
		&fakeClassifier{cls: models.Classification{Category: models.CategoryMacroIndicator}},
		&fakeReports{}, &fakeIndicatorAnswerer{answer: "[핵심 분석] 안정적입니다."}, &fakeQuotes{}, &fakeGeneral{},
	)

	resp, err := o.Handle(context.Background(), "s1", "시장 상황은 어때?")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(resp.Sources) != 1 || resp.Sources[0].Title != "한국은행 경제통계" {
		t.Errorf("expected central-bank citation, got %+v", resp.Sources)
	}
	if resp.Sources[0].Date != "2025-01-10" {
		t.Errorf("citation date = %s", resp.Sources[0].Date)
	}
}

func TestHandleAnalystReportPassesSourcesThrough(t *testing.T) {
	sources := []models.Source{{Title: "리포트", SecuritiesFirm: "NH투자증권", Date: "20250105"}}
	o := newTestOrchestrator(
		&fakeClassifier{cls: models.Classification{Category: models.CategoryAnalystReport, Ticker: "005930"}},
		&fakeReports{answer: "리포트 기반 답변", sources: sources},
		&fakeIndicatorAnswerer{}, &fakeQuotes{}, &fakeGeneral{},
	)

	resp, err := o.Handle(context.Background(), "s1", "삼성전자 리포트 요약")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].SecuritiesFirm != "NH투자증권" {
		t.Errorf("sources not passed through: %+v", resp.Sources)
	}
}

func TestHandleEmptyAnswerBecomesProcessingFailure(t *testing.T) {
	cases := []string{"", "   ", "\n\t"}
	for _, blank := range cases {
		o := newTestOrchestrator(
			&fakeClassifier{cls: models.Classification{Category: models.CategoryMacroIndicator}},
			&fakeReports{}, &fakeIndicatorAnswerer{answer: blank}, &fakeQuotes{}, &fakeGeneral{},
		)

		_, err := o.Handle(context.Background(), "s1", "시장?")
		if !errors.Is(err, ErrProcessing) {
			t.Errorf("blank answer %q must yield ErrProcessing, got %v", blank, err)
		}
	}
}

func TestHandleClassifierErrorBecomesProcessingFailure(t *testing.T) {
	o := newTestOrchestrator(
		&fakeClassifier{err: errors.New("model exploded: secret internals")},
		&fakeReports{}, &fakeIndicatorAnswerer{}, &fakeQuotes{}, &fakeGeneral{},
	)

	_, err := o.Handle(context.Background(), "s1", "질문")
	if !errors.Is(err, ErrProcessing) {
		t.Fatalf("expected ErrProcessing, got %v", err)
	}
	if strings.Contains(err.Error(), "secret internals") {
		t.Error("internal error text must not leak to the caller")
	}
}

func TestHandleGeneralStrategyErrorBecomesProcessingFailure(t *testing.T) {
	o := newTestOrchestrator(
		&fakeClassifier{cls: models.Classification{Category: models.CategoryGeneralAdvice}},
		&fakeReports{}, &fakeIndicatorAnswerer{}, &fakeQuotes{}, &fakeGeneral{err: errors.New("down")},
	)

	if _, err := o.Handle(context.Background(), "s1", "투자 전략?"); !errors.Is(err, ErrProcessing) {
		t.Fatalf("expected ErrProcessing, got %v", err)
	}
}

// End-to-end through the real classifier and quote strategy with stubbed
// external services.
func TestHandleEndToEndSamsungQuote(t *testing.T) {
	gen := &scriptGenerator{replies: []string{
		"category: equity_quote\nstock: 삼성전자",
		"삼성전자는 현재 70,000원으로 전일 대비 1.2% 상승했습니다.",
	}}
	resolver := &stubResolver{table: map[string]string{"삼성전자": "005930"}}
	market := &stubMarket{
		snapshots: map[string]*models.MarketSnapshot{"00593020250110": samsungSnapshot()},
		names:     map[string]string{"005930": "삼성전자"},
	}

	log := zap.NewNop()
	classifier := NewClassifier(gen, resolver, log)
	quotes := NewQuoteStrategy(gen, market, "005930", log)
	quotes.now = fixedFriday

	o := NewOrchestrator(classifier,
		NewReportStrategy(gen, &stubSearcher{}, 3, log),
		NewIndicatorStrategy(gen, &stubIndicators{}, log),
		quotes,
		NewGeneralStrategy(gen, log),
		log)
	o.now = fixedFriday

	resp, err := o.Handle(context.Background(), "s1", "삼성전자 주가 어때?")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if resp.SessionID != "s1" {
		t.Errorf("session_id = %s", resp.SessionID)
	}
	if resp.Category != "equity_quote" {
		t.Errorf("category = %s", resp.Category)
	}
	if !strings.Contains(resp.Answer, "[시장 감성: 중립]") {
		t.Errorf("answer missing neutral tag: %q", resp.Answer)
	}
	if !strings.Contains(resp.Answer, "70,000") {
		t.Errorf("answer missing price: %q", resp.Answer)
	}
}
