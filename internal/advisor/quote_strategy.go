package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/dataflows"
	"github.com/roboadvisor/investai/internal/models"
)

const quotePartialAnswer = "주가 데이터는 조회했으나 분석 답변 생성 중 오류가 발생했습니다. 잠시 후 다시 시도해 주세요."

// QuoteStrategy answers price questions for a resolved ticker from a
// fresh market snapshot. Snapshots are never cached here; every answer
// reflects the latest trading day the market source can produce.
type QuoteStrategy struct {
	gen       TextGenerator
	market    MarketSource
	refTicker string
	now       func() time.Time
	log       *zap.Logger
}

func NewQuoteStrategy(gen TextGenerator, market MarketSource, refTicker string, log *zap.Logger) *QuoteStrategy {
	return &QuoteStrategy{
		gen:       gen,
		market:    market,
		refTicker: refTicker,
		now:       time.Now,
		log:       log,
	}
}

func (s *QuoteStrategy) Answer(ctx context.Context, question, ticker string) string {
	day := dataflows.LatestTradingDay(ctx, s.market, s.refTicker, s.now())
	date := dataflows.FormatDate(day)

	snap := s.fetchSnapshot(ctx, ticker, day, date)
	if snap == nil {
		return fmt.Sprintf("죄송합니다. 종목 코드 '%s'의 주가 데이터를 조회할 수 없습니다. 종목 코드를 확인해 주세요.", ticker)
	}

	sentiment := SentimentLabel(snap.ChangePct)

	prompt := fmt.Sprintf(quotePromptTemplate, s.formatSnapshot(ctx, snap), sentiment, question, sentiment)
	answer, err := s.gen.Generate(ctx, prompt, 0.3)
	if err != nil || strings.TrimSpace(answer) == "" {
		s.log.Error("quote answer generation failed",
			zap.String("ticker", ticker), zap.Error(err))
		return quotePartialAnswer
	}

	return fmt.Sprintf("[시장 감성: %s]\n\n%s", sentiment, answer)
}

// fetchSnapshot tries the resolved trading day first, then widens to a
// 7-day range ending on it. Returns nil when both come up empty.
func (s *QuoteStrategy) fetchSnapshot(ctx context.Context, ticker string, day time.Time, date string) *models.MarketSnapshot {
	snap, err := s.market.Snapshot(ctx, ticker, date)
	if err != nil {
		s.log.Warn("snapshot fetch failed",
			zap.String("ticker", ticker), zap.String("date", date), zap.Error(err))
	}
	if snap != nil {
		return snap
	}

	from := dataflows.FormatDate(day.AddDate(0, 0, -7))
	rows, err := s.market.SnapshotRange(ctx, ticker, from, date)
	if err != nil {
		s.log.Warn("snapshot range fetch failed",
			zap.String("ticker", ticker), zap.Error(err))
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	return rows[len(rows)-1]
}

func (s *QuoteStrategy) formatSnapshot(ctx context.Context, snap *models.MarketSnapshot) string {
	name := snap.Name
	if name == "" {
		resolved, err := s.market.TickerName(ctx, snap.Ticker)
		if err != nil || resolved == "" {
			name = "Unknown"
		} else {
			name = resolved
		}
	}

	return strings.Join([]string{
		"종목명: " + name,
		"종목코드: " + snap.Ticker,
		"현재가: " + formatComma(snap.Close) + "원",
		"등락률: " + strconv.FormatFloat(snap.ChangePct, 'f', 2, 64) + "%",
		"시가: " + formatComma(snap.Open) + "원",
		"고가: " + formatComma(snap.High) + "원",
		"저가: " + formatComma(snap.Low) + "원",
		"거래량: " + formatComma(snap.Volume) + "주",
		"기준일: " + snap.Date,
	}, "\n")
}

// formatComma renders an integer with thousands separators.
func formatComma(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
