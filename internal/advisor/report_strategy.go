package advisor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/models"
)

const (
	passageExcerptRunes = 200

	reportNoMatchAnswer = "죄송합니다. 질문과 관련된 증권사 리포트를 찾지 못했습니다. 다른 질문을 해주시거나 기업명을 함께 알려주세요."
	reportFailedAnswer  = "죄송합니다. 증권사 리포트 검색 중 오류가 발생했습니다. 잠시 후 다시 시도해 주세요."
)

// ReportStrategy answers from retrieved analyst-report passages. It never
// returns an error: every failure mode degrades into an answer-shaped
// apology with no sources.
type ReportStrategy struct {
	gen    TextGenerator
	search PassageSearcher
	topK   int
	log    *zap.Logger
}

func NewReportStrategy(gen TextGenerator, search PassageSearcher, topK int, log *zap.Logger) *ReportStrategy {
	if topK <= 0 {
		topK = 3
	}
	return &ReportStrategy{gen: gen, search: search, topK: topK, log: log}
}

func (s *ReportStrategy) Answer(ctx context.Context, question string) (string, []models.Source) {
	passages, err := s.search.Search(ctx, question, s.topK)
	if err != nil {
		s.log.Error("report retrieval failed", zap.Error(err))
		return reportFailedAnswer, nil
	}
	if len(passages) == 0 {
		return reportNoMatchAnswer, nil
	}

	answer, err := s.gen.Generate(ctx, buildReportPrompt(passages, question), 0.3)
	if err != nil || strings.TrimSpace(answer) == "" {
		s.log.Error("report answer generation failed", zap.Error(err))
		return reportFailedAnswer, nil
	}

	sources := make([]models.Source, 0, len(passages))
	for _, p := range passages {
		sources = append(sources, models.Source{
			Title:          p.Title,
			SecuritiesFirm: p.Firm,
			Date:           p.Date,
			Content:        excerpt(p.Content, passageExcerptRunes),
		})
	}

	return answer, sources
}

func buildReportPrompt(passages []*models.Passage, question string) string {
	var b strings.Builder
	for i, p := range passages {
		fmt.Fprintf(&b, "[문서 %d] %s (%s, %s)\n%s\n\n", i+1, p.Title, p.Firm, p.Date, p.Content)
	}
	return fmt.Sprintf(reportPromptTemplate, strings.TrimSpace(b.String()), question)
}

// excerpt truncates on rune boundaries so Korean text never splits
// mid-character.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
