package advisor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	indicatorUnavailableAnswer = "죄송합니다. 경제지표 데이터를 조회할 수 없습니다."
	indicatorPartialAnswer     = "경제지표 데이터는 조회했으나 분석 답변 생성 중 오류가 발생했습니다. 잠시 후 다시 시도해 주세요."
)

// IndicatorStrategy answers macro questions from the current indicator
// snapshot. The four-part answer format is enforced by the prompt only;
// the model's adherence is not validated here.
type IndicatorStrategy struct {
	gen        TextGenerator
	indicators IndicatorSource
	log        *zap.Logger
}

func NewIndicatorStrategy(gen TextGenerator, indicators IndicatorSource, log *zap.Logger) *IndicatorStrategy {
	return &IndicatorStrategy{gen: gen, indicators: indicators, log: log}
}

func (s *IndicatorStrategy) Answer(ctx context.Context, question string) string {
	data, err := s.indicators.LatestIndicators(ctx)
	if err != nil || len(data) == 0 {
		s.log.Error("indicator fetch failed", zap.Error(err))
		return indicatorUnavailableAnswer
	}

	answer, err := s.gen.Generate(ctx, fmt.Sprintf(indicatorPromptTemplate, formatIndicators(data), question), 0.4)
	if err != nil {
		s.log.Error("indicator answer generation failed", zap.Error(err))
		return indicatorPartialAnswer
	}

	return answer
}

// formatIndicators serializes the snapshot as a stable bulleted list.
// Keys are sorted so identical snapshots always produce identical prompts.
func formatIndicators(data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- %s: %s", k, data[k]))
	}
	return strings.Join(lines, "\n")
}
