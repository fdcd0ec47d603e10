package advisor

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// GeneralStrategy answers open-ended consulting questions directly from
// the model, with no data fetch. It also backstops equity questions that
// arrive without a resolvable ticker.
type GeneralStrategy struct {
	gen TextGenerator
	log *zap.Logger
}

func NewGeneralStrategy(gen TextGenerator, log *zap.Logger) *GeneralStrategy {
	return &GeneralStrategy{gen: gen, log: log}
}

func (s *GeneralStrategy) Answer(ctx context.Context, question string) (string, error) {
	answer, err := s.gen.Generate(ctx, fmt.Sprintf(generalPromptTemplate, question), 0.5)
	if err != nil {
		s.log.Error("general answer generation failed", zap.Error(err))
		return "", fmt.Errorf("general advice generation: %w", err)
	}
	return answer, nil
}
