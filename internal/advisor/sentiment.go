package advisor

// Sentiment labels derived from the daily change percentage.
const (
	SentimentPositive = "긍정"
	SentimentNeutral  = "중립"
	SentimentNegative = "부정"
)

const sentimentThreshold = 3.0

// SentimentLabel classifies a change percentage. The thresholds are
// inclusive: exactly ±3.0% leaves the neutral band.
func SentimentLabel(changePct float64) string {
	switch {
	case changePct >= sentimentThreshold:
		return SentimentPositive
	case changePct <= -sentimentThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
