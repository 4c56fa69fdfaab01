package services

import (
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// Detection thresholds. The OR-combination gives defense-in-depth: the model
// catches statistically scam-like phrasing, the keyword count catches
// copy-paste scripts heavy in financial-urgency vocabulary that may score low.
const (
	// MLScoreThreshold is the classifier probability above which a message
	// is treated as a scam.
	MLScoreThreshold = 0.3
	// KeywordHitThreshold is the distinct banking-keyword count at which a
	// message is treated as a scam regardless of classifier score.
	KeywordHitThreshold = 2
)

// ScamScorer estimates the probability in [0,1] that text is a scam attempt.
type ScamScorer interface {
	Score(text string) float64
}

// Detection is the outcome of evaluating one inbound message.
type Detection struct {
	MLScore      float64
	KeywordHits  int
	ScamDetected bool
}

// Detector combines the probabilistic classifier signal with the
// deterministic keyword heuristic into a single scam decision.
type Detector struct {
	scorer ScamScorer
	logger *logger.Logger
}

// NewDetector creates a detector backed by the given scorer.
func NewDetector(scorer ScamScorer, log *logger.Logger) *Detector {
	return &Detector{
		scorer: scorer,
		logger: log.WithComponent("detector"),
	}
}

// Decide applies the fixed detection policy to the two signals.
func Decide(mlScore float64, keywordHits int) bool {
	return mlScore > MLScoreThreshold || keywordHits >= KeywordHitThreshold
}

// Evaluate scores text with both signals and applies the decision policy.
func (d *Detector) Evaluate(text string) Detection {
	det := Detection{
		MLScore:     d.scorer.Score(text),
		KeywordHits: BankingKeywordHits(text),
	}
	det.ScamDetected = Decide(det.MLScore, det.KeywordHits)

	d.logger.Debug().
		Float64("ml_score", det.MLScore).
		Int("keyword_hits", det.KeywordHits).
		Bool("scam_detected", det.ScamDetected).
		Msg("message evaluated")

	return det
}
