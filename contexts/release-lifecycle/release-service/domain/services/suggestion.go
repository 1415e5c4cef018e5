package services

import (
	"fmt"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
)

// Thresholds drive the machine suggestion. Scores are on a 0..100 scale.
type Thresholds struct {
	RiskHigh      float64
	RiskLow       float64
	SimilarityMax float64
	EngagementMin float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		RiskHigh:      70,
		RiskLow:       30,
		SimilarityMax: 50,
		EngagementMin: 40,
	}
}

func (t Thresholds) Validate() error {
	for _, value := range []float64{t.RiskHigh, t.RiskLow, t.SimilarityMax, t.EngagementMin} {
		if value < 0 || value > 100 {
			return fmt.Errorf("%w: thresholds must be within 0..100", domainerrors.ErrValidation)
		}
	}
	if t.RiskLow > t.RiskHigh {
		return fmt.Errorf("%w: risk low threshold exceeds high threshold", domainerrors.ErrValidation)
	}
	return nil
}

func Suggest(analysis entities.Analysis, thresholds Thresholds) (entities.SuggestedAction, string) {
	if !analysis.Scored {
		return entities.SuggestReview, "analysis unavailable; manual review required"
	}
	if analysis.RiskScore >= thresholds.RiskHigh {
		return entities.SuggestReject, fmt.Sprintf("risk score %.0f at or above %.0f", analysis.RiskScore, thresholds.RiskHigh)
	}
	if analysis.RiskScore < thresholds.RiskLow &&
		analysis.SimilarityScore < thresholds.SimilarityMax &&
		analysis.EngagementPrediction >= thresholds.EngagementMin {
		return entities.SuggestApprove, fmt.Sprintf("low risk %.0f, similarity %.0f, engagement %.0f",
			analysis.RiskScore, analysis.SimilarityScore, analysis.EngagementPrediction)
	}
	return entities.SuggestReview, fmt.Sprintf("risk %.0f, similarity %.0f, engagement %.0f need a moderator",
		analysis.RiskScore, analysis.SimilarityScore, analysis.EngagementPrediction)
}
