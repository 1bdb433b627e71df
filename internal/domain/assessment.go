package domain

import "github.com/shopspring/decimal"

// RiskBand is the discrete classification derived from the 0-100 score.
type RiskBand string

const (
	BandLow      RiskBand = "low"
	BandModerate RiskBand = "moderate"
	BandHigh     RiskBand = "high"
	BandVeryHigh RiskBand = "very-high"
)

// Band score thresholds. A score below BandThresholdModerate is low,
// below BandThresholdHigh moderate, below BandThresholdVeryHigh high,
// and very-high otherwise.
const (
	BandThresholdModerate = 30
	BandThresholdHigh     = 60
	BandThresholdVeryHigh = 80
)

// BandFromScore maps a bounded score onto its risk band.
func BandFromScore(score int) RiskBand {
	switch {
	case score < BandThresholdModerate:
		return BandLow
	case score < BandThresholdHigh:
		return BandModerate
	case score < BandThresholdVeryHigh:
		return BandHigh
	default:
		return BandVeryHigh
	}
}

// FactorContribution records one applied risk factor for transparency:
// which catalog entry matched, the profile value that triggered it, and
// the multiplier it contributed to the composite.
type FactorContribution struct {
	Category     FactorCategory  `json:"category" yaml:"category"`
	Key          string          `json:"key" yaml:"key"`
	ProfileValue string          `json:"profile_value" yaml:"profile_value"`
	Multiplier   decimal.Decimal `json:"multiplier" yaml:"multiplier"`
}

// CompositeRiskAssessment is the derived risk picture for one profile.
// It is recomputed from scratch whenever the profile changes; nothing
// mutates an existing assessment.
type CompositeRiskAssessment struct {
	AppliedFactors      []FactorContribution `json:"applied_factors" yaml:"applied_factors"`
	CompositeMultiplier decimal.Decimal      `json:"composite_multiplier" yaml:"composite_multiplier"`
	Score               int                  `json:"score" yaml:"score"`
	Band                RiskBand             `json:"risk_band" yaml:"risk_band"`
}
