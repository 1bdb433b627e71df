// Package compare prices one risk profile across several policy types so
// a customer can see products side by side. The risk assessment is shared
// by every row; only the pricing differs.
package compare

import (
	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/domain"
)

// Row is the quote for one policy type.
type Row struct {
	PolicyType     domain.PolicyType `json:"policy_type"`
	BaseRate       decimal.Decimal   `json:"base_rate"`
	BasePremium    decimal.Decimal   `json:"base_premium"`
	RiskAdjustment decimal.Decimal   `json:"risk_adjustment"`
	FinalPremium   decimal.Decimal   `json:"final_premium"`
	AnnualTotal    decimal.Decimal   `json:"annual_total"`
}

// Set is a full comparison: one assessment, one row per policy type.
type Set struct {
	Assessment     *domain.CompositeRiskAssessment `json:"assessment"`
	CoverageAmount decimal.Decimal                 `json:"coverage_amount"`
	Frequency      domain.PaymentFrequency         `json:"payment_frequency"`
	Rows           []Row                           `json:"rows"`
}

// Cheapest returns the row with the lowest final premium. The second
// return is false for an empty set.
func (s *Set) Cheapest() (Row, bool) {
	if len(s.Rows) == 0 {
		return Row{}, false
	}
	best := s.Rows[0]
	for _, r := range s.Rows[1:] {
		if r.FinalPremium.LessThan(best.FinalPremium) {
			best = r
		}
	}
	return best, true
}
