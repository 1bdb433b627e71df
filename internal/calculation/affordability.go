package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/domain"
)

// MaxAffordableCoverage inverts the premium formula: the largest coverage
// amount whose final premium fits inside budget for the given assessment.
// Premium is linear in coverage, so the inversion is exact:
//
//	coverage = (budget - fees - taxes) / (baseRate * multiplier)
//
// The result is floored to whole currency units so quoting it never
// exceeds the budget.
func MaxAffordableCoverage(budget decimal.Decimal, pricing domain.PolicyPricingInput, assessment *domain.CompositeRiskAssessment) (decimal.Decimal, error) {
	rate, err := BaseRate(pricing.PolicyType)
	if err != nil {
		return decimal.Zero, err
	}
	if assessment.CompositeMultiplier.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: composite multiplier must be positive", domain.ErrInvalidInput)
	}

	available := budget.Sub(pricing.Fees).Sub(pricing.Taxes)
	if available.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: budget %s does not cover fees and taxes",
			domain.ErrInvalidInput, budget.String())
	}

	coverage := available.Div(rate.Mul(assessment.CompositeMultiplier))
	return coverage.Floor(), nil
}
