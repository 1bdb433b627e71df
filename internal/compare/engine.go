package compare

import (
	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/calculation"
	"github.com/assurelab/riskquote/internal/domain"
)

// Engine runs cross-policy comparisons on top of the estimation engine.
type Engine struct {
	calc *calculation.Engine
}

// NewEngine creates a comparison engine.
func NewEngine(calc *calculation.Engine) *Engine {
	return &Engine{calc: calc}
}

// Compare assesses the profile once and prices it for each requested
// policy type. Fees and taxes from the pricing input apply to every row.
func (e *Engine) Compare(profile *domain.RiskProfile, pricing domain.PolicyPricingInput, policyTypes []domain.PolicyType) (*Set, error) {
	if len(policyTypes) == 0 {
		policyTypes = domain.PolicyTypes()
	}

	assessment, err := e.calc.Assess(profile)
	if err != nil {
		return nil, err
	}

	frequency := pricing.Frequency
	if frequency == "" {
		frequency = domain.FrequencyMonthly
	}

	set := &Set{
		Assessment:     assessment,
		CoverageAmount: pricing.CoverageAmount.Round(calculation.CurrencyPrecision),
		Frequency:      frequency,
		Rows:           make([]Row, 0, len(policyTypes)),
	}

	for _, pt := range policyTypes {
		rowPricing := pricing
		rowPricing.PolicyType = pt

		quote, err := calculation.Quote(rowPricing, assessment)
		if err != nil {
			return nil, err
		}
		rate, err := calculation.BaseRate(pt)
		if err != nil {
			return nil, err
		}

		annual := decimal.Zero
		if v, ok := quote.FrequencyVariants[domain.FrequencyAnnual]; ok {
			annual = v.Amount
		}

		set.Rows = append(set.Rows, Row{
			PolicyType:     pt,
			BaseRate:       rate,
			BasePremium:    quote.BasePremium,
			RiskAdjustment: quote.RiskAdjustment,
			FinalPremium:   quote.FinalPremium,
			AnnualTotal:    annual,
		})
	}

	return set, nil
}
