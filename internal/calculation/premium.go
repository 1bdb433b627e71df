package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/domain"
)

// PREMIUM ASSUMPTIONS:
//
// 1. Base rates are fixed per policy type as a fraction of coverage:
//    life 1.5%, health 2.0%, property 1.8%, auto 2.5%, disability 1.2%.
//    The resulting base premium is the periodic amount at the requested
//    payment frequency.
// 2. Longer billing intervals earn a prepayment discount applied to the
//    displayed total: quarterly 5%, semi-annual 8%, annual 12%. The
//    discount is part of the quoted amount, never a decorative badge next
//    to an undiscounted linear multiple.
// 3. Every currency field in a quote is rounded to 2 decimals. One quote
//    never mixes precisions; presentation layers reformat, they do not
//    recompute.

// CurrencyPrecision is the display precision every quote field rounds to.
const CurrencyPrecision = 2

// baseRates holds the annualized per-policy-type rate as a fraction of
// coverage.
var baseRates = map[domain.PolicyType]decimal.Decimal{
	domain.PolicyLife:       decimal.RequireFromString("0.015"),
	domain.PolicyHealth:     decimal.RequireFromString("0.020"),
	domain.PolicyProperty:   decimal.RequireFromString("0.018"),
	domain.PolicyAuto:       decimal.RequireFromString("0.025"),
	domain.PolicyDisability: decimal.RequireFromString("0.012"),
}

// frequency discount schedule: periods per variant and the discount taken
// off the linear total.
var frequencySchedule = []struct {
	frequency domain.PaymentFrequency
	periods   int64
	discount  decimal.Decimal
}{
	{domain.FrequencyMonthly, 1, decimal.Zero},
	{domain.FrequencyQuarterly, 3, decimal.RequireFromString("0.05")},
	{domain.FrequencySemiAnnual, 6, decimal.RequireFromString("0.08")},
	{domain.FrequencyAnnual, 12, decimal.RequireFromString("0.12")},
}

// BaseRate returns the fixed base rate for a policy type.
func BaseRate(policyType domain.PolicyType) (decimal.Decimal, error) {
	rate, ok := baseRates[policyType]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown policy type %q", domain.ErrInvalidInput, policyType)
	}
	return rate, nil
}

// Quote derives a premium quote from validated pricing input and a
// composite risk assessment.
//
//	basePremium  = coverage * baseRate(policyType)
//	finalPremium = basePremium * compositeMultiplier + fees + taxes
//
// riskAdjustment is reported as basePremium * (multiplier - 1) and may be
// negative for below-average risk.
func Quote(pricing domain.PolicyPricingInput, assessment *domain.CompositeRiskAssessment) (*domain.PremiumQuote, error) {
	if err := pricing.Validate(); err != nil {
		return nil, err
	}
	rate, err := BaseRate(pricing.PolicyType)
	if err != nil {
		return nil, err
	}

	frequency := pricing.Frequency
	if frequency == "" {
		frequency = domain.FrequencyMonthly
	}

	base := pricing.CoverageAmount.Mul(rate)
	adjusted := base.Mul(assessment.CompositeMultiplier)
	riskAdjustment := adjusted.Sub(base)
	final := adjusted.Add(pricing.Fees).Add(pricing.Taxes)

	quote := &domain.PremiumQuote{
		PolicyType:        pricing.PolicyType,
		CoverageAmount:    pricing.CoverageAmount.Round(CurrencyPrecision),
		Frequency:         frequency,
		BasePremium:       base.Round(CurrencyPrecision),
		RiskAdjustment:    riskAdjustment.Round(CurrencyPrecision),
		Fees:              pricing.Fees.Round(CurrencyPrecision),
		Taxes:             pricing.Taxes.Round(CurrencyPrecision),
		FinalPremium:      final.Round(CurrencyPrecision),
		FrequencyVariants: frequencyVariants(final),
	}
	return quote, nil
}

// frequencyVariants expresses the quoted periodic premium at every billing
// cadence, with the prepayment discount applied to the displayed total.
func frequencyVariants(periodic decimal.Decimal) map[domain.PaymentFrequency]domain.FrequencyVariant {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)

	variants := make(map[domain.PaymentFrequency]domain.FrequencyVariant, len(frequencySchedule))
	for _, fs := range frequencySchedule {
		total := periodic.Mul(decimal.NewFromInt(fs.periods)).Mul(one.Sub(fs.discount))
		variants[fs.frequency] = domain.FrequencyVariant{
			Amount:          total.Round(CurrencyPrecision),
			DiscountPercent: fs.discount.Mul(hundred),
		}
	}
	return variants
}
