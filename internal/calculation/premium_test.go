package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assurelab/riskquote/internal/domain"
)

func neutralAssessment() *domain.CompositeRiskAssessment {
	return &domain.CompositeRiskAssessment{
		CompositeMultiplier: decimal.NewFromInt(1),
		Score:               50,
		Band:                domain.BandModerate,
	}
}

func TestQuoteBaseRates(t *testing.T) {
	cases := []struct {
		policyType domain.PolicyType
		coverage   string
		base       string
	}{
		{domain.PolicyLife, "100000", "1500"},
		{domain.PolicyHealth, "100000", "2000"},
		{domain.PolicyProperty, "100000", "1800"},
		{domain.PolicyAuto, "20000", "500"},
		{domain.PolicyDisability, "100000", "1200"},
	}
	for _, tc := range cases {
		quote, err := Quote(domain.PolicyPricingInput{
			PolicyType:     tc.policyType,
			CoverageAmount: decimal.RequireFromString(tc.coverage),
		}, neutralAssessment())
		require.NoError(t, err, "policy %s", tc.policyType)

		assert.True(t, quote.BasePremium.Equal(decimal.RequireFromString(tc.base)),
			"policy %s: base premium %s, want %s", tc.policyType, quote.BasePremium, tc.base)
		assert.True(t, quote.FinalPremium.Equal(quote.BasePremium),
			"neutral multiplier leaves the base premium unchanged")
	}
}

func TestQuoteAppliesCompositeMultiplier(t *testing.T) {
	assessment := &domain.CompositeRiskAssessment{
		CompositeMultiplier: decimal.RequireFromString("1.44"),
	}
	quote, err := Quote(domain.PolicyPricingInput{
		PolicyType:     domain.PolicyLife,
		CoverageAmount: decimal.NewFromInt(100000),
	}, assessment)
	require.NoError(t, err)

	assert.True(t, quote.BasePremium.Equal(decimal.NewFromInt(1500)))
	assert.True(t, quote.FinalPremium.Equal(decimal.NewFromInt(2160)),
		"1500 * 1.44 = 2160, got %s", quote.FinalPremium)
	assert.True(t, quote.RiskAdjustment.Equal(decimal.NewFromInt(660)),
		"risk adjustment is base * (multiplier - 1)")
}

func TestQuoteRiskAdjustmentCanBeNegative(t *testing.T) {
	assessment := &domain.CompositeRiskAssessment{
		CompositeMultiplier: decimal.RequireFromString("0.8"),
	}
	quote, err := Quote(domain.PolicyPricingInput{
		PolicyType:     domain.PolicyLife,
		CoverageAmount: decimal.NewFromInt(100000),
	}, assessment)
	require.NoError(t, err)

	assert.True(t, quote.FinalPremium.Equal(decimal.NewFromInt(1200)),
		"1500 * 0.8 = 1200, got %s", quote.FinalPremium)
	assert.True(t, quote.RiskAdjustment.Equal(decimal.NewFromInt(-300)))
}

func TestQuoteAddsFeesAndTaxes(t *testing.T) {
	quote, err := Quote(domain.PolicyPricingInput{
		PolicyType:     domain.PolicyLife,
		CoverageAmount: decimal.NewFromInt(100000),
		Fees:           decimal.RequireFromString("25.50"),
		Taxes:          decimal.RequireFromString("90.75"),
	}, neutralAssessment())
	require.NoError(t, err)

	assert.True(t, quote.FinalPremium.Equal(decimal.RequireFromString("1616.25")),
		"final = base + fees + taxes, got %s", quote.FinalPremium)
	assert.True(t, quote.Fees.Equal(decimal.RequireFromString("25.50")))
	assert.True(t, quote.Taxes.Equal(decimal.RequireFromString("90.75")))
}

func TestQuoteRejectsNonPositiveCoverage(t *testing.T) {
	_, err := Quote(domain.PolicyPricingInput{
		PolicyType:     domain.PolicyLife,
		CoverageAmount: decimal.Zero,
	}, neutralAssessment())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = Quote(domain.PolicyPricingInput{
		PolicyType:     domain.PolicyLife,
		CoverageAmount: decimal.NewFromInt(-5000),
	}, neutralAssessment())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestQuoteRejectsUnknownPolicyType(t *testing.T) {
	_, err := Quote(domain.PolicyPricingInput{
		PolicyType:     "pet",
		CoverageAmount: decimal.NewFromInt(10000),
	}, neutralAssessment())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "unknown policy type")
}

func TestFrequencyVariantsApplyDiscountToTotals(t *testing.T) {
	quote, err := Quote(domain.PolicyPricingInput{
		PolicyType:     domain.PolicyLife,
		CoverageAmount: decimal.NewFromInt(100000),
	}, neutralAssessment())
	require.NoError(t, err)
	require.Len(t, quote.FrequencyVariants, 4)

	final := quote.FinalPremium

	monthly := quote.FrequencyVariants[domain.FrequencyMonthly]
	assert.True(t, monthly.Amount.Equal(final))
	assert.True(t, monthly.DiscountPercent.IsZero())

	quarterly := quote.FrequencyVariants[domain.FrequencyQuarterly]
	assert.True(t, quarterly.Amount.Equal(final.Mul(decimal.NewFromInt(3)).Mul(decimal.RequireFromString("0.95")).Round(2)),
		"quarterly = final*3*0.95, got %s", quarterly.Amount)
	assert.True(t, quarterly.DiscountPercent.Equal(decimal.NewFromInt(5)))

	semi := quote.FrequencyVariants[domain.FrequencySemiAnnual]
	assert.True(t, semi.Amount.Equal(final.Mul(decimal.NewFromInt(6)).Mul(decimal.RequireFromString("0.92")).Round(2)),
		"semi-annual = final*6*0.92, got %s", semi.Amount)
	assert.True(t, semi.DiscountPercent.Equal(decimal.NewFromInt(8)))

	annual := quote.FrequencyVariants[domain.FrequencyAnnual]
	assert.True(t, annual.Amount.Equal(final.Mul(decimal.NewFromInt(12)).Mul(decimal.RequireFromString("0.88")).Round(2)),
		"annual = final*12*0.88, got %s", annual.Amount)
	assert.True(t, annual.DiscountPercent.Equal(decimal.NewFromInt(12)))
}

func TestQuoteUsesOnePrecision(t *testing.T) {
	assessment := &domain.CompositeRiskAssessment{
		CompositeMultiplier: decimal.RequireFromString("1.137"),
	}
	quote, err := Quote(domain.PolicyPricingInput{
		PolicyType:     domain.PolicyAuto,
		CoverageAmount: decimal.RequireFromString("23456.78"),
		Fees:           decimal.RequireFromString("12.345"),
		Taxes:          decimal.RequireFromString("0.999"),
	}, assessment)
	require.NoError(t, err)

	for name, v := range map[string]decimal.Decimal{
		"base_premium":    quote.BasePremium,
		"risk_adjustment": quote.RiskAdjustment,
		"fees":            quote.Fees,
		"taxes":           quote.Taxes,
		"final_premium":   quote.FinalPremium,
	} {
		assert.True(t, v.Equal(v.Round(CurrencyPrecision)),
			"%s must be rounded to %d decimals, got %s", name, CurrencyPrecision, v)
	}
	for freq, variant := range quote.FrequencyVariants {
		assert.True(t, variant.Amount.Equal(variant.Amount.Round(CurrencyPrecision)),
			"%s variant must be rounded to %d decimals", freq, CurrencyPrecision)
	}
}

func TestQuoteDefaultsToMonthlyFrequency(t *testing.T) {
	quote, err := Quote(domain.PolicyPricingInput{
		PolicyType:     domain.PolicyLife,
		CoverageAmount: decimal.NewFromInt(50000),
	}, neutralAssessment())
	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyMonthly, quote.Frequency)
}
