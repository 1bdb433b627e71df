package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PolicyType identifies the product line being priced.
type PolicyType string

const (
	PolicyLife       PolicyType = "life"
	PolicyHealth     PolicyType = "health"
	PolicyAuto       PolicyType = "auto"
	PolicyProperty   PolicyType = "property"
	PolicyDisability PolicyType = "disability"
)

// PolicyTypes lists every supported policy type.
func PolicyTypes() []PolicyType {
	return []PolicyType{PolicyLife, PolicyHealth, PolicyAuto, PolicyProperty, PolicyDisability}
}

// ParsePolicyType converts a string into a PolicyType.
func ParsePolicyType(s string) (PolicyType, error) {
	for _, pt := range PolicyTypes() {
		if string(pt) == s {
			return pt, nil
		}
	}
	return "", fmt.Errorf("%w: unknown policy type %q", ErrInvalidInput, s)
}

// PaymentFrequency is the billing cadence for a quoted premium.
type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyQuarterly  PaymentFrequency = "quarterly"
	FrequencySemiAnnual PaymentFrequency = "semi_annual"
	FrequencyAnnual     PaymentFrequency = "annual"
)

// PaymentFrequencies lists every supported billing cadence, shortest first.
func PaymentFrequencies() []PaymentFrequency {
	return []PaymentFrequency{FrequencyMonthly, FrequencyQuarterly, FrequencySemiAnnual, FrequencyAnnual}
}

// ParsePaymentFrequency converts a string into a PaymentFrequency.
func ParsePaymentFrequency(s string) (PaymentFrequency, error) {
	for _, f := range PaymentFrequencies() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown payment frequency %q", ErrInvalidInput, s)
}

// PolicyPricingInput carries the policy parameters a quote is derived from.
type PolicyPricingInput struct {
	PolicyType     PolicyType       `yaml:"policy_type" json:"policy_type"`
	CoverageAmount decimal.Decimal  `yaml:"coverage_amount" json:"coverage_amount"`
	Frequency      PaymentFrequency `yaml:"payment_frequency,omitempty" json:"payment_frequency,omitempty"`
	Fees           decimal.Decimal  `yaml:"fees,omitempty" json:"fees,omitempty"`
	Taxes          decimal.Decimal  `yaml:"taxes,omitempty" json:"taxes,omitempty"`
}

// Validate rejects pricing inputs the calculator cannot quote.
func (p *PolicyPricingInput) Validate() error {
	if _, err := ParsePolicyType(string(p.PolicyType)); err != nil {
		return err
	}
	if p.CoverageAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: coverage amount must be positive, got %s",
			ErrInvalidInput, p.CoverageAmount.String())
	}
	if p.Frequency != "" {
		if _, err := ParsePaymentFrequency(string(p.Frequency)); err != nil {
			return err
		}
	}
	if p.Fees.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: fees cannot be negative", ErrInvalidInput)
	}
	if p.Taxes.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: taxes cannot be negative", ErrInvalidInput)
	}
	return nil
}

// FrequencyVariant is the same premium expressed at a different billing
// cadence. Longer intervals carry a prepayment discount applied to the
// displayed amount, not advertised separately.
type FrequencyVariant struct {
	Amount          decimal.Decimal `json:"amount" yaml:"amount"`
	DiscountPercent decimal.Decimal `json:"discount_percent" yaml:"discount_percent"`
}

// PremiumQuote is the priced output for one policy and one risk assessment.
// It has no identity of its own: any input change means a full recompute.
type PremiumQuote struct {
	PolicyType     PolicyType       `json:"policy_type" yaml:"policy_type"`
	CoverageAmount decimal.Decimal  `json:"coverage_amount" yaml:"coverage_amount"`
	Frequency      PaymentFrequency `json:"payment_frequency" yaml:"payment_frequency"`

	BasePremium    decimal.Decimal `json:"base_premium" yaml:"base_premium"`
	RiskAdjustment decimal.Decimal `json:"risk_adjustment" yaml:"risk_adjustment"`
	Fees           decimal.Decimal `json:"fees" yaml:"fees"`
	Taxes          decimal.Decimal `json:"taxes" yaml:"taxes"`
	FinalPremium   decimal.Decimal `json:"final_premium" yaml:"final_premium"`

	FrequencyVariants map[PaymentFrequency]FrequencyVariant `json:"frequency_variants" yaml:"frequency_variants"`
}
