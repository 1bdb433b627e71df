package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FactorCategory groups risk factors by the profile area they read.
type FactorCategory string

const (
	CategoryPersonal   FactorCategory = "personal"
	CategoryHealth     FactorCategory = "health"
	CategoryFinancial  FactorCategory = "financial"
	CategoryLifestyle  FactorCategory = "lifestyle"
	CategoryGeographic FactorCategory = "geographic"
)

// Categories lists every factor category in evaluation order.
func Categories() []FactorCategory {
	return []FactorCategory{
		CategoryPersonal,
		CategoryHealth,
		CategoryFinancial,
		CategoryLifestyle,
		CategoryGeographic,
	}
}

// HealthStatus is the customer's self-reported overall health.
type HealthStatus string

const (
	HealthUnknown   HealthStatus = ""
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

// ExerciseFrequency is the customer's self-reported exercise habit.
type ExerciseFrequency string

const (
	ExerciseUnknown    ExerciseFrequency = ""
	ExerciseNone       ExerciseFrequency = "none"
	ExerciseOccasional ExerciseFrequency = "occasional"
	ExerciseRegular    ExerciseFrequency = "regular"
	ExerciseDaily      ExerciseFrequency = "daily"
)

// EmploymentStatus is the customer's declared employment situation.
type EmploymentStatus string

const (
	EmploymentUnknown      EmploymentStatus = ""
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentSelfEmployed EmploymentStatus = "self_employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentRetired      EmploymentStatus = "retired"
	EmploymentStudent      EmploymentStatus = "student"
)

// RiskZone is the declared geographic risk classification.
type RiskZone string

const (
	ZoneUnknown RiskZone = ""
	ZoneLow     RiskZone = "low"
	ZoneMedium  RiskZone = "medium"
	ZoneHigh    RiskZone = "high"
)

// Credit score domain bounds per the major bureaus.
const (
	CreditScoreMin = 300
	CreditScoreMax = 850
)

// RiskProfile holds the customer's self-reported risk attributes. Every
// attribute is optional: a zero value means "not declared" and the factor
// catalog falls back to the neutral multiplier for that category.
type RiskProfile struct {
	// Demographic
	Age              int              `yaml:"age,omitempty" json:"age,omitempty"`
	Occupation       string           `yaml:"occupation,omitempty" json:"occupation,omitempty"`
	EmploymentStatus EmploymentStatus `yaml:"employment_status,omitempty" json:"employment_status,omitempty"`
	AnnualIncome     decimal.Decimal  `yaml:"annual_income,omitempty" json:"annual_income,omitempty"`

	// Health
	Smoker         bool             `yaml:"smoker" json:"smoker"`
	ChronicIllness bool             `yaml:"chronic_illness" json:"chronic_illness"`
	BMI            *decimal.Decimal `yaml:"bmi,omitempty" json:"bmi,omitempty"`
	HealthStatus   HealthStatus     `yaml:"health_status,omitempty" json:"health_status,omitempty"`

	// Lifestyle
	DangerousHobbies  bool              `yaml:"dangerous_hobbies" json:"dangerous_hobbies"`
	ExerciseFrequency ExerciseFrequency `yaml:"exercise_frequency,omitempty" json:"exercise_frequency,omitempty"`

	// Financial
	CreditScore       int             `yaml:"credit_score,omitempty" json:"credit_score,omitempty"`
	Debt              decimal.Decimal `yaml:"debt,omitempty" json:"debt,omitempty"`
	Savings           decimal.Decimal `yaml:"savings,omitempty" json:"savings,omitempty"`
	BankruptcyHistory bool            `yaml:"bankruptcy_history" json:"bankruptcy_history"`

	// Geographic
	Country  string   `yaml:"country,omitempty" json:"country,omitempty"`
	City     string   `yaml:"city,omitempty" json:"city,omitempty"`
	RiskZone RiskZone `yaml:"risk_zone,omitempty" json:"risk_zone,omitempty"`
}

// Validate rejects out-of-domain attribute values. Missing attributes are
// legal (the estimate falls back to category-neutral factors), but a value
// that is present and outside its domain is an input error, never silently
// defaulted.
func (p *RiskProfile) Validate() error {
	if p.Age < 0 {
		return fmt.Errorf("%w: age cannot be negative, got %d", ErrInvalidInput, p.Age)
	}
	if p.Age > 0 && p.Age < 18 {
		return fmt.Errorf("%w: age must be at least 18, got %d", ErrInvalidInput, p.Age)
	}
	if p.CreditScore != 0 && (p.CreditScore < CreditScoreMin || p.CreditScore > CreditScoreMax) {
		return fmt.Errorf("%w: credit score must be between %d and %d, got %d",
			ErrInvalidInput, CreditScoreMin, CreditScoreMax, p.CreditScore)
	}
	if p.BMI != nil && (p.BMI.LessThanOrEqual(decimal.Zero) || p.BMI.GreaterThan(decimal.NewFromInt(100))) {
		return fmt.Errorf("%w: BMI must be between 0 and 100, got %s", ErrInvalidInput, p.BMI.String())
	}
	if p.AnnualIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: annual income cannot be negative", ErrInvalidInput)
	}
	if p.Debt.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: debt cannot be negative", ErrInvalidInput)
	}
	if p.Savings.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: savings cannot be negative", ErrInvalidInput)
	}
	if err := validateEnum("health_status", string(p.HealthStatus), string(HealthExcellent), string(HealthGood), string(HealthFair), string(HealthPoor)); err != nil {
		return err
	}
	if err := validateEnum("exercise_frequency", string(p.ExerciseFrequency), string(ExerciseNone), string(ExerciseOccasional), string(ExerciseRegular), string(ExerciseDaily)); err != nil {
		return err
	}
	if err := validateEnum("employment_status", string(p.EmploymentStatus), string(EmploymentEmployed), string(EmploymentSelfEmployed), string(EmploymentUnemployed), string(EmploymentRetired), string(EmploymentStudent)); err != nil {
		return err
	}
	if err := validateEnum("risk_zone", string(p.RiskZone), string(ZoneLow), string(ZoneMedium), string(ZoneHigh)); err != nil {
		return err
	}
	return nil
}

// validateEnum accepts the empty string (attribute not declared) or one of
// the allowed values.
func validateEnum(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown %s %q", ErrInvalidInput, field, value)
}
