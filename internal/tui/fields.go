package tui

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/domain"
)

// field is one editable row in the profile pane. Left/right adjust the
// value in place; enumerations cycle, with the empty string meaning "not
// declared".
type field struct {
	label string
	value func(m *Model) string
	left  func(m *Model)
	right func(m *Model)
}

const (
	fieldAge = iota
	fieldOccupation
	fieldEmployment
	fieldHealthStatus
	fieldExercise
	fieldBMI
	fieldSmoker
	fieldChronicIllness
	fieldDangerousHobbies
	fieldCreditScore
	fieldBankruptcy
	fieldRiskZone
	fieldPolicyType
	fieldFrequency
	fieldCoverage
	fieldCount
)

var occupations = []string{
	"", "technology", "finance", "education", "office", "healthcare",
	"retail", "agriculture", "construction", "transport", "aviation",
	"offshore", "mining",
}

var healthStatuses = []domain.HealthStatus{
	domain.HealthUnknown, domain.HealthExcellent, domain.HealthGood,
	domain.HealthFair, domain.HealthPoor,
}

var exerciseFrequencies = []domain.ExerciseFrequency{
	domain.ExerciseUnknown, domain.ExerciseNone, domain.ExerciseOccasional,
	domain.ExerciseRegular, domain.ExerciseDaily,
}

var employmentStatuses = []domain.EmploymentStatus{
	domain.EmploymentUnknown, domain.EmploymentEmployed,
	domain.EmploymentSelfEmployed, domain.EmploymentUnemployed,
	domain.EmploymentRetired, domain.EmploymentStudent,
}

var riskZones = []domain.RiskZone{
	domain.ZoneUnknown, domain.ZoneLow, domain.ZoneMedium, domain.ZoneHigh,
}

func orUndeclared(s string) string {
	if s == "" {
		return "(not declared)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// cycle advances through options, wrapping at either end.
func cycle[T comparable](options []T, current T, step int) T {
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx]
}

var fields = [fieldCount]field{
	fieldAge: {
		label: "Age",
		value: func(m *Model) string {
			if m.profile.Age == 0 {
				return "(not declared)"
			}
			return strconv.Itoa(m.profile.Age)
		},
		left: func(m *Model) {
			switch {
			case m.profile.Age == 0:
			case m.profile.Age <= 18:
				m.profile.Age = 0
			default:
				m.profile.Age--
			}
		},
		right: func(m *Model) {
			if m.profile.Age == 0 {
				m.profile.Age = 18
			} else {
				m.profile.Age++
			}
		},
	},
	fieldOccupation: {
		label: "Occupation",
		value: func(m *Model) string { return orUndeclared(m.profile.Occupation) },
		left:  func(m *Model) { m.profile.Occupation = cycle(occupations, m.profile.Occupation, -1) },
		right: func(m *Model) { m.profile.Occupation = cycle(occupations, m.profile.Occupation, 1) },
	},
	fieldEmployment: {
		label: "Employment",
		value: func(m *Model) string { return orUndeclared(string(m.profile.EmploymentStatus)) },
		left: func(m *Model) {
			m.profile.EmploymentStatus = cycle(employmentStatuses, m.profile.EmploymentStatus, -1)
		},
		right: func(m *Model) {
			m.profile.EmploymentStatus = cycle(employmentStatuses, m.profile.EmploymentStatus, 1)
		},
	},
	fieldHealthStatus: {
		label: "Health status",
		value: func(m *Model) string { return orUndeclared(string(m.profile.HealthStatus)) },
		left:  func(m *Model) { m.profile.HealthStatus = cycle(healthStatuses, m.profile.HealthStatus, -1) },
		right: func(m *Model) { m.profile.HealthStatus = cycle(healthStatuses, m.profile.HealthStatus, 1) },
	},
	fieldExercise: {
		label: "Exercise",
		value: func(m *Model) string { return orUndeclared(string(m.profile.ExerciseFrequency)) },
		left: func(m *Model) {
			m.profile.ExerciseFrequency = cycle(exerciseFrequencies, m.profile.ExerciseFrequency, -1)
		},
		right: func(m *Model) {
			m.profile.ExerciseFrequency = cycle(exerciseFrequencies, m.profile.ExerciseFrequency, 1)
		},
	},
	fieldBMI: {
		label: "BMI",
		value: func(m *Model) string {
			if m.profile.BMI == nil {
				return "(not declared)"
			}
			return m.profile.BMI.StringFixed(1)
		},
		left: func(m *Model) {
			if m.profile.BMI == nil {
				return
			}
			next := m.profile.BMI.Sub(decimal.NewFromFloat(0.5))
			if next.LessThan(decimal.NewFromInt(15)) {
				m.profile.BMI = nil
				return
			}
			m.profile.BMI = &next
		},
		right: func(m *Model) {
			if m.profile.BMI == nil {
				v := decimal.NewFromInt(22)
				m.profile.BMI = &v
				return
			}
			next := m.profile.BMI.Add(decimal.NewFromFloat(0.5))
			m.profile.BMI = &next
		},
	},
	fieldSmoker: {
		label: "Smoker",
		value: func(m *Model) string { return yesNo(m.profile.Smoker) },
		left:  func(m *Model) { m.profile.Smoker = !m.profile.Smoker },
		right: func(m *Model) { m.profile.Smoker = !m.profile.Smoker },
	},
	fieldChronicIllness: {
		label: "Chronic illness",
		value: func(m *Model) string { return yesNo(m.profile.ChronicIllness) },
		left:  func(m *Model) { m.profile.ChronicIllness = !m.profile.ChronicIllness },
		right: func(m *Model) { m.profile.ChronicIllness = !m.profile.ChronicIllness },
	},
	fieldDangerousHobbies: {
		label: "Dangerous hobbies",
		value: func(m *Model) string { return yesNo(m.profile.DangerousHobbies) },
		left:  func(m *Model) { m.profile.DangerousHobbies = !m.profile.DangerousHobbies },
		right: func(m *Model) { m.profile.DangerousHobbies = !m.profile.DangerousHobbies },
	},
	fieldCreditScore: {
		label: "Credit score",
		value: func(m *Model) string {
			if m.profile.CreditScore == 0 {
				return "(not declared)"
			}
			return strconv.Itoa(m.profile.CreditScore)
		},
		left: func(m *Model) {
			switch {
			case m.profile.CreditScore == 0:
			case m.profile.CreditScore <= domain.CreditScoreMin:
				m.profile.CreditScore = 0
			default:
				m.profile.CreditScore -= 10
			}
		},
		right: func(m *Model) {
			switch {
			case m.profile.CreditScore == 0:
				m.profile.CreditScore = 650
			case m.profile.CreditScore+10 > domain.CreditScoreMax:
				m.profile.CreditScore = domain.CreditScoreMax
			default:
				m.profile.CreditScore += 10
			}
		},
	},
	fieldBankruptcy: {
		label: "Bankruptcy history",
		value: func(m *Model) string { return yesNo(m.profile.BankruptcyHistory) },
		left:  func(m *Model) { m.profile.BankruptcyHistory = !m.profile.BankruptcyHistory },
		right: func(m *Model) { m.profile.BankruptcyHistory = !m.profile.BankruptcyHistory },
	},
	fieldRiskZone: {
		label: "Risk zone",
		value: func(m *Model) string { return orUndeclared(string(m.profile.RiskZone)) },
		left:  func(m *Model) { m.profile.RiskZone = cycle(riskZones, m.profile.RiskZone, -1) },
		right: func(m *Model) { m.profile.RiskZone = cycle(riskZones, m.profile.RiskZone, 1) },
	},
	fieldPolicyType: {
		label: "Policy type",
		value: func(m *Model) string { return string(m.pricing.PolicyType) },
		left:  func(m *Model) { m.pricing.PolicyType = cycle(domain.PolicyTypes(), m.pricing.PolicyType, -1) },
		right: func(m *Model) { m.pricing.PolicyType = cycle(domain.PolicyTypes(), m.pricing.PolicyType, 1) },
	},
	fieldFrequency: {
		label: "Billing",
		value: func(m *Model) string { return string(m.pricing.Frequency) },
		left: func(m *Model) {
			m.pricing.Frequency = cycle(domain.PaymentFrequencies(), m.pricing.Frequency, -1)
		},
		right: func(m *Model) {
			m.pricing.Frequency = cycle(domain.PaymentFrequencies(), m.pricing.Frequency, 1)
		},
	},
	fieldCoverage: {
		label: "Coverage",
		value: func(m *Model) string { return "$" + m.pricing.CoverageAmount.StringFixed(0) },
		left: func(m *Model) {
			next := m.pricing.CoverageAmount.Sub(decimal.NewFromInt(10000))
			if next.LessThanOrEqual(decimal.Zero) {
				return
			}
			m.pricing.CoverageAmount = next
		},
		right: func(m *Model) {
			m.pricing.CoverageAmount = m.pricing.CoverageAmount.Add(decimal.NewFromInt(10000))
		},
	},
}
