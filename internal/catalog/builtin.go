package catalog

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/domain"
)

// FACTOR TABLE ASSUMPTIONS:
//
// 1. Age brackets partition integer ages 18..infinity: 18-25, 26-40,
//    41-55, 56-65, 66+. Ages 26-40 are the neutral baseline.
// 2. Boolean factors (smoker, chronic illness, dangerous hobbies,
//    bankruptcy history) apply only when true. The false case contributes
//    nothing: it must never sneak in as a sub-1.0 multiplier.
// 3. Occupation classes are an open field: unknown occupations fall back
//    to the category-neutral multiplier rather than erroring.
// 4. Credit brackets partition the bureau domain 300..850.

type intBracket struct {
	key        string
	min, max   int // inclusive; max < 0 means open-ended
	multiplier string
}

var ageBrackets = []intBracket{
	{"age_bracket_18_25", 18, 25, "1.2"},
	{"age_bracket_26_40", 26, 40, "1.0"},
	{"age_bracket_41_55", 41, 55, "1.1"},
	{"age_bracket_56_65", 56, 65, "1.3"},
	{"age_bracket_66_plus", 66, -1, "1.5"},
}

var creditBrackets = []intBracket{
	{"credit_poor_300_579", 300, 579, "1.25"},
	{"credit_fair_580_669", 580, 669, "1.1"},
	{"credit_good_670_739", 670, 739, "1.0"},
	{"credit_excellent_740_850", 740, 850, "0.9"},
}

type bmiBracket struct {
	key        string
	min, max   string // decimal bounds; min inclusive, max exclusive, empty max means open-ended
	multiplier string
}

var bmiBrackets = []bmiBracket{
	{"bmi_underweight", "0", "18.5", "1.2"},
	{"bmi_normal", "18.5", "25", "1.0"},
	{"bmi_overweight", "25", "30", "1.15"},
	{"bmi_obese", "30", "", "1.4"},
}

// occupationClasses maps declared occupations onto a rate class. Anything
// not listed is treated as neutral.
var occupationClasses = map[string]string{
	"technology":   "0.8",
	"education":    "0.9",
	"office":       "0.9",
	"finance":      "0.9",
	"healthcare":   "1.0",
	"retail":       "1.0",
	"agriculture":  "1.2",
	"construction": "1.25",
	"transport":    "1.3",
	"aviation":     "1.5",
	"offshore":     "1.6",
	"mining":       "1.6",
}

// Ordered so the assembled catalog is identical on every run; the applied
// factor list must be reproducible against the authoritative service.
var healthStatusMultipliers = []struct {
	status     domain.HealthStatus
	multiplier string
}{
	{domain.HealthExcellent, "0.9"},
	{domain.HealthGood, "1.0"},
	{domain.HealthFair, "1.2"},
	{domain.HealthPoor, "1.5"},
}

var exerciseMultipliers = []struct {
	freq       domain.ExerciseFrequency
	multiplier string
}{
	{domain.ExerciseNone, "1.1"},
	{domain.ExerciseOccasional, "1.0"},
	{domain.ExerciseRegular, "0.95"},
	{domain.ExerciseDaily, "0.95"},
}

var riskZoneMultipliers = []struct {
	zone       domain.RiskZone
	multiplier string
}{
	{domain.ZoneLow, "0.9"},
	{domain.ZoneMedium, "1.0"},
	{domain.ZoneHigh, "1.35"},
}

// Boolean factor multipliers.
const (
	smokerMultiplier           = "1.8"
	chronicIllnessMultiplier   = "1.5"
	dangerousHobbiesMultiplier = "1.4"
	bankruptcyMultiplier       = "1.3"
	unemployedMultiplier       = "1.15"
)

// builtinDefinitions assembles the default factor table.
func builtinDefinitions() []Definition {
	var defs []Definition

	// Personal: age brackets, occupation class, employment status.
	for _, b := range ageBrackets {
		b := b
		defs = append(defs, Definition{
			Category:   domain.CategoryPersonal,
			Key:        b.key,
			Multiplier: decimal.RequireFromString(b.multiplier),
			applies: func(p *domain.RiskProfile) (string, bool) {
				if p.Age == 0 {
					return "", false
				}
				if p.Age < b.min || (b.max >= 0 && p.Age > b.max) {
					return "", false
				}
				return strconv.Itoa(p.Age), true
			},
		})
	}
	occupations := make([]string, 0, len(occupationClasses))
	for occ := range occupationClasses {
		occupations = append(occupations, occ)
	}
	sort.Strings(occupations)
	for _, occ := range occupations {
		occ := occ
		defs = append(defs, Definition{
			Category:   domain.CategoryPersonal,
			Key:        "occupation_" + occ,
			Multiplier: decimal.RequireFromString(occupationClasses[occ]),
			applies: func(p *domain.RiskProfile) (string, bool) {
				if p.Occupation != occ {
					return "", false
				}
				return p.Occupation, true
			},
		})
	}
	defs = append(defs, boolFactor(domain.CategoryPersonal, "unemployed", unemployedMultiplier,
		func(p *domain.RiskProfile) bool { return p.EmploymentStatus == domain.EmploymentUnemployed }))

	// Health: smoker, chronic illness, BMI brackets, health status.
	defs = append(defs, boolFactor(domain.CategoryHealth, "smoker", smokerMultiplier,
		func(p *domain.RiskProfile) bool { return p.Smoker }))
	defs = append(defs, boolFactor(domain.CategoryHealth, "chronic_illness", chronicIllnessMultiplier,
		func(p *domain.RiskProfile) bool { return p.ChronicIllness }))
	for _, b := range bmiBrackets {
		b := b
		min := decimal.RequireFromString(b.min)
		var max *decimal.Decimal
		if b.max != "" {
			m := decimal.RequireFromString(b.max)
			max = &m
		}
		defs = append(defs, Definition{
			Category:   domain.CategoryHealth,
			Key:        b.key,
			Multiplier: decimal.RequireFromString(b.multiplier),
			applies: func(p *domain.RiskProfile) (string, bool) {
				if p.BMI == nil {
					return "", false
				}
				if p.BMI.LessThan(min) {
					return "", false
				}
				if max != nil && p.BMI.GreaterThanOrEqual(*max) {
					return "", false
				}
				return p.BMI.String(), true
			},
		})
	}
	for _, hs := range healthStatusMultipliers {
		status := hs.status
		defs = append(defs, Definition{
			Category:   domain.CategoryHealth,
			Key:        "health_status_" + string(status),
			Multiplier: decimal.RequireFromString(hs.multiplier),
			applies: func(p *domain.RiskProfile) (string, bool) {
				if p.HealthStatus != status {
					return "", false
				}
				return string(status), true
			},
		})
	}

	// Financial: credit brackets, bankruptcy history.
	for _, b := range creditBrackets {
		b := b
		defs = append(defs, Definition{
			Category:   domain.CategoryFinancial,
			Key:        b.key,
			Multiplier: decimal.RequireFromString(b.multiplier),
			applies: func(p *domain.RiskProfile) (string, bool) {
				if p.CreditScore == 0 {
					return "", false
				}
				if p.CreditScore < b.min || (b.max >= 0 && p.CreditScore > b.max) {
					return "", false
				}
				return strconv.Itoa(p.CreditScore), true
			},
		})
	}
	defs = append(defs, boolFactor(domain.CategoryFinancial, "bankruptcy_history", bankruptcyMultiplier,
		func(p *domain.RiskProfile) bool { return p.BankruptcyHistory }))

	// Lifestyle: dangerous hobbies, exercise frequency.
	defs = append(defs, boolFactor(domain.CategoryLifestyle, "dangerous_hobbies", dangerousHobbiesMultiplier,
		func(p *domain.RiskProfile) bool { return p.DangerousHobbies }))
	for _, ex := range exerciseMultipliers {
		freq := ex.freq
		defs = append(defs, Definition{
			Category:   domain.CategoryLifestyle,
			Key:        "exercise_" + string(freq),
			Multiplier: decimal.RequireFromString(ex.multiplier),
			applies: func(p *domain.RiskProfile) (string, bool) {
				if p.ExerciseFrequency != freq {
					return "", false
				}
				return string(freq), true
			},
		})
	}

	// Geographic: declared risk zone.
	for _, rz := range riskZoneMultipliers {
		zone := rz.zone
		defs = append(defs, Definition{
			Category:   domain.CategoryGeographic,
			Key:        "risk_zone_" + string(zone),
			Multiplier: decimal.RequireFromString(rz.multiplier),
			applies: func(p *domain.RiskProfile) (string, bool) {
				if p.RiskZone != zone {
					return "", false
				}
				return string(zone), true
			},
		})
	}

	return defs
}

// boolFactor builds a definition that applies only when the predicate is
// true; false contributes nothing rather than an implicit discount.
func boolFactor(cat domain.FactorCategory, key, multiplier string, pred func(*domain.RiskProfile) bool) Definition {
	return Definition{
		Category:   cat,
		Key:        key,
		Multiplier: decimal.RequireFromString(multiplier),
		applies: func(p *domain.RiskProfile) (string, bool) {
			if !pred(p) {
				return "", false
			}
			return "true", true
		},
	}
}

// WithMultiplier returns a copy of the catalog with one key's multiplier
// replaced. Used by the YAML override loader.
func (c *Catalog) WithMultiplier(key string, multiplier decimal.Decimal) (*Catalog, error) {
	if _, ok := c.byKey[key]; !ok {
		return nil, fmt.Errorf("unknown catalog key %q", key)
	}
	defs := c.Definitions()
	defs[c.byKey[key]].Multiplier = multiplier
	return New(defs)
}
