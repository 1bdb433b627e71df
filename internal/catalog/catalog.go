// Package catalog holds the risk factor table: data-driven definitions
// grouped by category, each with a multiplier and an applicability
// predicate over the customer's risk profile.
package catalog

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/domain"
)

// Definition is one immutable catalog entry. Multiplier 1.0 is neutral,
// above 1.0 raises the premium, below lowers it.
type Definition struct {
	Category   domain.FactorCategory
	Key        string
	Multiplier decimal.Decimal

	// applies evaluates the definition against a profile. It returns the
	// profile value that matched (for the contribution record) and whether
	// the definition applies at all.
	applies func(p *domain.RiskProfile) (string, bool)
}

// Match pairs a definition with the profile value that triggered it.
type Match struct {
	Definition Definition
	Value      string
}

// Catalog is the full factor table. It is immutable after construction and
// safe for concurrent readers.
type Catalog struct {
	defs  []Definition
	byKey map[string]int
}

// New builds a catalog from definitions and checks its integrity: every
// multiplier strictly positive, no duplicate keys, and every bracketed
// domain partitioned without gaps or overlaps. Integrity failures are
// programmer errors and surface at construction, never during a quote.
func New(defs []Definition) (*Catalog, error) {
	byKey := make(map[string]int, len(defs))
	for i, d := range defs {
		if d.Key == "" {
			return nil, fmt.Errorf("catalog definition %d has no key", i)
		}
		if _, dup := byKey[d.Key]; dup {
			return nil, fmt.Errorf("duplicate catalog key %q", d.Key)
		}
		if d.Multiplier.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("catalog key %q has non-positive multiplier %s", d.Key, d.Multiplier)
		}
		if d.applies == nil {
			return nil, fmt.Errorf("catalog key %q has no applicability predicate", d.Key)
		}
		byKey[d.Key] = i
	}
	c := &Catalog{defs: defs, byKey: byKey}
	if err := c.checkBracketCoverage(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return New(builtinDefinitions())
}

// MustDefault returns the built-in catalog and panics if its data is
// inconsistent. The built-in table is covered by tests, so a panic here
// means the binary itself is broken.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("built-in factor catalog is invalid: %v", err))
	}
	return c
}

// Definitions returns a copy of every definition, in evaluation order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Lookup returns the definition for a key.
func (c *Catalog) Lookup(key string) (Definition, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// Applicable evaluates every definition against the profile and returns
// the matches in catalog order. A category with no matching definition
// simply contributes nothing here; the composer treats absence as the
// neutral 1.0 multiplier, so partial profiles always produce an estimate.
func (c *Catalog) Applicable(p *domain.RiskProfile) []Match {
	var matches []Match
	for _, d := range c.defs {
		if value, ok := d.applies(p); ok {
			matches = append(matches, Match{Definition: d, Value: value})
		}
	}
	return matches
}

// checkBracketCoverage verifies that the bracketed domains (age, BMI,
// credit score) map every in-domain value to exactly one definition.
func (c *Catalog) checkBracketCoverage() error {
	probe := func(domainName string, profiles []*domain.RiskProfile, category domain.FactorCategory, prefix string, labels []string) error {
		for i, p := range profiles {
			n := 0
			for _, d := range c.defs {
				if d.Category != category || !hasPrefix(d.Key, prefix) {
					continue
				}
				if _, ok := d.applies(p); ok {
					n++
				}
			}
			if n != 1 {
				return fmt.Errorf("%s domain value %s matches %d definitions, want exactly 1", domainName, labels[i], n)
			}
		}
		return nil
	}

	// Age: every integer age 18..120 hits exactly one age bracket.
	var ageProfiles []*domain.RiskProfile
	var ageLabels []string
	for age := 18; age <= 120; age++ {
		ageProfiles = append(ageProfiles, &domain.RiskProfile{Age: age})
		ageLabels = append(ageLabels, strconv.Itoa(age))
	}
	if err := probe("age", ageProfiles, domain.CategoryPersonal, "age_bracket_", ageLabels); err != nil {
		return err
	}

	// Credit score: every score 300..850 hits exactly one credit bracket.
	var creditProfiles []*domain.RiskProfile
	var creditLabels []string
	for score := domain.CreditScoreMin; score <= domain.CreditScoreMax; score++ {
		creditProfiles = append(creditProfiles, &domain.RiskProfile{CreditScore: score})
		creditLabels = append(creditLabels, strconv.Itoa(score))
	}
	if err := probe("credit score", creditProfiles, domain.CategoryFinancial, "credit_", creditLabels); err != nil {
		return err
	}

	// BMI: sampled at tenths over 10.0..60.0.
	var bmiProfiles []*domain.RiskProfile
	var bmiLabels []string
	for tenths := 100; tenths <= 600; tenths++ {
		bmi := decimal.New(int64(tenths), -1)
		bmiProfiles = append(bmiProfiles, &domain.RiskProfile{BMI: &bmi})
		bmiLabels = append(bmiLabels, bmi.String())
	}
	return probe("bmi", bmiProfiles, domain.CategoryHealth, "bmi_", bmiLabels)
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
