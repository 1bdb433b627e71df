package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/catalog"
	"github.com/assurelab/riskquote/internal/domain"
)

// Compose combines the matched factors into a single composite multiplier
// plus the itemized contribution list shown to the customer.
//
// Composition is strictly multiplicative. Independent percentage effects
// stack cleanly under a product, and no combination of positive
// multipliers can push a premium negative, which an additive scheme could.
// Neutral (exactly 1.0) matches are identity in the product and are left
// out of the contribution list; an absent category is equivalent to its
// neutral default. An empty match set composes to exactly 1.0.
func Compose(matches []catalog.Match) (decimal.Decimal, []domain.FactorContribution) {
	composite := decimal.NewFromInt(1)
	contributions := make([]domain.FactorContribution, 0, len(matches))

	for _, m := range matches {
		if m.Definition.Multiplier.Equal(decimal.NewFromInt(1)) {
			continue
		}
		composite = composite.Mul(m.Definition.Multiplier)
		contributions = append(contributions, domain.FactorContribution{
			Category:     m.Definition.Category,
			Key:          m.Definition.Key,
			ProfileValue: m.Value,
			Multiplier:   m.Definition.Multiplier,
		})
	}

	return composite, contributions
}
