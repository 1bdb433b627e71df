package compare

import (
	"fmt"
	"strings"
)

// TableFormatter renders a comparison set as a plain-text table.
type TableFormatter struct{}

// Format renders the comparison for the console.
func (f *TableFormatter) Format(set *Set) string {
	var b strings.Builder

	fmt.Fprintln(&b, "POLICY COMPARISON")
	fmt.Fprintln(&b, strings.Repeat("=", 72))
	fmt.Fprintf(&b, "Coverage: $%s   Billing: %s   Risk: %d/100 (%s)\n",
		set.CoverageAmount.StringFixed(2), set.Frequency,
		set.Assessment.Score, set.Assessment.Band)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "%-12s %-10s %-12s %-12s %-12s %-12s\n",
		"POLICY", "RATE", "BASE", "ADJUSTMENT", "PREMIUM", "ANNUAL")
	fmt.Fprintln(&b, strings.Repeat("-", 72))

	cheapest, _ := set.Cheapest()
	for _, r := range set.Rows {
		marker := " "
		if r.PolicyType == cheapest.PolicyType {
			marker = "*"
		}
		fmt.Fprintf(&b, "%-12s %-10s $%-11s $%-11s $%-11s $%-11s%s\n",
			r.PolicyType,
			r.BaseRate.Mul(hundred).StringFixed(1)+"%",
			r.BasePremium.StringFixed(2),
			r.RiskAdjustment.StringFixed(2),
			r.FinalPremium.StringFixed(2),
			r.AnnualTotal.StringFixed(2),
			marker)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "* lowest premium")
	return b.String()
}
