package compare

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CSVFormatter renders a comparison set as CSV, one row per policy type.
type CSVFormatter struct{}

// Format renders the comparison as CSV.
func (f *CSVFormatter) Format(set *Set) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	rows := [][]string{{
		"policy_type", "base_rate_percent", "base_premium",
		"risk_adjustment", "final_premium", "annual_total",
	}}
	for _, r := range set.Rows {
		rows = append(rows, []string{
			string(r.PolicyType),
			r.BaseRate.Mul(hundred).StringFixed(1),
			r.BasePremium.StringFixed(2),
			r.RiskAdjustment.StringFixed(2),
			r.FinalPremium.StringFixed(2),
			r.AnnualTotal.StringFixed(2),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return b.String(), nil
}
