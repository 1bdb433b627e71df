// Package output renders assessments and quotes for the CLI: console,
// JSON, and CSV. Formatters only reformat the engine's canonical numbers;
// they never recompute them.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/domain"
)

// Report bundles the two engine outputs for rendering.
type Report struct {
	Assessment *domain.CompositeRiskAssessment `json:"assessment"`
	Quote      *domain.PremiumQuote            `json:"quote"`
}

// ReportGenerator handles report generation in various formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// Generate writes a report in the specified format.
func (rg *ReportGenerator) Generate(w io.Writer, report *Report, format string) error {
	switch format {
	case "console":
		return rg.GenerateConsoleReport(w, report)
	case "json":
		return rg.GenerateJSONReport(w, report)
	case "csv":
		return rg.GenerateCSVReport(w, report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport writes a human-readable breakdown of the
// assessment and quote.
func (rg *ReportGenerator) GenerateConsoleReport(w io.Writer, report *Report) error {
	a := report.Assessment
	q := report.Quote

	fmt.Fprintln(w, "================================================================")
	fmt.Fprintln(w, "RISK ASSESSMENT & PREMIUM QUOTE")
	fmt.Fprintln(w, "================================================================")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "RISK ASSESSMENT")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Composite Multiplier: %s\n", a.CompositeMultiplier.String())
	fmt.Fprintf(w, "Risk Score:           %d / 100\n", a.Score)
	fmt.Fprintf(w, "Risk Band:            %s\n", a.Band)
	fmt.Fprintln(w)

	if len(a.AppliedFactors) > 0 {
		fmt.Fprintln(w, "APPLIED FACTORS")
		fmt.Fprintln(w, strings.Repeat("-", 40))
		for _, f := range a.AppliedFactors {
			fmt.Fprintf(w, "  %-28s %-12s x%s\n", f.Key, f.ProfileValue, f.Multiplier.String())
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "PREMIUM QUOTE (%s, %s)\n", q.PolicyType, q.Frequency)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Coverage Amount:  %s\n", FormatCurrency(q.CoverageAmount))
	fmt.Fprintf(w, "Base Premium:     %s\n", FormatCurrency(q.BasePremium))
	fmt.Fprintf(w, "Risk Adjustment:  %s\n", FormatCurrency(q.RiskAdjustment))
	fmt.Fprintf(w, "Fees:             %s\n", FormatCurrency(q.Fees))
	fmt.Fprintf(w, "Taxes:            %s\n", FormatCurrency(q.Taxes))
	fmt.Fprintf(w, "Final Premium:    %s\n", FormatCurrency(q.FinalPremium))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PAYMENT OPTIONS")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, freq := range domain.PaymentFrequencies() {
		v, ok := q.FrequencyVariants[freq]
		if !ok {
			continue
		}
		if v.DiscountPercent.IsZero() {
			fmt.Fprintf(w, "  %-12s %s\n", freq, FormatCurrency(v.Amount))
		} else {
			fmt.Fprintf(w, "  %-12s %s (save %s)\n", freq, FormatCurrency(v.Amount), FormatPercentage(v.DiscountPercent))
		}
	}

	return nil
}

// GenerateJSONReport writes the report as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// GenerateCSVReport writes one row per quote field plus one per applied
// factor, for spreadsheet import.
func (rg *ReportGenerator) GenerateCSVReport(w io.Writer, report *Report) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	rows := [][]string{
		{"field", "value"},
		{"policy_type", string(report.Quote.PolicyType)},
		{"payment_frequency", string(report.Quote.Frequency)},
		{"coverage_amount", report.Quote.CoverageAmount.StringFixed(2)},
		{"base_premium", report.Quote.BasePremium.StringFixed(2)},
		{"risk_adjustment", report.Quote.RiskAdjustment.StringFixed(2)},
		{"fees", report.Quote.Fees.StringFixed(2)},
		{"taxes", report.Quote.Taxes.StringFixed(2)},
		{"final_premium", report.Quote.FinalPremium.StringFixed(2)},
		{"composite_multiplier", report.Assessment.CompositeMultiplier.String()},
		{"risk_score", fmt.Sprintf("%d", report.Assessment.Score)},
		{"risk_band", string(report.Assessment.Band)},
	}
	for _, f := range report.Assessment.AppliedFactors {
		rows = append(rows, []string{"factor_" + f.Key, f.Multiplier.String()})
	}
	for _, freq := range domain.PaymentFrequencies() {
		if v, ok := report.Quote.FrequencyVariants[freq]; ok {
			rows = append(rows, []string{"variant_" + string(freq), v.Amount.StringFixed(2)})
		}
	}

	return cw.WriteAll(rows)
}

// FormatCurrency formats a decimal as currency.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(0) + "%"
}
