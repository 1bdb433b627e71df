package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/domain"
)

// FormatMoney renders a currency amount for display.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// View renders the estimator: profile editor on the left, live
// assessment and quote on the right, key hints at the bottom.
func (m Model) View() string {
	left := m.renderProfilePane()
	right := m.renderQuotePane()

	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Risk & Premium Estimator"))
	b.WriteString("\n\n")
	b.WriteString(panes)
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(ErrorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(StatusBarStyle.Render(m.statusLine()))

	return AppStyle.Render(b.String())
}

func (m Model) statusLine() string {
	if m.editingAmount {
		return "type amount • enter apply • esc cancel"
	}
	return "↑/↓ field • ←/→ adjust • enter edit amount • r check service • q quit"
}

func (m Model) renderProfilePane() string {
	var b strings.Builder
	for i := 0; i < fieldCount; i++ {
		label := FieldLabelStyle.Render(fmt.Sprintf("%-18s", fields[i].label))
		value := fields[i].value(&m)
		if i == fieldCoverage && m.editingAmount {
			value = m.amountInput.View()
		}
		line := label + " " + FieldValueStyle.Render(value)
		if i == m.cursor {
			line = SelectedFieldStyle.Render("› ") + label + " " + SelectedFieldStyle.Render(value)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return PaneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderQuotePane() string {
	var b strings.Builder

	if m.pending() {
		b.WriteString(m.spin.View())
		b.WriteString(StaleStyle.Render(" recomputing..."))
		b.WriteString("\n\n")
	}

	if m.assessment == nil || m.quote == nil {
		b.WriteString(StaleStyle.Render("no estimate yet"))
		return PaneStyle.Render(b.String())
	}

	style := MetricValueStyle
	if m.pending() {
		style = StaleStyle
	}

	writeMetric := func(label, value string) {
		b.WriteString(MetricLabelStyle.Render(fmt.Sprintf("%-16s", label)))
		b.WriteString(style.Render(value))
		b.WriteString("\n")
	}

	band := string(m.assessment.Band)
	b.WriteString(MetricLabelStyle.Render(fmt.Sprintf("%-16s", "Risk band")))
	if m.pending() {
		b.WriteString(StaleStyle.Render(band))
	} else {
		b.WriteString(BandStyle(band).Render(band))
	}
	b.WriteString("\n")

	writeMetric("Risk score", fmt.Sprintf("%d / 100", m.assessment.Score))
	writeMetric("Multiplier", m.assessment.CompositeMultiplier.StringFixed(4))
	b.WriteString("\n")
	writeMetric("Base premium", FormatMoney(m.quote.BasePremium))
	writeMetric("Risk adjustment", FormatMoney(m.quote.RiskAdjustment))
	if m.quote.Fees.IsPositive() {
		writeMetric("Fees", FormatMoney(m.quote.Fees))
	}
	if m.quote.Taxes.IsPositive() {
		writeMetric("Taxes", FormatMoney(m.quote.Taxes))
	}
	writeMetric("Premium", FormatMoney(m.quote.FinalPremium)+" / "+string(m.quote.Frequency))

	if len(m.assessment.AppliedFactors) > 0 {
		b.WriteString("\n")
		b.WriteString(MetricLabelStyle.Render("Applied factors"))
		b.WriteString("\n")
		for _, f := range m.assessment.AppliedFactors {
			b.WriteString(style.Render(fmt.Sprintf("  %s ×%s", f.Key, f.Multiplier.String())))
			b.WriteString("\n")
		}
	}

	if variants := m.renderVariants(); variants != "" {
		b.WriteString("\n")
		b.WriteString(variants)
	}

	if m.remoteNote != "" {
		b.WriteString("\n")
		b.WriteString(StatusBarStyle.Render(m.remoteNote))
		b.WriteString("\n")
	}

	return PaneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderVariants() string {
	if len(m.quote.FrequencyVariants) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(MetricLabelStyle.Render("Payment options"))
	b.WriteString("\n")
	for _, freq := range domain.PaymentFrequencies() {
		v, ok := m.quote.FrequencyVariants[freq]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %-12s %s", freq, FormatMoney(v.Amount))
		if v.DiscountPercent.IsPositive() {
			line += StatusBarStyle.Render(fmt.Sprintf("  (save %s%%)", v.DiscountPercent.StringFixed(0)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
