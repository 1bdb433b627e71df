package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assurelab/riskquote/internal/calculation"
	"github.com/assurelab/riskquote/internal/domain"
)

func newTestModel() Model {
	return NewModel(calculation.NewEngine(), nil)
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "up", "down", "left", "right", "enter", "esc":
		msg = tea.KeyMsg{Type: keyType(key)}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyType(key string) tea.KeyType {
	switch key {
	case "up":
		return tea.KeyUp
	case "down":
		return tea.KeyDown
	case "left":
		return tea.KeyLeft
	case "right":
		return tea.KeyRight
	case "enter":
		return tea.KeyEnter
	case "esc":
		return tea.KeyEsc
	}
	return tea.KeyRunes
}

func TestEditBumpsSequenceAndSchedulesRecompute(t *testing.T) {
	m := newTestModel()
	require.Equal(t, uint64(0), m.seq)

	m, cmd := press(t, m, "right") // bump age field
	assert.Equal(t, uint64(1), m.seq)
	assert.NotNil(t, cmd, "an edit must schedule a debounced recompute")
	assert.True(t, m.pending())
}

func TestStaleRecomputeTickIsIgnored(t *testing.T) {
	m := newTestModel()
	m, _ = press(t, m, "right")
	m, _ = press(t, m, "right") // second edit supersedes the first

	next, cmd := m.Update(RecomputeMsg{Seq: 1})
	m = next.(Model)
	assert.Nil(t, cmd, "a superseded debounce tick must not trigger a recompute")

	next, cmd = m.Update(RecomputeMsg{Seq: m.seq})
	_ = next
	assert.NotNil(t, cmd, "the current tick triggers the recompute")
}

func TestStaleEstimateIsDiscarded(t *testing.T) {
	m := newTestModel()
	m, _ = press(t, m, "right")
	m, _ = press(t, m, "right")

	fresh := &domain.PremiumQuote{FinalPremium: decimal.NewFromInt(999)}
	next, _ := m.Update(EstimateMsg{Seq: 1, Quote: fresh, Assessment: &domain.CompositeRiskAssessment{}})
	m = next.(Model)
	assert.Nil(t, m.quote, "a result computed from superseded inputs must never be displayed")
	assert.True(t, m.pending())

	next, _ = m.Update(EstimateMsg{Seq: m.seq, Quote: fresh, Assessment: &domain.CompositeRiskAssessment{}})
	m = next.(Model)
	assert.Equal(t, fresh, m.quote)
	assert.False(t, m.pending())
}

func TestEstimatePipelineProducesQuote(t *testing.T) {
	m := newTestModel()

	msg := estimateCmd(m.engine, m.profile, m.pricing, 0)()
	est, ok := msg.(EstimateMsg)
	require.True(t, ok)
	require.NoError(t, est.Err)
	require.NotNil(t, est.Quote)

	// Default inputs: empty profile, life, 100k coverage.
	assert.Equal(t, "1500", est.Quote.FinalPremium.String())
	assert.Equal(t, 50, est.Assessment.Score)
}

func TestFieldCycling(t *testing.T) {
	m := newTestModel()

	m.cursor = fieldOccupation
	m, _ = press(t, m, "right")
	assert.Equal(t, "technology", m.profile.Occupation)
	m, _ = press(t, m, "left")
	assert.Equal(t, "", m.profile.Occupation)
	m, _ = press(t, m, "left") // wraps to the last option
	assert.Equal(t, "mining", m.profile.Occupation)

	m.cursor = fieldSmoker
	m, _ = press(t, m, "right")
	assert.True(t, m.profile.Smoker)
	m, _ = press(t, m, "right")
	assert.False(t, m.profile.Smoker)
}

func TestCoverageAmountEditing(t *testing.T) {
	m := newTestModel()
	m.cursor = fieldCoverage

	m, _ = press(t, m, "enter")
	require.True(t, m.editingAmount)

	m.amountInput.SetValue("250000")
	m, _ = press(t, m, "enter")
	assert.False(t, m.editingAmount)
	assert.True(t, m.pricing.CoverageAmount.Equal(decimal.NewFromInt(250000)))

	m, _ = press(t, m, "enter")
	m.amountInput.SetValue("not-a-number")
	m, _ = press(t, m, "enter")
	assert.Error(t, m.err)
	assert.True(t, m.pricing.CoverageAmount.Equal(decimal.NewFromInt(250000)),
		"a rejected amount leaves the previous one in place")
}

func TestViewRendersWithoutResults(t *testing.T) {
	m := newTestModel()
	out := m.View()
	assert.Contains(t, out, "Risk & Premium Estimator")
	assert.Contains(t, out, "no estimate yet")
}

func TestViewRendersQuote(t *testing.T) {
	m := newTestModel()

	msg := estimateCmd(m.engine, m.profile, m.pricing, 0)()
	next, _ := m.Update(msg)
	m = next.(Model)

	out := m.View()
	assert.Contains(t, out, "$1500.00")
	assert.Contains(t, out, "50 / 100")
}
