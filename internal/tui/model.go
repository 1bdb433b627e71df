// Package tui implements the interactive what-if estimator: a customer
// profile editor with a live risk and premium preview. Every edit
// recomputes through the same engine the quote service runs, after a
// short debounce, and results from superseded edits are discarded.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/calculation"
	"github.com/assurelab/riskquote/internal/domain"
)

// Model is the estimator's application state.
type Model struct {
	engine *calculation.Engine
	remote *RemoteClient

	// Inputs being edited.
	profile domain.RiskProfile
	pricing domain.PolicyPricingInput

	// Latest accepted results. Stale while seq > resultSeq.
	assessment *domain.CompositeRiskAssessment
	quote      *domain.PremiumQuote
	remoteNote string

	// seq increments on every edit; resultSeq is the seq the displayed
	// results were computed from.
	seq       uint64
	resultSeq uint64

	cursor        int
	editingAmount bool
	amountInput   textinput.Model
	spin          spinner.Model

	width  int
	height int
	err    error
}

// NewModel creates an estimator over an engine. remote may be nil; then
// reconciliation against the quote service is unavailable.
func NewModel(engine *calculation.Engine, remote *RemoteClient) Model {
	ti := textinput.New()
	ti.Placeholder = "100000"
	ti.CharLimit = 12
	ti.Width = 14

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SelectedFieldStyle

	return Model{
		engine: engine,
		remote: remote,
		pricing: domain.PolicyPricingInput{
			PolicyType:     domain.PolicyLife,
			CoverageAmount: decimal.NewFromInt(100000),
			Frequency:      domain.FrequencyMonthly,
		},
		amountInput: ti,
		spin:        sp,
		width:       80,
		height:      24,
	}
}

// Init schedules the first estimate so the preview is populated before
// any edit.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, estimateCmd(m.engine, m.profile, m.pricing, m.seq))
}

// pending reports whether the displayed results lag behind the inputs.
func (m Model) pending() bool {
	return m.seq != m.resultSeq
}

// estimateCmd computes an estimate off the update loop. The inputs are
// copied into the closure, so later edits cannot race with it.
func estimateCmd(engine *calculation.Engine, profile domain.RiskProfile, pricing domain.PolicyPricingInput, seq uint64) tea.Cmd {
	return func() tea.Msg {
		assessment, quote, err := engine.Estimate(&profile, pricing)
		return EstimateMsg{Seq: seq, Assessment: assessment, Quote: quote, Err: err}
	}
}

// remoteQuoteCmd asks the quote service for the same estimate.
func remoteQuoteCmd(remote *RemoteClient, profile domain.RiskProfile, pricing domain.PolicyPricingInput, seq uint64) tea.Cmd {
	return func() tea.Msg {
		assessment, quote, err := remote.Estimate(profile, pricing)
		return RemoteQuoteMsg{Seq: seq, Assessment: assessment, Quote: quote, Err: err}
	}
}
