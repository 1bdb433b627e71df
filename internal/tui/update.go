package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/shopspring/decimal"
)

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case RecomputeMsg:
		// A newer edit rescheduled the debounce; this tick is obsolete.
		if msg.Seq != m.seq {
			return m, nil
		}
		return m, estimateCmd(m.engine, m.profile, m.pricing, msg.Seq)

	case EstimateMsg:
		// Results computed from superseded inputs are discarded, never
		// displayed. resultSeq only moves forward.
		if msg.Seq < m.resultSeq || msg.Seq != m.seq {
			return m, nil
		}
		m.resultSeq = msg.Seq
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.assessment = msg.Assessment
		m.quote = msg.Quote
		return m, nil

	case RemoteQuoteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.remoteNote = "service unreachable: " + msg.Err.Error()
			return m, nil
		}
		if m.quote != nil && msg.Quote.FinalPremium.Equal(m.quote.FinalPremium) {
			m.remoteNote = "service agrees: " + FormatMoney(msg.Quote.FinalPremium)
		} else {
			m.remoteNote = "service differs: " + FormatMoney(msg.Quote.FinalPremium)
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingAmount {
		return m.handleAmountEdit(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < fieldCount-1 {
			m.cursor++
		}
		return m, nil

	case "left", "h":
		fields[m.cursor].left(&m)
		return m.edited()

	case "right", "l", " ":
		fields[m.cursor].right(&m)
		return m.edited()

	case "enter":
		if m.cursor == fieldCoverage {
			m.editingAmount = true
			m.amountInput.SetValue(m.pricing.CoverageAmount.StringFixed(0))
			m.amountInput.Focus()
			return m, nil
		}
		return m, nil

	case "r":
		if m.remote == nil {
			m.remoteNote = "no quote service configured"
			return m, nil
		}
		m.remoteNote = "asking quote service..."
		return m, remoteQuoteCmd(m.remote, m.profile, m.pricing, m.seq)
	}

	return m, nil
}

// handleAmountEdit routes keys to the coverage amount input.
func (m Model) handleAmountEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editingAmount = false
		m.amountInput.Blur()
		return m, nil

	case "enter":
		m.editingAmount = false
		m.amountInput.Blur()
		amount, err := decimal.NewFromString(m.amountInput.Value())
		if err != nil || amount.LessThanOrEqual(decimal.Zero) {
			m.err = fmt.Errorf("invalid coverage amount %q", m.amountInput.Value())
			return m, nil
		}
		m.pricing.CoverageAmount = amount
		return m.edited()

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

// edited records an input change: bump the sequence, clear the remote
// note (it described superseded inputs), and schedule a debounced
// recompute.
func (m Model) edited() (tea.Model, tea.Cmd) {
	m.seq++
	m.remoteNote = ""
	return m, scheduleRecompute(m.seq)
}
