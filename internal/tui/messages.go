package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/assurelab/riskquote/internal/domain"
)

// DebounceInterval is how long the estimator waits after the last edit
// before recomputing. Edits inside the window collapse into one recompute.
const DebounceInterval = 150 * time.Millisecond

// Message types for the Bubble Tea update cycle.

// RecomputeMsg fires when the debounce window after an edit closes. Seq
// identifies the edit that scheduled it; a stale Seq means further edits
// arrived and this recompute is obsolete.
type RecomputeMsg struct {
	Seq uint64
}

// EstimateMsg carries a finished local estimate. Results are tagged with
// the Seq of the inputs they were computed from so a slow computation can
// never overwrite the output of a newer one.
type EstimateMsg struct {
	Seq        uint64
	Assessment *domain.CompositeRiskAssessment
	Quote      *domain.PremiumQuote
	Err        error
}

// RemoteQuoteMsg carries the authoritative service's answer for the same
// inputs, requested explicitly for reconciliation.
type RemoteQuoteMsg struct {
	Seq        uint64
	Assessment *domain.CompositeRiskAssessment
	Quote      *domain.PremiumQuote
	Err        error
}

// ErrorMsg displays an error to the user.
type ErrorMsg struct {
	Err error
}

func scheduleRecompute(seq uint64) tea.Cmd {
	return tea.Tick(DebounceInterval, func(time.Time) tea.Msg {
		return RecomputeMsg{Seq: seq}
	})
}
