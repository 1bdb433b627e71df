// Package calculation implements the risk scoring and premium estimation
// engine: factor composition, score classification, and premium
// derivation. The engine is a pure computation over its inputs; it does no
// I/O and is safe to call concurrently.
package calculation

import (
	"github.com/assurelab/riskquote/internal/catalog"
	"github.com/assurelab/riskquote/internal/domain"
)

// Engine orchestrates an estimate: catalog lookup, factor composition,
// risk classification, and premium derivation. Both the interactive
// what-if preview and the authoritative quote path call the same engine,
// so the two can never drift apart.
type Engine struct {
	Catalog *catalog.Catalog
	Logger  Logger
}

// NewEngine creates an engine over the built-in factor catalog.
func NewEngine() *Engine {
	return &Engine{
		Catalog: catalog.MustDefault(),
		Logger:  NopLogger{},
	}
}

// NewEngineWithCatalog creates an engine over a specific catalog, e.g. one
// loaded from an override file.
func NewEngineWithCatalog(c *catalog.Catalog) *Engine {
	return &Engine{
		Catalog: c,
		Logger:  NopLogger{},
	}
}

// SetLogger replaces the engine logger. Nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// Assess computes the composite risk assessment for a profile. A partial
// profile is not an error: undeclared categories fall back to their
// neutral multiplier and the assessment is best-effort.
func (e *Engine) Assess(profile *domain.RiskProfile) (*domain.CompositeRiskAssessment, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	matches := e.Catalog.Applicable(profile)
	composite, contributions := Compose(matches)
	score, band := Classify(composite)

	e.Logger.Debugf("assessed profile: %d applied factors, multiplier %s, score %d, band %s",
		len(contributions), composite.String(), score, band)

	return &domain.CompositeRiskAssessment{
		AppliedFactors:      contributions,
		CompositeMultiplier: composite,
		Score:               score,
		Band:                band,
	}, nil
}

// Estimate runs the full pipeline: profile to assessment to quote. The
// result is a total function of its inputs; calling it twice with the same
// profile and pricing yields identical output.
func (e *Engine) Estimate(profile *domain.RiskProfile, pricing domain.PolicyPricingInput) (*domain.CompositeRiskAssessment, *domain.PremiumQuote, error) {
	assessment, err := e.Assess(profile)
	if err != nil {
		return nil, nil, err
	}

	quote, err := Quote(pricing, assessment)
	if err != nil {
		return nil, nil, err
	}

	e.Logger.Debugf("quoted %s coverage %s: final premium %s at %s",
		pricing.PolicyType, pricing.CoverageAmount.String(), quote.FinalPremium.String(), quote.Frequency)

	return assessment, quote, nil
}
