// Package transform implements composable what-if edits to a risk
// profile: named operations like quitting smoking or improving credit,
// applied to a copy of the profile so the base is never mutated. They
// power the CLI's what-if comparison.
package transform

import (
	"fmt"

	"github.com/assurelab/riskquote/internal/domain"
)

// ProfileTransform is one what-if edit to a risk profile.
type ProfileTransform interface {
	// Apply returns a modified copy of the base profile. The base is
	// never mutated.
	Apply(base *domain.RiskProfile) (*domain.RiskProfile, error)

	// Name returns a short identifier for this transform (e.g., "quit_smoking").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string
}

// ApplyTransforms applies a sequence of transforms in order, each
// receiving the output of the previous one.
func ApplyTransforms(base *domain.RiskProfile, transforms []ProfileTransform) (*domain.RiskProfile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	current := copyProfile(base)
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("transformed profile is invalid: %w", err)
	}
	return current, nil
}

// copyProfile deep-copies a profile. BMI is the only pointer field.
func copyProfile(p *domain.RiskProfile) *domain.RiskProfile {
	out := *p
	if p.BMI != nil {
		bmi := *p.BMI
		out.BMI = &bmi
	}
	return &out
}
