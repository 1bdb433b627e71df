package transform

import (
	"fmt"

	"github.com/assurelab/riskquote/internal/domain"
)

// QuitSmoking clears the smoker flag.
type QuitSmoking struct{}

func (QuitSmoking) Name() string        { return "quit_smoking" }
func (QuitSmoking) Description() string { return "Clear the smoker flag" }

func (QuitSmoking) Apply(base *domain.RiskProfile) (*domain.RiskProfile, error) {
	out := copyProfile(base)
	out.Smoker = false
	return out, nil
}

// StartExercising sets exercise frequency to regular.
type StartExercising struct{}

func (StartExercising) Name() string        { return "start_exercising" }
func (StartExercising) Description() string { return "Set exercise frequency to regular" }

func (StartExercising) Apply(base *domain.RiskProfile) (*domain.RiskProfile, error) {
	out := copyProfile(base)
	out.ExerciseFrequency = domain.ExerciseRegular
	return out, nil
}

// DropHobbies clears the dangerous hobbies flag.
type DropHobbies struct{}

func (DropHobbies) Name() string        { return "drop_hobbies" }
func (DropHobbies) Description() string { return "Clear the dangerous hobbies flag" }

func (DropHobbies) Apply(base *domain.RiskProfile) (*domain.RiskProfile, error) {
	out := copyProfile(base)
	out.DangerousHobbies = false
	return out, nil
}

// ImproveCredit raises the credit score by Points, capped at the domain
// maximum. An undeclared score stays undeclared.
type ImproveCredit struct {
	Points int
}

func (t ImproveCredit) Name() string { return "improve_credit" }
func (t ImproveCredit) Description() string {
	return fmt.Sprintf("Raise the credit score by %d points", t.Points)
}

func (t ImproveCredit) Apply(base *domain.RiskProfile) (*domain.RiskProfile, error) {
	if t.Points <= 0 {
		return nil, fmt.Errorf("points must be positive, got %d", t.Points)
	}
	out := copyProfile(base)
	if out.CreditScore == 0 {
		return out, nil
	}
	out.CreditScore += t.Points
	if out.CreditScore > domain.CreditScoreMax {
		out.CreditScore = domain.CreditScoreMax
	}
	return out, nil
}

// Relocate sets the declared geographic risk zone.
type Relocate struct {
	Zone domain.RiskZone
}

func (t Relocate) Name() string { return "relocate" }
func (t Relocate) Description() string {
	return fmt.Sprintf("Move to a %s risk zone", t.Zone)
}

func (t Relocate) Apply(base *domain.RiskProfile) (*domain.RiskProfile, error) {
	out := copyProfile(base)
	out.RiskZone = t.Zone
	return out, nil
}

// ImproveHealth sets the self-reported health status.
type ImproveHealth struct {
	Status domain.HealthStatus
}

func (t ImproveHealth) Name() string { return "improve_health" }
func (t ImproveHealth) Description() string {
	return fmt.Sprintf("Set health status to %s", t.Status)
}

func (t ImproveHealth) Apply(base *domain.RiskProfile) (*domain.RiskProfile, error) {
	out := copyProfile(base)
	out.HealthStatus = t.Status
	return out, nil
}
