package compare

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assurelab/riskquote/internal/calculation"
	"github.com/assurelab/riskquote/internal/domain"
)

func compareAll(t *testing.T) *Set {
	t.Helper()
	e := NewEngine(calculation.NewEngine())
	set, err := e.Compare(
		&domain.RiskProfile{Age: 30, Occupation: "technology"},
		domain.PolicyPricingInput{
			PolicyType:     domain.PolicyLife,
			CoverageAmount: decimal.NewFromInt(100000),
		},
		nil)
	require.NoError(t, err)
	return set
}

func TestCompareCoversAllPolicyTypes(t *testing.T) {
	set := compareAll(t)
	require.Len(t, set.Rows, len(domain.PolicyTypes()))

	// One shared assessment across every row.
	assert.Equal(t, 44, set.Assessment.Score)

	byType := make(map[domain.PolicyType]Row, len(set.Rows))
	for _, r := range set.Rows {
		byType[r.PolicyType] = r
	}

	// Technology occupation: multiplier 0.8 of the 1500 life base.
	life := byType[domain.PolicyLife]
	assert.Equal(t, "1500", life.BasePremium.String())
	assert.Equal(t, "1200", life.FinalPremium.String())
	assert.Equal(t, "-300", life.RiskAdjustment.String())

	// Auto is priced at 2.5% of coverage.
	auto := byType[domain.PolicyAuto]
	assert.Equal(t, "2500", auto.BasePremium.String())
	assert.Equal(t, "2000", auto.FinalPremium.String())
}

func TestCheapestRow(t *testing.T) {
	set := compareAll(t)
	cheapest, ok := set.Cheapest()
	require.True(t, ok)

	// Disability has the lowest base rate, so it is the cheapest at equal
	// coverage.
	assert.Equal(t, domain.PolicyDisability, cheapest.PolicyType)
}

func TestCompareSubset(t *testing.T) {
	e := NewEngine(calculation.NewEngine())
	set, err := e.Compare(
		&domain.RiskProfile{},
		domain.PolicyPricingInput{
			PolicyType:     domain.PolicyLife,
			CoverageAmount: decimal.NewFromInt(50000),
		},
		[]domain.PolicyType{domain.PolicyLife, domain.PolicyAuto})
	require.NoError(t, err)
	require.Len(t, set.Rows, 2)
	assert.Equal(t, domain.PolicyLife, set.Rows[0].PolicyType)
	assert.Equal(t, domain.PolicyAuto, set.Rows[1].PolicyType)
}

func TestCompareRejectsInvalidProfile(t *testing.T) {
	e := NewEngine(calculation.NewEngine())
	_, err := e.Compare(
		&domain.RiskProfile{Age: 12},
		domain.PolicyPricingInput{
			PolicyType:     domain.PolicyLife,
			CoverageAmount: decimal.NewFromInt(50000),
		},
		nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTableFormatter(t *testing.T) {
	out := (&TableFormatter{}).Format(compareAll(t))
	assert.Contains(t, out, "POLICY COMPARISON")
	assert.Contains(t, out, "life")
	assert.Contains(t, out, "$1200.00")
	assert.Contains(t, out, "* lowest premium")
}

func TestCSVFormatter(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(compareAll(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+len(domain.PolicyTypes()))
	assert.Equal(t, "policy_type,base_rate_percent,base_premium,risk_adjustment,final_premium,annual_total", lines[0])
	assert.Contains(t, out, "life,1.5,1500.00,-300.00,1200.00")
}

func TestJSONFormatter(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(compareAll(t))
	require.NoError(t, err)

	var round Set
	require.NoError(t, json.Unmarshal([]byte(out), &round))
	assert.Len(t, round.Rows, len(domain.PolicyTypes()))
	assert.Equal(t, 44, round.Assessment.Score)
}
