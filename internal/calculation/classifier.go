package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/assurelab/riskquote/internal/domain"
)

// SCORE CURVE:
//
//	score = clamp(round(50 + 25*ln(compositeMultiplier)), 0, 100)
//
// Properties the curve is pinned to:
//   - monotonic: score never decreases as the multiplier grows
//   - bounded: always inside [0, 100]
//   - baseline: multiplier 1.0 scores exactly 50 (moderate band); a
//     profile with no adverse factors is an average risk, not a low one
//
// The logarithm keeps the percentage view composable: doubling the
// multiplier always adds the same number of score points (~17) no matter
// where you start.

// Classify maps a composite multiplier onto the bounded 0-100 score and
// its risk band.
func Classify(compositeMultiplier decimal.Decimal) (int, domain.RiskBand) {
	m, _ := compositeMultiplier.Float64()
	if m <= 0 {
		// Catalog integrity guarantees positive multipliers; guard anyway
		// so a broken caller cannot produce NaN.
		return 0, domain.BandFromScore(0)
	}

	raw := 50 + 25*math.Log(m)
	score := int(math.Round(raw))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, domain.BandFromScore(score)
}
