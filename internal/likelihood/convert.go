// Package likelihood converts likelihood ratios to conditional probability pairs and classifies their strength.
package likelihood

import (
	"math"

	"github.com/myrjola/bayescalc/internal/probability"
)

const (
	// MinRatio is the smallest likelihood ratio the calculator works with.
	MinRatio = 1e-6
	// MaxRatio is the largest likelihood ratio the calculator works with.
	MaxRatio = 1e6

	// fallbackInnocent is used for P(E|innocent) when no pair inside the safe interval matches the ratio.
	fallbackInnocent = 0.5
)

// ClampRatio returns lr clamped to [MinRatio, MaxRatio]. NaN maps to the neutral ratio 1.
func ClampRatio(lr float64) float64 {
	if math.IsNaN(lr) {
		return 1
	}
	return math.Min(MaxRatio, math.Max(MinRatio, lr))
}

// ToProbabilityPair returns P(E|guilty) and P(E|innocent) whose ratio equals the clamped lr.
//
// P(E|innocent) is the midpoint of the range that keeps both probabilities inside the safe interval, so the result
// is deterministic and stays away from the clamping bounds.
func ToProbabilityPair(lr float64) (float64, float64) {
	const eps = probability.Epsilon
	lr = ClampRatio(lr)

	lower := math.Max(eps, eps/lr)
	upper := 1 - eps
	if lr >= 1 {
		upper = (1 - eps) / lr
	}

	pInnocent := fallbackInnocent
	if lower <= upper {
		pInnocent = (lower + upper) / 2 //nolint:mnd // midpoint
	}
	pGuilty := lr * pInnocent

	return probability.Clamp(pGuilty), probability.Clamp(pInnocent)
}

// Ratio returns P(E|guilty) / P(E|innocent) after clamping both through the safe interval.
func Ratio(pGuilty, pInnocent float64) float64 {
	return probability.Clamp(pGuilty) / probability.Clamp(pInnocent)
}

// FromLogScale maps the signed log10 strength s to a likelihood ratio.
//
// Negative values favour innocence and positive values favour guilt. The result is clamped so that s is
// effectively bounded to [-6, 6].
func FromLogScale(s float64) float64 {
	return ClampRatio(math.Pow(10, s)) //nolint:mnd // log10 scale
}

// LogScale is the inverse of [FromLogScale].
func LogScale(lr float64) float64 {
	return math.Log10(ClampRatio(lr))
}
