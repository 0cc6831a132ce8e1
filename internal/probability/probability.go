// Package probability keeps probabilities away from the degenerate values 0 and 1 and formats them for display.
package probability

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Epsilon is the distance the safe interval keeps from 0 and 1.
//
// A conditional probability of exactly 0 or 1 pins the posterior permanently regardless of later evidence.
const Epsilon = 1e-8

const (
	minPercent = 1e-6
	maxPercent = 99.99999

	minRatio         = 1e-6
	maxRatio         = 1e6
	compactRatioHigh = 1000
	compactRatioLow  = 0.001

	percentDecimals = 6
	ratioDecimals   = 4
	ratioSigDigits  = 6

	notANumber = "n/a"
)

// Clamp returns p clamped to [Epsilon, 1-Epsilon]. NaN maps to Epsilon.
func Clamp(p float64) float64 {
	if math.IsNaN(p) {
		return Epsilon
	}
	return math.Min(1-Epsilon, math.Max(Epsilon, p))
}

// FormatPercent renders p as a percentage with up to six decimals.
//
// Values indistinguishable from the clamping bounds render with ≤ and ≥ symbols and NaN renders as n/a.
func FormatPercent(p float64) string {
	pct := p * 100 //nolint:mnd // percent
	switch {
	case math.IsNaN(pct):
		return notANumber
	case pct <= minPercent:
		return "≤0.000001%"
	case pct >= maxPercent:
		return "≥99.99999%"
	}
	return decimal.NewFromFloat(pct).Round(percentDecimals).String() + "%"
}

// FormatLikelihoodRatio renders a likelihood ratio.
//
// Ratios at or beyond the [1e-6, 1e6] bounds render with ≤ and ≥ symbols, very large and very small ratios
// use six significant digits and the rest use thousands separators with up to four decimals.
func FormatLikelihoodRatio(lr float64) string {
	switch {
	case math.IsNaN(lr):
		return notANumber
	case lr <= minRatio:
		return "≤0.000001"
	case lr >= maxRatio:
		return "≥1,000,000"
	case lr >= compactRatioHigh || lr <= compactRatioLow:
		return strconv.FormatFloat(lr, 'g', ratioSigDigits, 64)
	}
	rounded := decimal.NewFromFloat(lr).Round(ratioDecimals).InexactFloat64()
	return humanize.Commaf(rounded)
}
