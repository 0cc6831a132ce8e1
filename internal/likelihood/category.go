package likelihood

// Category is the verbal strength of a likelihood ratio.
type Category string

const (
	ExtremelyStrongInnocence Category = "Extremely strong support for innocence"
	VeryStrongInnocence      Category = "Very strong support for innocence"
	StrongInnocence          Category = "Strong support for innocence"
	ModerateInnocence        Category = "Moderate support for innocence"
	WeakInnocence            Category = "Weak support for innocence"
	Neutral                  Category = "Neutral"
	WeakGuilt                Category = "Weak support for guilt"
	ModerateGuilt            Category = "Moderate support for guilt"
	StrongGuilt              Category = "Strong support for guilt"
	VeryStrongGuilt          Category = "Very strong support for guilt"
	ExtremelyStrongGuilt     Category = "Extremely strong support for guilt"
)

// Categorize returns the verbal category of the clamped lr.
//
// Boundaries below neutral are exclusive and boundaries above neutral are inclusive, so 0.01 is
// "Strong support for innocence" while 3 is still "Weak support for guilt".
func Categorize(lr float64) Category {
	lr = ClampRatio(lr)
	switch {
	case lr < 0.001: //nolint:mnd // category boundaries
		return ExtremelyStrongInnocence
	case lr < 0.01: //nolint:mnd // category boundaries
		return VeryStrongInnocence
	case lr < 0.1: //nolint:mnd // category boundaries
		return StrongInnocence
	case lr < 0.33: //nolint:mnd // category boundaries
		return ModerateInnocence
	case lr < 1:
		return WeakInnocence
	case lr == 1:
		return Neutral
	case lr <= 3: //nolint:mnd // category boundaries
		return WeakGuilt
	case lr <= 10: //nolint:mnd // category boundaries
		return ModerateGuilt
	case lr <= 30: //nolint:mnd // category boundaries
		return StrongGuilt
	case lr <= 100: //nolint:mnd // category boundaries
		return VeryStrongGuilt
	default:
		return ExtremelyStrongGuilt
	}
}

// FavoursGuilt reports whether the category leans towards guilt.
func (c Category) FavoursGuilt() bool {
	switch c { //nolint:exhaustive // only guilt categories are listed
	case WeakGuilt, ModerateGuilt, StrongGuilt, VeryStrongGuilt, ExtremelyStrongGuilt:
		return true
	default:
		return false
	}
}
