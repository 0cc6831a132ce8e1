package bayes

// Conclusion is the verbal reading of a final posterior.
type Conclusion string

const (
	BeyondReasonableDoubt   Conclusion = "Beyond reasonable doubt"
	StrongSupportForGuilt   Conclusion = "Strong support for guilt"
	SubstantiallySupported  Conclusion = "Substantially supported"
	PreponderanceOfEvidence Conclusion = "Preponderance of evidence"
	Doubtful                Conclusion = "Doubtful"
	UnlikelyOrInnocent      Conclusion = "Unlikely or supports innocence"
)

// Interpret maps a posterior given in percent to a conclusion. Thresholds are inclusive.
func Interpret(percent float64) Conclusion {
	switch {
	case percent >= 95: //nolint:mnd // thresholds
		return BeyondReasonableDoubt
	case percent >= 80: //nolint:mnd // thresholds
		return StrongSupportForGuilt
	case percent >= 60: //nolint:mnd // thresholds
		return SubstantiallySupported
	case percent >= 50: //nolint:mnd // thresholds
		return PreponderanceOfEvidence
	case percent >= 30: //nolint:mnd // thresholds
		return Doubtful
	default:
		return UnlikelyOrInnocent
	}
}
