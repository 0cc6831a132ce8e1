package models

// CounterEvidenceLabelPrefix is prepended to the description of counter-evidence update steps.
const CounterEvidenceLabelPrefix = "Counter-evidence: "

// UpdateStep records how a single evidence item moved the probability of guilt.
type UpdateStep struct {
	Kind           EvidenceKind `json:"kind"`
	Label          string       `json:"label"`
	PGivenGuilty   float64      `json:"p_given_guilty"`
	PGivenInnocent float64      `json:"p_given_innocent"`
	PriorBefore    float64      `json:"prior_before"`
	PosteriorAfter float64      `json:"posterior_after"`
}

// LikelihoodRatio returns P(E|guilty) / P(E|innocent) of the step's evidence.
func (s UpdateStep) LikelihoodRatio() float64 {
	return EvidenceItem{
		Description:    s.Label,
		PGivenGuilty:   s.PGivenGuilty,
		PGivenInnocent: s.PGivenInnocent,
	}.LikelihoodRatio()
}

// StepLabel is the display label of an item of the given kind.
func StepLabel(kind EvidenceKind, description string) string {
	if kind == KindCounterEvidence {
		return CounterEvidenceLabelPrefix + description
	}
	return description
}
