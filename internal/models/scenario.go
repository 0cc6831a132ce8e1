package models

import (
	"fmt"
	"slices"

	"github.com/myrjola/bayescalc/internal/likelihood"
	"github.com/myrjola/bayescalc/internal/probability"
)

// EvidenceKind tells whether an item was entered as evidence for guilt or as counter-evidence.
type EvidenceKind string

const (
	KindEvidence        EvidenceKind = "evidence"
	KindCounterEvidence EvidenceKind = "counter_evidence"
)

const (
	// DefaultPrior is the probability of guilt a new scenario starts from.
	DefaultPrior = 0.1

	MinEvidence        = 1
	MaxEvidence        = 20
	MinCounterEvidence = 0
	MaxCounterEvidence = 10
)

// EvidenceItem is a single piece of evidence characterized by its likelihood under guilt and under innocence.
//
// Construct it with [NewEvidenceItem] so that both probabilities are inside the safe interval.
type EvidenceItem struct {
	Description    string  `json:"description"      yaml:"desc"`
	PGivenGuilty   float64 `json:"p_given_guilty"   yaml:"pba"`
	PGivenInnocent float64 `json:"p_given_innocent" yaml:"pbna"`
}

// NewEvidenceItem returns an item with both conditional probabilities clamped to the safe interval.
func NewEvidenceItem(description string, pGivenGuilty, pGivenInnocent float64) EvidenceItem {
	return EvidenceItem{
		Description:    description,
		PGivenGuilty:   probability.Clamp(pGivenGuilty),
		PGivenInnocent: probability.Clamp(pGivenInnocent),
	}
}

// EvidenceFromLogScale builds an item from a signed log10 likelihood ratio, see [likelihood.FromLogScale].
func EvidenceFromLogScale(description string, s float64) EvidenceItem {
	pGuilty, pInnocent := likelihood.ToProbabilityPair(likelihood.FromLogScale(s))
	return NewEvidenceItem(description, pGuilty, pInnocent)
}

// LikelihoodRatio returns P(E|guilty) / P(E|innocent).
func (e EvidenceItem) LikelihoodRatio() float64 {
	return likelihood.Ratio(e.PGivenGuilty, e.PGivenInnocent)
}

// Clamped returns a copy with both probabilities inside the safe interval.
//
// Decoders that fill the struct directly use it to restore the invariant.
func (e EvidenceItem) Clamped() EvidenceItem {
	return NewEvidenceItem(e.Description, e.PGivenGuilty, e.PGivenInnocent)
}

// DefaultEvidence is the placeholder for the n:th (1-based) evidence item added to a scenario.
func DefaultEvidence(n int) EvidenceItem {
	return NewEvidenceItem(fmt.Sprintf("Evidence %d", n), 0.7, 0.2) //nolint:mnd // defaults
}

// DefaultCounterEvidence is the placeholder for the n:th (1-based) counter-evidence item added to a scenario.
func DefaultCounterEvidence(n int) EvidenceItem {
	return NewEvidenceItem(fmt.Sprintf("Counter-evidence %d", n), 0.4, 0.7) //nolint:mnd // defaults
}

// Scenario is a prior together with the evidence and counter-evidence that update it.
//
// Evidence is processed before counter-evidence, each in input order.
type Scenario struct {
	Prior           float64        `json:"prior"            yaml:"prior"`
	Evidence        []EvidenceItem `json:"evidence"         yaml:"evidence"`
	CounterEvidence []EvidenceItem `json:"counter_evidence" yaml:"counter_evidence"`
}

// NewScenario clamps the prior and every item and copies the item lists so that the scenario owns them.
func NewScenario(prior float64, evidence, counterEvidence []EvidenceItem) Scenario {
	return Scenario{
		Prior:           probability.Clamp(prior),
		Evidence:        clampAll(evidence),
		CounterEvidence: clampAll(counterEvidence),
	}
}

// NewDefaultScenario is the starting point for a scenario entered by hand.
func NewDefaultScenario() Scenario {
	return NewScenario(DefaultPrior, []EvidenceItem{DefaultEvidence(1)}, nil)
}

func clampAll(items []EvidenceItem) []EvidenceItem {
	out := make([]EvidenceItem, len(items))
	for i, item := range items {
		out[i] = item.Clamped()
	}
	return out
}

// Clamped returns a copy of the scenario with the safe interval invariant restored.
func (s Scenario) Clamped() Scenario {
	return NewScenario(s.Prior, s.Evidence, s.CounterEvidence)
}

// Equal reports whether both scenarios have the same prior and items in the same order.
func (s Scenario) Equal(other Scenario) bool {
	return s.Prior == other.Prior &&
		slices.Equal(s.Evidence, other.Evidence) &&
		slices.Equal(s.CounterEvidence, other.CounterEvidence)
}

// TaggedItem is an evidence item together with its kind.
type TaggedItem struct {
	Kind EvidenceKind
	EvidenceItem
}

// Items returns evidence followed by counter-evidence, the order in which they update the prior.
func (s Scenario) Items() []TaggedItem {
	items := make([]TaggedItem, 0, len(s.Evidence)+len(s.CounterEvidence))
	for _, e := range s.Evidence {
		items = append(items, TaggedItem{Kind: KindEvidence, EvidenceItem: e})
	}
	for _, e := range s.CounterEvidence {
		items = append(items, TaggedItem{Kind: KindCounterEvidence, EvidenceItem: e})
	}
	return items
}

// Resize returns a copy with nEvidence evidence and nCounter counter-evidence items.
//
// Counts are bounded to [MinEvidence, MaxEvidence] and [MinCounterEvidence, MaxCounterEvidence]. Missing items are
// filled with [DefaultEvidence] and [DefaultCounterEvidence], extra items are dropped from the end. A scenario
// without evidence, such as one read from a file, stays without evidence unless nEvidence grows it.
func (s Scenario) Resize(nEvidence, nCounter int) Scenario {
	nEvidence = max(s.MinEvidence(), min(MaxEvidence, nEvidence))
	nCounter = max(MinCounterEvidence, min(MaxCounterEvidence, nCounter))
	return Scenario{
		Prior:           s.Prior,
		Evidence:        resize(s.Evidence, nEvidence, DefaultEvidence),
		CounterEvidence: resize(s.CounterEvidence, nCounter, DefaultCounterEvidence),
	}
}

// MinEvidence is the smallest evidence count s can be resized to.
func (s Scenario) MinEvidence() int {
	return min(MinEvidence, len(s.Evidence))
}

func resize(items []EvidenceItem, n int, fill func(int) EvidenceItem) []EvidenceItem {
	out := make([]EvidenceItem, n)
	copy(out, items)
	for i := len(items); i < n; i++ {
		out[i] = fill(i + 1)
	}
	return out
}
