// Package scenarios flattens scenarios to tabular records and provides the built-in scenario templates.
package scenarios

import (
	"github.com/myrjola/bayescalc/internal/models"
)

// Type tags of the original Swedish record format, accepted when reading.
const (
	legacyEvidenceTag        = "bevis"
	legacyCounterEvidenceTag = "motbevis"
)

// Record is one row of the flat scenario table. The prior is repeated on every row.
type Record struct {
	Type           string
	Description    string
	PGivenGuilty   float64
	PGivenInnocent float64
	Prior          float64
}

// ToRecords flattens s to evidence records followed by counter-evidence records.
func ToRecords(s models.Scenario) []Record {
	records := make([]Record, 0, len(s.Evidence)+len(s.CounterEvidence))
	for _, item := range s.Items() {
		records = append(records, Record{
			Type:           string(item.Kind),
			Description:    item.Description,
			PGivenGuilty:   item.PGivenGuilty,
			PGivenInnocent: item.PGivenInnocent,
			Prior:          s.Prior,
		})
	}
	return records
}

// FromRecords rebuilds a scenario. The prior is taken from the first record.
//
// Records are partitioned by their type tag preserving order within each partition. Records with an
// unrecognized tag are skipped and returned in skipped so that callers can report them.
func FromRecords(records []Record) (models.Scenario, []Record, error) {
	if len(records) == 0 {
		return models.Scenario{}, nil, &ScenarioFormatError{Line: 0, Field: "prior", Reason: "no records"}
	}
	var (
		evidence        []models.EvidenceItem
		counterEvidence []models.EvidenceItem
		skipped         []Record
	)
	for _, r := range records {
		item := models.NewEvidenceItem(r.Description, r.PGivenGuilty, r.PGivenInnocent)
		switch kind, ok := parseKind(r.Type); {
		case !ok:
			skipped = append(skipped, r)
		case kind == models.KindEvidence:
			evidence = append(evidence, item)
		default:
			counterEvidence = append(counterEvidence, item)
		}
	}
	return models.NewScenario(records[0].Prior, evidence, counterEvidence), skipped, nil
}

func parseKind(tag string) (models.EvidenceKind, bool) {
	switch tag {
	case string(models.KindEvidence), legacyEvidenceTag:
		return models.KindEvidence, true
	case string(models.KindCounterEvidence), legacyCounterEvidenceTag:
		return models.KindCounterEvidence, true
	default:
		return "", false
	}
}
