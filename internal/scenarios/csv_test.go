package scenarios_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/models"
	"github.com/myrjola/bayescalc/internal/scenarios"
	"github.com/stretchr/testify/require"
)

func TestCSVRoundTrip(t *testing.T) {
	for _, name := range scenarios.ListTemplates() {
		t.Run(name, func(t *testing.T) {
			want, err := scenarios.LoadTemplate(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, scenarios.WriteCSV(&buf, want))

			got, skipped, err := scenarios.ReadCSV(&buf)
			require.NoError(t, err)
			require.Empty(t, skipped)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCSVRoundTripKeepsAwkwardValues(t *testing.T) {
	want := models.NewScenario(1.0/3.0,
		[]models.EvidenceItem{models.NewEvidenceItem(`Witness "A", second hearing`, 0.123456789012345, 1e-8)},
		[]models.EvidenceItem{
			models.NewEvidenceItem("Alibi\nwith newline", 0.3, 0.6),
			models.NewEvidenceItem("Counter witness", 0.5, 0.9),
		},
	)
	var buf bytes.Buffer
	require.NoError(t, scenarios.WriteCSV(&buf, want))
	got, _, err := scenarios.ReadCSV(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV(t *testing.T) {
	s := models.NewScenario(0.1,
		[]models.EvidenceItem{models.NewEvidenceItem("DNA", 0.95, 0.01)},
		[]models.EvidenceItem{models.NewEvidenceItem("Alibi", 0.3, 0.6)},
	)
	var buf bytes.Buffer
	require.NoError(t, scenarios.WriteCSV(&buf, s))
	want := "type,desc,pba,pbna,prior\n" +
		"evidence,DNA,0.95,0.01,0.1\n" +
		"counter_evidence,Alibi,0.3,0.6,0.1\n"
	require.Equal(t, want, buf.String())
}

func TestReadCSV(t *testing.T) {
	input := "desc,prior,pba,pbna,typ,type\n" +
		"DNA,0.2,0.95,0.01,x,bevis\n" +
		"Alibi,0.2,0.3,0.6,x,motbevis\n" +
		"Camera,0.2,0.95,0.3,x,evidence\n" +
		"Note,0.2,0.5,0.5,x,remark\n"
	got, skipped, err := scenarios.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	want := models.NewScenario(0.2,
		[]models.EvidenceItem{
			models.NewEvidenceItem("DNA", 0.95, 0.01),
			models.NewEvidenceItem("Camera", 0.95, 0.3),
		},
		[]models.EvidenceItem{models.NewEvidenceItem("Alibi", 0.3, 0.6)},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadCSV() mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, skipped, 1)
	require.Equal(t, "remark", skipped[0].Type)
}

func TestReadCSVLegacyTypeColumn(t *testing.T) {
	input := "typ,desc,pba,pbna,prior\n" +
		"bevis,DNA,0.95,0.05,0.1\n" +
		"motbevis,Alibi,0.3,0.6,0.1\n" +
		"bevis,Camera,0.8,0.3,0.1\n"
	got, skipped, err := scenarios.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Empty(t, skipped)

	want := models.NewScenario(0.1,
		[]models.EvidenceItem{
			models.NewEvidenceItem("DNA", 0.95, 0.05),
			models.NewEvidenceItem("Camera", 0.8, 0.3),
		},
		[]models.EvidenceItem{models.NewEvidenceItem("Alibi", 0.3, 0.6)},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVClampsProbabilities(t *testing.T) {
	input := "type,desc,pba,pbna,prior\nevidence,DNA,1,0,0\n"
	got, _, err := scenarios.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, models.NewScenario(0, []models.EvidenceItem{models.NewEvidenceItem("DNA", 1, 0)}, nil), got)
	require.Greater(t, got.Prior, 0.0)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLine  int
		wantField string
	}{
		{name: "empty", input: "", wantLine: 0, wantField: ""},
		{name: "header only", input: "type,desc,pba,pbna,prior\n", wantLine: 0, wantField: "prior"},
		{name: "missing prior", input: "type,desc,pba,pbna\nevidence,DNA,0.9,0.1\n", wantLine: 1, wantField: "prior"},
		{name: "missing desc", input: "type,pba,pbna,prior\nevidence,0.9,0.1,0.1\n", wantLine: 1, wantField: "desc"},
		{name: "missing pba", input: "type,desc,pbna,prior\nevidence,DNA,0.1,0.1\n", wantLine: 1, wantField: "pba"},
		{name: "missing pbna", input: "type,desc,pba,prior\nevidence,DNA,0.9,0.1\n", wantLine: 1, wantField: "pbna"},
		{name: "missing type", input: "desc,pba,pbna,prior\nDNA,0.9,0.1,0.1\n", wantLine: 1, wantField: "type"},
		{name: "not a number", input: "type,desc,pba,pbna,prior\nevidence,DNA,high,0.1,0.1\n", wantLine: 2, wantField: "pba"},
		{name: "empty number", input: "type,desc,pba,pbna,prior\nevidence,DNA,0.9,0.1,\n", wantLine: 2, wantField: "prior"},
		{name: "short row", input: "type,desc,pba,pbna,prior\nevidence,DNA,0.9\n", wantLine: 2, wantField: "pbna"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := scenarios.ReadCSV(strings.NewReader(tt.input))
			require.ErrorIs(t, err, scenarios.ErrScenarioFormat)
			var formatErr *scenarios.ScenarioFormatError
			require.True(t, errors.As(err, &formatErr))
			require.Equal(t, tt.wantLine, formatErr.Line)
			require.Equal(t, tt.wantField, formatErr.Field)
		})
	}
}

func TestFromRecordsPreservesOrderWithinPartition(t *testing.T) {
	records := []scenarios.Record{
		{Type: "counter_evidence", Description: "c1", PGivenGuilty: 0.3, PGivenInnocent: 0.6, Prior: 0.4},
		{Type: "evidence", Description: "e1", PGivenGuilty: 0.9, PGivenInnocent: 0.1, Prior: 0.4},
		{Type: "counter_evidence", Description: "c2", PGivenGuilty: 0.2, PGivenInnocent: 0.6, Prior: 0.4},
		{Type: "evidence", Description: "e2", PGivenGuilty: 0.8, PGivenInnocent: 0.1, Prior: 0.4},
	}
	s, skipped, err := scenarios.FromRecords(records)
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Equal(t, 0.4, s.Prior)
	require.Equal(t, "e1", s.Evidence[0].Description)
	require.Equal(t, "e2", s.Evidence[1].Description)
	require.Equal(t, "c1", s.CounterEvidence[0].Description)
	require.Equal(t, "c2", s.CounterEvidence[1].Description)

	if diff := cmp.Diff(s, mustFromRecords(t, scenarios.ToRecords(s))); diff != "" {
		t.Errorf("records round trip mismatch (-want +got):\n%s", diff)
	}
}

func mustFromRecords(t *testing.T, records []scenarios.Record) models.Scenario {
	t.Helper()
	s, _, err := scenarios.FromRecords(records)
	require.NoError(t, err)
	return s
}
