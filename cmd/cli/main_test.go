package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/bayescalc/internal/bayes"
	"github.com/myrjola/bayescalc/internal/likelihood"
	"github.com/myrjola/bayescalc/internal/models"
	"github.com/myrjola/bayescalc/internal/report"
	"github.com/myrjola/bayescalc/internal/scenarios"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestTemplates(t *testing.T) {
	out, _, err := execute(t, "templates")
	require.NoError(t, err)
	require.Equal(t, "Site A\nTransit stop B\n", out)
}

func TestTemplatesExport(t *testing.T) {
	out, _, err := execute(t, "templates", "export", "Transit stop B")
	require.NoError(t, err)

	got, skipped, err := scenarios.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	require.Empty(t, skipped)
	want, err := scenarios.LoadTemplate("Transit stop B")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exported template mismatch (-want +got):\n%s", diff)
	}

	_, _, err = execute(t, "templates", "export", "Nowhere")
	require.ErrorIs(t, err, scenarios.ErrTemplateNotFound)
}

func TestUpdate(t *testing.T) {
	t.Run("template as ascii", func(t *testing.T) {
		out, _, err := execute(t, "update", "--template", "Site A")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "Site A\n"))
		require.Contains(t, out, string(bayes.BeyondReasonableDoubt))
		require.Contains(t, out, "┌")
	})

	t.Run("csv with prior override as markdown", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "case.csv")
		var buf bytes.Buffer
		require.NoError(t, scenarios.WriteCSV(&buf, models.NewScenario(0.5,
			[]models.EvidenceItem{models.NewEvidenceItem("DNA", 0.95, 0.05)}, nil)))
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

		out, _, err := execute(t, "update", "--csv", path, "--prior", "0.1", "--format", "markdown", "--title", "Case")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "# Case\n"))
		require.Contains(t, out, "**Prior:** 10%")
		require.Contains(t, out, "67.857143%")
		require.Contains(t, out, string(bayes.SubstantiallySupported))
	})

	t.Run("skipped records are logged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "case.csv")
		content := "type,desc,pba,pbna,prior\nevidence,DNA,0.9,0.1,0.1\nalibi,Elsewhere,0.5,0.5,0.1\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, stderr, err := execute(t, "update", "--csv", path)
		require.NoError(t, err)
		require.Contains(t, stderr, "skipped record with unknown type")
		require.Contains(t, stderr, "type=alibi")
	})

	t.Run("csv report to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.csv")
		out, _, err := execute(t, "update", "--template", "Transit stop B", "--format", "csv", "--output", path)
		require.NoError(t, err)
		require.Empty(t, out)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(content), strings.Join(report.Columns, ",")))
	})

	errorTests := []struct {
		name string
		args []string
	}{
		{name: "no source", args: []string{"update"}},
		{name: "both sources", args: []string{"update", "--template", "Site A", "--csv", "x.csv"}},
		{name: "unknown format", args: []string{"update", "--template", "Site A", "--format", "docx"}},
		{name: "missing file", args: []string{"update", "--csv", filepath.Join(t.TempDir(), "missing.csv")}},
		{name: "malformed csv", args: []string{"update", "--csv", writeFile(t, "type,desc\nevidence,DNA\n")}},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestUpdate_MalformedCSVIsFormatError(t *testing.T) {
	_, _, err := execute(t, "update", "--csv", writeFile(t, "type,desc\nevidence,DNA\n"))
	require.ErrorIs(t, err, scenarios.ErrScenarioFormat)
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		percent string
		want    bayes.Conclusion
	}{
		{percent: "95", want: bayes.BeyondReasonableDoubt},
		{percent: "67.857143", want: bayes.SubstantiallySupported},
		{percent: "50", want: bayes.PreponderanceOfEvidence},
		{percent: "10", want: bayes.UnlikelyOrInnocent},
	}
	for _, tt := range tests {
		t.Run(tt.percent, func(t *testing.T) {
			out, _, err := execute(t, "interpret", tt.percent)
			require.NoError(t, err)
			require.Equal(t, string(tt.want)+"\n", out)
		})
	}

	_, _, err := execute(t, "interpret", "many")
	require.Error(t, err)
}

func TestLR(t *testing.T) {
	out, _, err := execute(t, "lr", "convert", "20")
	require.NoError(t, err)
	require.Contains(t, out, string(likelihood.StrongGuilt))
	require.Contains(t, out, "1.3010")

	out, _, err = execute(t, "lr", "scale", "-3")
	require.NoError(t, err)
	require.Contains(t, out, string(likelihood.VeryStrongInnocence))
	require.Contains(t, out, "-3.0000")

	_, _, err = execute(t, "lr", "convert", "strong")
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud", "templates")
	require.Error(t, err)
}
