package main

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/bayescalc/internal/bayes"
	"github.com/myrjola/bayescalc/internal/models"
	"github.com/myrjola/bayescalc/internal/scenarios"
	"github.com/stretchr/testify/require"
)

func dnaForm() url.Values {
	return url.Values{
		"prior":           {"10"},
		"evidence_count":  {"1"},
		"counter_count":   {"0"},
		"evidence-0-desc": {"DNA"},
		"evidence-0-pba":  {"95"},
		"evidence-0-pbna": {"5"},
	}
}

func TestUpdateScenario(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t, nil)
	client := server.Client()

	doc, err := client.SubmitForm(ctx, "/", "/scenario", dnaForm())
	require.NoError(t, err)
	require.Equal(t, "67.857143%", doc.Find("#posterior").Text())
	require.Equal(t, string(bayes.SubstantiallySupported), doc.Find("#conclusion").Text())
	require.Equal(t, "DNA", doc.Find(`input[name="evidence-0-desc"]`).AttrOr("value", ""))

	t.Run("add and remove rows", func(t *testing.T) {
		form := dnaForm()
		form.Set("action", "add-counter")
		doc, err = client.SubmitForm(ctx, "/", "/scenario", form)
		require.NoError(t, err)
		require.Equal(t, "Counter-evidence 1", doc.Find(`input[name="counter-0-desc"]`).AttrOr("value", ""))
		require.Equal(t, 2, doc.Find("#steps tbody tr").Length())

		form.Set("counter_count", "1")
		form.Set("action", "remove-evidence")
		doc, err = client.SubmitForm(ctx, "/", "/scenario", form)
		require.NoError(t, err)
		require.Equal(t, 1, doc.Find(".items-evidence .item").Length(), "at least one evidence item is kept")
	})

	t.Run("htmx request gets the results fragment", func(t *testing.T) {
		form := dnaForm()
		form.Set("evidence-0-pba", "50")
		form.Set("evidence-0-pbna", "50")
		doc, err = client.SubmitFormHTMX(ctx, "/", "/scenario", form)
		require.NoError(t, err)
		require.Equal(t, 0, doc.Find("form").Length())
		require.Equal(t, 1, doc.Find("section#results").Length())
		require.Equal(t, "10%", doc.Find("#posterior").Text())
	})

	t.Run("invalid number", func(t *testing.T) {
		form := dnaForm()
		form.Set("prior", "ten")
		_, err = client.SubmitForm(ctx, "/", "/scenario", form)
		require.Error(t, err)
	})

	t.Run("log scale mode", func(t *testing.T) {
		form := dnaForm()
		form.Set("mode", "log")
		doc, err = client.SubmitForm(ctx, "/", "/scenario", form)
		require.NoError(t, err)
		require.Equal(t, 1, doc.Find(`input[name="evidence-0-scale"]`).Length())
		require.Equal(t, 0, doc.Find(`input[name="evidence-0-pba"]`).Length())

		doc, err = client.SubmitForm(ctx, "/", "/scenario", url.Values{
			"evidence_count":   {"1"},
			"evidence-0-desc":  {"DNA"},
			"evidence-0-scale": {"2"},
		})
		require.NoError(t, err)
		require.Equal(t, "2", doc.Find(`input[name="evidence-0-scale"]`).AttrOr("value", ""))
		require.Equal(t, "100", doc.Find("#steps tbody tr td").Eq(3).Text())

		doc, err = client.SubmitForm(ctx, "/", "/scenario", url.Values{"mode": {"percent"}})
		require.NoError(t, err)
		require.Equal(t, 1, doc.Find(`input[name="evidence-0-pba"]`).Length())
	})
}

func TestLoadTemplate(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t, nil)
	client := server.Client()

	doc, err := client.SubmitForm(ctx, "/", "/scenario/template", url.Values{"template": {"Site A"}})
	require.NoError(t, err)
	require.Equal(t, string(bayes.BeyondReasonableDoubt), doc.Find("#conclusion").Text())
	require.Equal(t, 8, doc.Find("#steps tbody tr").Length())
	require.Equal(t, "Site A", doc.Find("#template option[selected]").Text())

	doc, err = client.SubmitForm(ctx, "/", "/scenario/template", url.Values{"template": {"Nowhere"}})
	require.NoError(t, err)
	require.Contains(t, doc.Find(".flash").Text(), `Unknown template "Nowhere"`)
	require.Equal(t, 8, doc.Find("#steps tbody tr").Length(), "previous scenario is kept")

	doc, err = client.GetDoc(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, 0, doc.Find(".flash").Length(), "flash is shown once")
}

func TestUploadAndDownloadScenario(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t, nil)
	client := server.Client()

	uploaded := models.NewScenario(0.25,
		[]models.EvidenceItem{
			models.NewEvidenceItem("Witness", 0.7, 0.2),
			models.NewEvidenceItem("Fingerprint, partial", 0.6, 0.02),
		},
		[]models.EvidenceItem{models.NewEvidenceItem("Alibi", 0.4, 0.7)},
	)
	var csvFile strings.Builder
	require.NoError(t, scenarios.WriteCSV(&csvFile, uploaded))

	doc, err := client.UploadFile(ctx, "/", "/scenario/upload", "scenario", "Burglary case.csv",
		[]byte(csvFile.String()))
	require.NoError(t, err)
	require.Equal(t, 3, doc.Find("#steps tbody tr").Length())
	require.Equal(t, "25", doc.Find("#prior").AttrOr("value", ""))

	resp, err := client.Get(ctx, "/scenario/download")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, scenarios.ContentType, resp.Header.Get("Content-Type"))
	require.Equal(t, `attachment; filename="burglary-case.csv"`, resp.Header.Get("Content-Disposition"))

	downloaded, skipped, err := scenarios.ReadCSV(resp.Body)
	require.NoError(t, err)
	require.Empty(t, skipped)
	if diff := cmp.Diff(uploaded, downloaded); diff != "" {
		t.Errorf("downloaded scenario mismatch (-want +got):\n%s", diff)
	}
}

func TestUploadScenario_CounterEvidenceOnly(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t, nil)
	client := server.Client()

	content := "type,desc,pba,pbna,prior\ncounter_evidence,Alibi,0.4,0.7,0.5\n"
	doc, err := client.UploadFile(ctx, "/", "/scenario/upload", "scenario", "alibi.csv", []byte(content))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("#steps tbody tr").Length())
	posterior := doc.Find("#posterior").Text()

	doc, err = client.SubmitForm(ctx, "/", "/scenario", url.Values{
		"prior":          {"50"},
		"evidence_count": {"0"},
		"counter_count":  {"1"},
	})
	require.NoError(t, err)
	require.Equal(t, 0, doc.Find(".items-evidence .item").Length(), "no evidence item is added")
	require.Equal(t, 1, doc.Find("#steps tbody tr").Length())
	require.Equal(t, posterior, doc.Find("#posterior").Text())

	doc, err = client.SubmitForm(ctx, "/", "/scenario", url.Values{"action": {"add-evidence"}})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find(".items-evidence .item").Length())
	require.Equal(t, "Evidence 1", doc.Find(`input[name="evidence-0-desc"]`).AttrOr("value", ""))
}

func TestUploadScenario_Errors(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t, nil)
	client := server.Client()

	tests := []struct {
		name    string
		content string
		flash   string
	}{
		{
			name:    "missing column",
			content: "type,desc,pba,prior\nevidence,DNA,0.9,0.1\n",
			flash:   "malformed scenario",
		},
		{
			name:    "bad number",
			content: "type,desc,pba,pbna,prior\nevidence,DNA,high,0.1,0.1\n",
			flash:   "line 2",
		},
		{
			name:    "unknown type",
			content: "type,desc,pba,pbna,prior\nevidence,DNA,0.9,0.1,0.1\nalibi,Seen elsewhere,0.5,0.5,0.1\n",
			flash:   "Skipped 1 rows",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := client.UploadFile(ctx, "/", "/scenario/upload", "scenario", "case.csv", []byte(tt.content))
			require.NoError(t, err)
			require.Contains(t, doc.Find(".flash").Text(), tt.flash)
		})
	}
}

func TestDownloadScenario_Default(t *testing.T) {
	server := startTestServer(t, nil)
	resp, err := server.Client().Get(t.Context(), "/scenario/download")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "type,desc,pba,pbna,prior\nevidence,Evidence 1,0.7,0.2,0.1\n", string(body))
}
