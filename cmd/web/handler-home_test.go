package main

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/bayescalc/internal/bayes"
	"github.com/myrjola/bayescalc/internal/report"
	"github.com/stretchr/testify/require"
)

func TestHome(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t, nil)
	client := server.Client()

	resp, err := client.Get(ctx, "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	csp := resp.Header.Get("Content-Security-Policy")
	require.Contains(t, csp, "'nonce-")
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)

	nonce, ok := doc.Find("head script").Attr("nonce")
	require.True(t, ok)
	require.NotEmpty(t, nonce)

	require.Equal(t, "10", doc.Find("#prior").AttrOr("value", ""))
	require.Equal(t, "Evidence 1", doc.Find(`input[name="evidence-0-desc"]`).AttrOr("value", ""))
	require.Equal(t, "70", doc.Find(`input[name="evidence-0-pba"]`).AttrOr("value", ""))
	require.Equal(t, "20", doc.Find(`input[name="evidence-0-pbna"]`).AttrOr("value", ""))

	// 0.1 * 0.7 / (0.07 + 0.9 * 0.2) = 0.28
	require.Equal(t, "28%", doc.Find("#posterior").Text())
	require.Equal(t, string(bayes.UnlikelyOrInnocent), doc.Find("#conclusion").Text())
	require.Equal(t, 1, doc.Find("#steps tbody tr").Length())
	require.Equal(t, len(report.Columns), doc.Find("#steps thead th").Length())

	require.Equal(t, 0, doc.Find("posterior-gauge").Length())
	require.Equal(t, 1, doc.Find("#results .gauge").Length())
	require.Equal(t, 0, doc.Find("[as]").Length())
	require.Positive(t, doc.Find("button.button-primary").Length())

	var templates []string
	doc.Find("#template option").Each(func(_ int, s *goquery.Selection) {
		templates = append(templates, s.Text())
	})
	require.Equal(t, []string{"Site A", "Transit stop B"}, templates)
}

func TestNotFound(t *testing.T) {
	server := startTestServer(t, nil)
	resp, err := server.Client().Get(t.Context(), "/does-not-exist")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStaticFiles(t *testing.T) {
	server := startTestServer(t, nil)
	resp, err := server.Client().Get(t.Context(), "/static/main.css")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/css"))
	require.Contains(t, resp.Header.Get("Cache-Control"), "immutable")
}

func TestCSRFProtection(t *testing.T) {
	server := startTestServer(t, nil)
	resp, err := http.PostForm(server.URL()+"/scenario", url.Values{"prior": {"50"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
