package report

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/models"
	"github.com/myrjola/bayescalc/internal/ssr"
)

//go:embed templates/report.gohtml
var templateFS embed.FS

// HTMLRenderer writes a standalone HTML document.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() HTMLRenderer {
	return HTMLRenderer{
		tmpl: template.Must(template.New("report.gohtml").Funcs(template.FuncMap{
			"isCounterEvidence": func(kind models.EvidenceKind) bool {
				return kind == models.KindCounterEvidence
			},
		}).ParseFS(templateFS, "templates/report.gohtml")),
	}
}

func (r HTMLRenderer) Render(_ context.Context, w io.Writer, rep Report) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "report", struct {
		Report
		Columns []string
	}{Report: rep, Columns: Columns}); err != nil {
		return errors.Wrap(err, "execute report template")
	}
	if err := ssr.ExpandDocument(w, &buf); err != nil {
		return errors.Wrap(err, "expand custom elements")
	}
	return nil
}

func (r HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (r HTMLRenderer) Extension() string { return "html" }
