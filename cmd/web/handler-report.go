package main

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/report"
)

// downloadReport renders the session scenario's report in the format named by the path.
func (app *application) downloadReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format := r.PathValue("format")
	renderer, err := report.ForFormat(format)
	if err != nil {
		app.clientError(w, r, http.StatusNotFound, err)
		return
	}

	s, title := app.sessionScenario(ctx)
	rep := report.New(title, app.engine.Update(ctx, s))
	var buf bytes.Buffer
	if err = renderer.Render(ctx, &buf, rep); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render report", slog.String("format", format)))
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", attachment(title, renderer.Extension()))
	_, _ = buf.WriteTo(w)
}
