package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/myrjola/bayescalc/internal/errors"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, err error) {
	attrs := []slog.Attr{slog.Int("status", status)}
	if err != nil {
		attrs = append(attrs, errors.SlogError(err))
	}
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status), attrs...)
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound, nil)
}

// writeJSON encodes v before writing anything so that encoding failures can still become a 500.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		app.serverError(w, r, errors.Wrap(err, "encode json"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (app *application) jsonError(w http.ResponseWriter, r *http.Request, status int, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status), errors.SlogError(err))
	app.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}
