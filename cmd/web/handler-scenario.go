package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/models"
	"github.com/myrjola/bayescalc/internal/report"
	"github.com/myrjola/bayescalc/internal/scenarios"
)

const (
	maxUploadSize = 1 << 20
	formFileField = "scenario"
)

var errInvalidNumber = errors.NewSentinel("invalid number")

// parsePercent parses a form percentage into a probability. An empty value returns fallback.
func parsePercent(form url.Values, key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return fallback, nil
	}
	pct, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errInvalidNumber, "parse percent", slog.String("field", key), slog.String("value", v))
	}
	return pct / 100, nil //nolint:mnd // percent
}

func parseCount(form url.Values, key string, fallback int) (int, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrap(errInvalidNumber, "parse count", slog.String("field", key), slog.String("value", v))
	}
	return n, nil
}

// parseItems reads n rows with the given prefix. Rows missing from the form keep their current values, rows
// beyond the current items are filled with fill.
func parseItems(
	form url.Values,
	prefix string,
	n int,
	current []models.EvidenceItem,
	logScale bool,
	fill func(int) models.EvidenceItem,
) ([]models.EvidenceItem, error) {
	items := make([]models.EvidenceItem, n)
	for i := range items {
		item := fill(i + 1)
		if i < len(current) {
			item = current[i]
		}
		key := func(field string) string { return fmt.Sprintf("%s-%d-%s", prefix, i, field) }
		if desc, ok := form[key("desc")]; ok && len(desc) > 0 {
			item.Description = desc[0]
		}

		if logScale {
			if v := strings.TrimSpace(form.Get(key("scale"))); v != "" {
				scale, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, errors.Wrap(errInvalidNumber, "parse scale",
						slog.String("field", key("scale")), slog.String("value", v))
				}
				item = models.EvidenceFromLogScale(item.Description, scale)
			}
			items[i] = item
			continue
		}

		var err error
		if item.PGivenGuilty, err = parsePercent(form, key("pba"), item.PGivenGuilty); err != nil {
			return nil, err
		}
		if item.PGivenInnocent, err = parsePercent(form, key("pbna"), item.PGivenInnocent); err != nil {
			return nil, err
		}
		items[i] = item.Clamped()
	}
	return items, nil
}

// parseScenarioForm applies the scenario form to current. logScale tells which inputs the form was rendered with.
func parseScenarioForm(form url.Values, current models.Scenario, logScale bool) (models.Scenario, error) {
	prior, err := parsePercent(form, "prior", current.Prior)
	if err != nil {
		return models.Scenario{}, err
	}
	var nEvidence, nCounter int
	if nEvidence, err = parseCount(form, "evidence_count", len(current.Evidence)); err != nil {
		return models.Scenario{}, err
	}
	if nCounter, err = parseCount(form, "counter_count", len(current.CounterEvidence)); err != nil {
		return models.Scenario{}, err
	}
	nEvidence = max(current.MinEvidence(), min(models.MaxEvidence, nEvidence))
	nCounter = max(models.MinCounterEvidence, min(models.MaxCounterEvidence, nCounter))

	var evidence, counterEvidence []models.EvidenceItem
	if evidence, err = parseItems(form, "evidence", nEvidence, current.Evidence, logScale,
		models.DefaultEvidence); err != nil {
		return models.Scenario{}, err
	}
	if counterEvidence, err = parseItems(form, "counter", nCounter, current.CounterEvidence, logScale,
		models.DefaultCounterEvidence); err != nil {
		return models.Scenario{}, err
	}
	s := models.NewScenario(prior, evidence, counterEvidence)

	switch form.Get("action") {
	case "add-evidence":
		s = s.Resize(len(s.Evidence)+1, len(s.CounterEvidence))
	case "remove-evidence":
		s = s.Resize(len(s.Evidence)-1, len(s.CounterEvidence))
	case "add-counter":
		s = s.Resize(len(s.Evidence), len(s.CounterEvidence)+1)
	case "remove-counter":
		s = s.Resize(len(s.Evidence), len(s.CounterEvidence)-1)
	}
	return s, nil
}

// updateScenario stores the submitted scenario. htmx requests get the results fragment, other requests are
// redirected back to the form.
func (app *application) updateScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest, errors.Wrap(err, "parse form"))
		return
	}
	current, title := app.sessionScenario(ctx)
	wasLogScale := app.sessionManager.GetBool(ctx, logScaleSessionKey)
	s, err := parseScenarioForm(r.PostForm, current, wasLogScale)
	if err != nil {
		app.clientError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if title != customScenarioTitle && !s.Equal(current) {
		title = customScenarioTitle
	}
	app.putScenario(ctx, s, title)

	logScale := wasLogScale
	if mode := r.PostForm.Get("mode"); mode != "" {
		logScale = mode == "log"
	}
	app.sessionManager.Put(ctx, logScaleSessionKey, logScale)

	h := app.htmx.NewHandler(w, r)
	if h.IsHxRequest() {
		if logScale != wasLogScale {
			// The inputs themselves change so the whole page is reloaded.
			w.Header().Set("HX-Refresh", "true")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		app.renderTemplate(w, r, http.StatusOK, "home", "results", report.New(title, app.engine.Update(ctx, s)))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) loadTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PostFormValue("template")
	s, err := scenarios.LoadTemplate(name)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "template not found", errors.SlogError(err))
		app.flash(ctx, fmt.Sprintf("Unknown template %q.", name))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	app.putScenario(ctx, s, name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) uploadScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile(formFileField)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "missing scenario file", errors.SlogError(err))
		app.flash(ctx, "Choose a scenario CSV file to upload.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	var (
		s       models.Scenario
		skipped []scenarios.Record
	)
	if s, skipped, err = scenarios.ReadCSV(file); err != nil {
		var formatErr *scenarios.ScenarioFormatError
		if !errors.As(err, &formatErr) {
			app.serverError(w, r, errors.Wrap(err, "read scenario csv"))
			return
		}
		app.logger.LogAttrs(ctx, slog.LevelDebug, "invalid scenario csv", errors.SlogError(err))
		app.flash(ctx, "Could not load scenario: "+formatErr.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	app.putScenario(ctx, s, strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)))
	if len(skipped) > 0 {
		app.flash(ctx, fmt.Sprintf("Skipped %d rows with an unknown type.", len(skipped)))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) downloadScenario(w http.ResponseWriter, r *http.Request) {
	s, title := app.sessionScenario(r.Context())
	var buf bytes.Buffer
	if err := scenarios.WriteCSV(&buf, s); err != nil {
		app.serverError(w, r, errors.Wrap(err, "write scenario csv"))
		return
	}
	w.Header().Set("Content-Type", scenarios.ContentType)
	w.Header().Set("Content-Disposition", attachment(title, "csv"))
	_, _ = io.Copy(w, &buf)
}

// attachment returns a Content-Disposition header value with a file name derived from title.
func attachment(title, extension string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, strings.ToLower(title))
	if name == "" {
		name = "scenario"
	}
	return fmt.Sprintf("attachment; filename=%q", name+"."+extension)
}
