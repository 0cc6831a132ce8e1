package main

import (
	"net/http"
	"strconv"

	"github.com/myrjola/bayescalc/internal/likelihood"
	"github.com/myrjola/bayescalc/internal/models"
	"github.com/myrjola/bayescalc/internal/report"
	"github.com/myrjola/bayescalc/internal/scenarios"
	"github.com/shopspring/decimal"
)

const (
	percentInputDecimals = 6
	scaleInputDecimals   = 4
)

// itemView is an evidence row of the scenario form with input-ready values.
type itemView struct {
	Index          int
	Description    string
	PGivenGuilty   string
	PGivenInnocent string
	Scale          string
}

type itemsView struct {
	Prefix   string
	Legend   string
	Items    []itemView
	LogScale bool
}

func newItemsView(prefix, legend string, items []itemView, logScale bool) itemsView {
	return itemsView{Prefix: prefix, Legend: legend, Items: items, LogScale: logScale}
}

type homeTemplateData struct {
	BaseTemplateData

	Templates       []string
	Formats         []report.Format
	Prior           string
	LogScale        bool
	Evidence        []itemView
	CounterEvidence []itemView
	Report          report.Report
}

// percentInput renders p as a percentage for a number input without float noise such as 70.00000000000001.
func percentInput(p float64) string {
	return decimal.NewFromFloat(p * 100).Round(percentInputDecimals).String() //nolint:mnd // percent
}

func scaleInput(lr float64) string {
	return strconv.FormatFloat(
		decimal.NewFromFloat(likelihood.LogScale(lr)).Round(scaleInputDecimals).InexactFloat64(), 'f', -1, 64)
}

func newItemViews(items []models.EvidenceItem) []itemView {
	views := make([]itemView, len(items))
	for i, item := range items {
		views[i] = itemView{
			Index:          i,
			Description:    item.Description,
			PGivenGuilty:   percentInput(item.PGivenGuilty),
			PGivenInnocent: percentInput(item.PGivenInnocent),
			Scale:          scaleInput(item.LikelihoodRatio()),
		}
	}
	return views
}

func (app *application) homeData(r *http.Request) homeTemplateData {
	ctx := r.Context()
	s, title := app.sessionScenario(ctx)
	return homeTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Templates:        scenarios.ListTemplates(),
		Formats:          report.Formats(),
		Prior:            percentInput(s.Prior),
		LogScale:         app.sessionManager.GetBool(ctx, logScaleSessionKey),
		Evidence:         newItemViews(s.Evidence),
		CounterEvidence:  newItemViews(s.CounterEvidence),
		Report:           report.New(title, app.engine.Update(ctx, s)),
	}
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "home", app.homeData(r))
}
