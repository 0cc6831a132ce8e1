package main

import (
	"context"
	"encoding/gob"

	"github.com/myrjola/bayescalc/internal/models"
)

const (
	scenarioSessionKey = "scenario"
	titleSessionKey    = "title"
	logScaleSessionKey = "logScale"
	flashSessionKey    = "flash"
)

// customScenarioTitle names a scenario that was entered by hand.
const customScenarioTitle = "Custom scenario"

func init() {
	gob.Register(models.Scenario{})
}

// sessionScenario returns the scenario of the session and its title, or the default scenario for a new session.
func (app *application) sessionScenario(ctx context.Context) (models.Scenario, string) {
	s, ok := app.sessionManager.Get(ctx, scenarioSessionKey).(models.Scenario)
	if !ok {
		return models.NewDefaultScenario(), customScenarioTitle
	}
	title := app.sessionManager.GetString(ctx, titleSessionKey)
	if title == "" {
		title = customScenarioTitle
	}
	return s, title
}

func (app *application) putScenario(ctx context.Context, s models.Scenario, title string) {
	app.sessionManager.Put(ctx, scenarioSessionKey, s)
	app.sessionManager.Put(ctx, titleSessionKey, title)
}

func (app *application) flash(ctx context.Context, message string) {
	app.sessionManager.Put(ctx, flashSessionKey, message)
}
