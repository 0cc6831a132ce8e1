// Package bayes updates a probability of guilt with a chain of conditionally independent evidence items.
package bayes

import (
	"context"
	"log/slog"

	"github.com/myrjola/bayescalc/internal/models"
)

// Result is the posterior trajectory of a scenario.
type Result struct {
	Prior      float64             `json:"prior"`
	Steps      []models.UpdateStep `json:"steps"`
	Posterior  float64             `json:"posterior"`
	Conclusion Conclusion          `json:"conclusion"`
}

// PosteriorPercent returns the final posterior in percent.
func (r Result) PosteriorPercent() float64 {
	return r.Posterior * 100 //nolint:mnd // percent
}

// Step applies Bayes' rule once with prior as the current probability of guilt.
//
// The probabilities are used as is. When both terms of the denominator are zero the posterior is 0.
func Step(prior, pGivenGuilty, pGivenInnocent float64) float64 {
	numerator := pGivenGuilty * prior
	denominator := numerator + pGivenInnocent*(1-prior)
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Update chains [Step] over the evidence and then the counter-evidence of s, each in input order.
func Update(s models.Scenario) Result {
	return update(s, func(models.UpdateStep) {})
}

func update(s models.Scenario, observe func(models.UpdateStep)) Result {
	items := s.Items()
	steps := make([]models.UpdateStep, 0, len(items))
	posterior := s.Prior
	for _, item := range items {
		step := models.UpdateStep{
			Kind:           item.Kind,
			Label:          models.StepLabel(item.Kind, item.Description),
			PGivenGuilty:   item.PGivenGuilty,
			PGivenInnocent: item.PGivenInnocent,
			PriorBefore:    posterior,
			PosteriorAfter: Step(posterior, item.PGivenGuilty, item.PGivenInnocent),
		}
		observe(step)
		steps = append(steps, step)
		posterior = step.PosteriorAfter
	}
	return Result{
		Prior:      s.Prior,
		Steps:      steps,
		Posterior:  posterior,
		Conclusion: Interpret(posterior * 100), //nolint:mnd // percent
	}
}

// Engine is [Update] with debug logging of every step.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With("source", "bayes.Engine")}
}

func (e *Engine) Update(ctx context.Context, s models.Scenario) Result {
	result := update(s, func(step models.UpdateStep) {
		e.logger.LogAttrs(ctx, slog.LevelDebug, "update step",
			slog.String("label", step.Label),
			slog.Float64("prior_before", step.PriorBefore),
			slog.Float64("posterior_after", step.PosteriorAfter))
	})
	e.logger.LogAttrs(ctx, slog.LevelDebug, "scenario updated",
		slog.Float64("prior", result.Prior),
		slog.Float64("posterior", result.Posterior),
		slog.Int("steps", len(result.Steps)),
		slog.String("conclusion", string(result.Conclusion)))
	return result
}
