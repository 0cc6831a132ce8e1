package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myrjola/bayescalc/internal/bayes"
	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/likelihood"
	"github.com/myrjola/bayescalc/internal/models"
	"github.com/myrjola/bayescalc/internal/probability"
)

const maxJSONBodySize = 1 << 20

type updateResponse struct {
	Prior            float64             `json:"prior"`
	Posterior        float64             `json:"posterior"`
	PosteriorPercent string              `json:"posterior_percent"`
	Conclusion       bayes.Conclusion    `json:"conclusion"`
	Steps            []models.UpdateStep `json:"steps"`
}

// apiUpdate runs a scenario posted as JSON. Out-of-range probabilities are clamped.
func (app *application) apiUpdate(w http.ResponseWriter, r *http.Request) {
	var s models.Scenario
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		app.jsonError(w, r, http.StatusBadRequest, errors.Wrap(err, "decode scenario"))
		return
	}

	result := app.engine.Update(r.Context(), s.Clamped())
	steps := result.Steps
	if steps == nil {
		steps = []models.UpdateStep{}
	}
	app.writeJSON(w, r, http.StatusOK, updateResponse{
		Prior:            result.Prior,
		Posterior:        result.Posterior,
		PosteriorPercent: probability.FormatPercent(result.Posterior),
		Conclusion:       result.Conclusion,
		Steps:            steps,
	})
}

type likelihoodRatioResponse struct {
	LikelihoodRatio float64             `json:"likelihood_ratio"`
	Formatted       string              `json:"formatted"`
	LogScale        float64             `json:"log_scale"`
	PGivenGuilty    float64             `json:"p_given_guilty"`
	PGivenInnocent  float64             `json:"p_given_innocent"`
	Category        likelihood.Category `json:"category"`
}

// apiLikelihoodRatio converts ?lr= or the signed log scale ?scale= to a probability pair and a category.
func (app *application) apiLikelihoodRatio(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var lr float64
	switch {
	case query.Has("lr"):
		v, err := strconv.ParseFloat(query.Get("lr"), 64)
		if err != nil {
			app.jsonError(w, r, http.StatusBadRequest, errors.Wrap(errInvalidNumber, "parse lr",
				slog.String("lr", query.Get("lr"))))
			return
		}
		lr = likelihood.ClampRatio(v)
	case query.Has("scale"):
		v, err := strconv.ParseFloat(query.Get("scale"), 64)
		if err != nil {
			app.jsonError(w, r, http.StatusBadRequest, errors.Wrap(errInvalidNumber, "parse scale",
				slog.String("scale", query.Get("scale"))))
			return
		}
		lr = likelihood.FromLogScale(v)
	default:
		app.jsonError(w, r, http.StatusBadRequest, errors.New("lr or scale query parameter required"))
		return
	}

	pGuilty, pInnocent := likelihood.ToProbabilityPair(lr)
	app.writeJSON(w, r, http.StatusOK, likelihoodRatioResponse{
		LikelihoodRatio: lr,
		Formatted:       probability.FormatLikelihoodRatio(lr),
		LogScale:        likelihood.LogScale(lr),
		PGivenGuilty:    pGuilty,
		PGivenInnocent:  pInnocent,
		Category:        likelihood.Categorize(lr),
	})
}
