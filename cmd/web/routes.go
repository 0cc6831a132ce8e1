package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/myrjola/bayescalc/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	staticFiles, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err) // embedded directory is always present
	}
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", http.FileServerFS(staticFiles))))

	session := alice.New(app.sessionManager.LoadAndSave, app.noSurf, commonContext)
	api := alice.New(app.noSurf)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /scenario", session.ThenFunc(app.updateScenario))
	mux.Handle("POST /scenario/template", session.ThenFunc(app.loadTemplate))
	mux.Handle("POST /scenario/upload", session.ThenFunc(app.uploadScenario))
	mux.Handle("GET /scenario/download", session.ThenFunc(app.downloadScenario))
	mux.Handle("GET /report/{format}", session.ThenFunc(app.downloadReport))

	mux.Handle("POST /api/update", api.ThenFunc(app.apiUpdate))
	mux.Handle("GET /api/likelihood-ratio", api.ThenFunc(app.apiLikelihoodRatio))
	mux.HandleFunc("GET /api/healthy", app.healthy)

	mux.Handle("/", session.ThenFunc(app.notFound))

	common := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	return common.Then(timeoutHandler(mux, app.requestTimeout))
}
