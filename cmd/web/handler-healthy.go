package main

import (
	"net/http"

	"github.com/myrjola/bayescalc/internal/errors"
)

type healthResponse struct {
	Status string `json:"status"`
	// Sessions is the number of active sessions when the sqlite session store is in use.
	Sessions *int `json:"sessions,omitempty"`
}

// healthy responds with a JSON object indicating that the server is healthy.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Sessions: nil}
	if app.db != nil {
		count, err := app.db.ActiveSessions(r.Context())
		if err != nil {
			app.serverError(w, r, errors.Wrap(err, "count active sessions"))
			return
		}
		resp.Sessions = &count
	}
	app.writeJSON(w, r, http.StatusOK, resp)
}
