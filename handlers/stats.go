// fightclub/handlers/stats.go
package handlers

import "net/http"

// HandleSiteStats serves the usage counters. Public.
func HandleSiteStats(w http.ResponseWriter, r *http.Request, app App) {
	stats, err := app.DB().GetSiteStats()
	if err != nil {
		respondError(w, app, err)
		return
	}
	respondJSON(w, http.StatusOK, stats, app)
}
