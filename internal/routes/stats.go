package routes

import (
	"net/http"

	pkghttpx "danny-movie-game-server/pkg/httpx"
)

// Stats handles GET /stats: how many movies sit in each review bucket.
func Stats(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Repo == nil {
			writeError(w, r, pkghttpx.ConfigMissing("DATABASE_URL is not set; configure the database connection"))
			return
		}
		counts, err := d.Repo.CountByStatus(r.Context())
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to count movie statuses", err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stats": counts})
	}
}
