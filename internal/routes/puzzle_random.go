package routes

import (
	"net/http"

	"danny-movie-game-server/internal/game"
	pkghttpx "danny-movie-game-server/pkg/httpx"
)

// PuzzleRandom handles GET /puzzle/random: a practice round with no
// date association and no leaderboard tie-in.
func PuzzleRandom(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d.Repo == nil {
			writeError(w, r, pkghttpx.ConfigMissing("DATABASE_URL is not set; configure the database connection"))
			return
		}
		if d.OMDB == nil {
			writeError(w, r, pkghttpx.ConfigMissing("OMDB_API_KEY is not set; configure the metadata provider"))
			return
		}

		eligible, err := d.Repo.ListEligible(ctx)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list reviewed movies", err))
			return
		}

		status, details, err := game.SelectRandom(ctx, eligible, metadataResolver(d), d.Policy)
		if err != nil {
			writeSelectError(w, r, err, "failed to pick a random movie")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"movieId": status.MovieID,
			"status":  status.Status,
			"year":    details.Year,
			"title":   details.Title,
			"poster":  details.PosterURL,
			"plot":    details.Plot,
		})
	}
}
