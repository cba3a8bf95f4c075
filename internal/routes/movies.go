package routes

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"danny-movie-game-server/internal/model"
	pkghttpx "danny-movie-game-server/pkg/httpx"
)

type movieListItem struct {
	MovieID string `json:"movieId"`
	Status  string `json:"status"`
	Title   string `json:"title"`
	Year    string `json:"year,omitempty"`
	Poster  string `json:"poster,omitempty"`
	Plot    string `json:"plot,omitempty"`
}

// Movies handles GET /movies?status=: the review rows in one bucket,
// enriched with provider metadata where the id is an IMDb id and the
// provider is configured. Enrichment failures degrade to the bare row.
func Movies(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		status := r.URL.Query().Get("status")
		switch status {
		case model.StatusLiked, model.StatusHated, model.StatusUnseen:
		default:
			writeError(w, r, pkghttpx.BadRequest("invalid status, expected Liked, Hated or Unseen", nil))
			return
		}

		if d.Repo == nil {
			writeError(w, r, pkghttpx.ConfigMissing("DATABASE_URL is not set; configure the database connection"))
			return
		}

		rows, err := d.Repo.ListByStatus(ctx, status)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list movies", err))
			return
		}

		resolve := metadataResolver(d)
		movies := make([]movieListItem, 0, len(rows))
		for _, ms := range rows {
			item := movieListItem{
				MovieID: ms.MovieID,
				Status:  ms.Status,
				Title:   "Movie ID: " + ms.MovieID,
			}
			if d.OMDB != nil && strings.HasPrefix(ms.MovieID, "tt") {
				details, err := resolve(ctx, ms.MovieID)
				if err != nil {
					log.Warn().Str("movie_id", ms.MovieID).Err(err).Msg("movie enrichment failed, returning bare row")
				} else {
					if details.Title != "" {
						item.Title = details.Title
					}
					item.Year = details.Year
					item.Poster = details.PosterURL
					item.Plot = details.Plot
				}
			}
			movies = append(movies, item)
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"movies": movies,
			"count":  len(movies),
		})
	}
}
