package routes

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"danny-movie-game-server/internal/game"
)

const (
	autocompleteTTL   = 5 * time.Minute
	autocompleteLimit = 30
)

// Autocomplete handles GET /autocomplete?q=. Suggestions degrade to an
// empty list on any provider trouble; the typeahead is never worth a
// client-visible error.
func Autocomplete(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" || d.OMDB == nil {
			writeJSON(w, http.StatusOK, map[string]any{"suggestions": []string{}})
			return
		}

		cacheKey := "autocomplete:" + strings.ToLower(query)
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			writeCached(w, cached)
			return
		}

		titles, err := d.OMDB.SearchTitles(ctx, query)
		if err != nil {
			log.Warn().Str("query", query).Err(err).Msg("autocomplete search failed")
			writeJSON(w, http.StatusOK, map[string]any{"suggestions": []string{}})
			return
		}

		ranked := game.RankSuggestions(query, titles, autocompleteLimit)
		if ranked == nil {
			ranked = []string{}
		}
		b, _ := json.Marshal(map[string]any{"suggestions": ranked})
		_ = d.Cache.Set(ctx, cacheKey, string(b), autocompleteTTL)
		writeCached(w, string(b))
	}
}
