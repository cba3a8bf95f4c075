package routes

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	pkghttpx "danny-movie-game-server/pkg/httpx"
)

const (
	topGrossingTTL       = 24 * time.Hour
	topGrossingFirstYear = 1989
	topGrossingPerYear   = 10
)

// TopGrossing handles GET /titles/top-grossing: a title corpus of the
// top-grossing movies per year since 1989, for client-side matching
// against guesses of well-known films. Building it costs one provider
// call per year, so the result is cached for a day and failed years are
// skipped rather than failing the list.
func TopGrossing(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d.TMDB == nil {
			writeError(w, r, pkghttpx.ConfigMissing("TMDB_API_KEY is not set; configure the discover provider"))
			return
		}

		cacheKey := "titles:topgrossing"
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			writeCached(w, cached)
			return
		}

		lastYear := time.Now().UTC().Year()
		seen := make(map[string]struct{})
		var titles []string
		// Recent years first; a partial build still favors movies
		// players are likely to guess.
		for year := lastYear; year >= topGrossingFirstYear; year-- {
			yearTitles, err := d.TMDB.TopGrossingByYear(ctx, year, topGrossingPerYear)
			if err != nil {
				log.Warn().Int("year", year).Err(err).Msg("top-grossing fetch failed, skipping year")
				continue
			}
			for _, title := range yearTitles {
				if _, dup := seen[title]; dup {
					continue
				}
				seen[title] = struct{}{}
				titles = append(titles, title)
			}
		}
		sort.Strings(titles)
		if titles == nil {
			titles = []string{}
		}

		b, _ := json.Marshal(map[string]any{"titles": titles})
		// A fully-failed build stays uncached so the next request retries.
		if len(titles) > 0 {
			_ = d.Cache.Set(ctx, cacheKey, string(b), topGrossingTTL)
		}
		writeCached(w, string(b))
	}
}
