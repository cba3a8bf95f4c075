package routes

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	pkghttpx "danny-movie-game-server/pkg/httpx"
)

const titlesTTL = 5 * time.Minute

// Titles handles GET /titles: the full title corpus for eligible
// movies, used by the client for local matching. The corpus is
// expensive to build (one provider call per movie), so it is cached and
// pre-warmed by a background job; per-movie failures are skipped rather
// than failing the whole list.
func Titles(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d.Repo == nil {
			writeError(w, r, pkghttpx.ConfigMissing("DATABASE_URL is not set; configure the database connection"))
			return
		}
		// Without a provider key the corpus cannot be built; an empty
		// list just disables client-side matching.
		if d.OMDB == nil {
			writeJSON(w, http.StatusOK, map[string]any{"titles": []string{}})
			return
		}

		if cached, ok := d.Cache.Get(ctx, "titles:all"); ok {
			writeCached(w, cached)
			return
		}

		ids, err := d.Repo.ListEligibleIDs(ctx)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list reviewed movies", err))
			return
		}

		resolve := metadataResolver(d)
		seen := make(map[string]struct{})
		titles := make([]string, 0, len(ids))
		for _, id := range ids {
			if !strings.HasPrefix(id, "tt") {
				continue
			}
			details, err := resolve(ctx, id)
			if err != nil || details.Title == "" {
				if err != nil {
					log.Warn().Str("movie_id", id).Err(err).Msg("title fetch failed, skipping")
				}
				continue
			}
			if _, dup := seen[details.Title]; dup {
				continue
			}
			seen[details.Title] = struct{}{}
			titles = append(titles, details.Title)
		}
		sort.Strings(titles)

		b, _ := json.Marshal(map[string]any{"titles": titles})
		_ = d.Cache.Set(ctx, "titles:all", string(b), titlesTTL)
		writeCached(w, string(b))
	}
}
