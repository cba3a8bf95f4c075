package jobs

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"danny-movie-game-server/internal/repos"
	"danny-movie-game-server/pkg/cache"
	"danny-movie-game-server/pkg/omdb"
)

// StartTitleWarm periodically rebuilds the title corpus so the first
// /titles request of the day doesn't pay one provider call per movie.
// The warm run also leaves per-movie metadata in the cache, which the
// daily selector benefits from.
func StartTitleWarm(ctx context.Context, r *repos.Repository, client *omdb.Client, c cache.Cache, interval time.Duration) {
	if client == nil || r == nil {
		log.Warn().Msg("OMDb client or database not configured; skipping title warm job")
		return
	}
	go func() {
		warmTitles(ctx, r, client, c, interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				warmTitles(ctx, r, client, c, interval)
			}
		}
	}()
}

func warmTitles(ctx context.Context, r *repos.Repository, client *omdb.Client, c cache.Cache, interval time.Duration) {
	ids, err := r.ListEligibleIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("title warm: listing eligible movies failed")
		return
	}

	seen := make(map[string]struct{})
	titles := make([]string, 0, len(ids))
	for _, id := range ids {
		if !strings.HasPrefix(id, "tt") {
			continue
		}
		details, err := resolveCached(ctx, id, client, c)
		if err != nil || details.Title == "" {
			continue
		}
		if _, dup := seen[details.Title]; dup {
			continue
		}
		seen[details.Title] = struct{}{}
		titles = append(titles, details.Title)
	}
	sort.Strings(titles)

	b, err := json.Marshal(map[string]any{"titles": titles})
	if err != nil {
		return
	}
	// Outlive one warm interval so the corpus never goes cold.
	_ = c.Set(ctx, "titles:all", string(b), interval+5*time.Minute)
	log.Info().Int("count", len(titles)).Msg("title corpus warmed")
}
