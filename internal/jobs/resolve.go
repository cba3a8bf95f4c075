package jobs

import (
	"context"
	"encoding/json"
	"time"

	"danny-movie-game-server/internal/model"
	"danny-movie-game-server/pkg/cache"
	"danny-movie-game-server/pkg/omdb"
)

const metadataTTL = 24 * time.Hour

// resolveCached is cache-aside metadata lookup keyed the same way the
// request handlers key it, so warm runs and live traffic share entries.
func resolveCached(ctx context.Context, movieID string, client *omdb.Client, c cache.Cache) (*model.MovieDetails, error) {
	key := "omdb:" + movieID
	if cached, ok := c.Get(ctx, key); ok {
		var d model.MovieDetails
		if err := json.Unmarshal([]byte(cached), &d); err == nil {
			return &d, nil
		}
	}
	d, err := client.ResolveByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(d); err == nil {
		_ = c.Set(ctx, key, string(b), metadataTTL)
	}
	return d, nil
}
