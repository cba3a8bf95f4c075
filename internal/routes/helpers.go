package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"danny-movie-game-server/internal/game"
	"danny-movie-game-server/internal/model"
	pkghttpx "danny-movie-game-server/pkg/httpx"
)

const metadataTTL = 24 * time.Hour

// writeJSON is a tiny helper for handlers in this package.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, he *pkghttpx.HTTPError) {
	pkghttpx.WriteError(w, r, he)
}

func writeCached(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// writeSelectError maps selection failures onto distinct client-facing
// codes so the game UI can tell an empty review table from a provider
// outage.
func writeSelectError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, game.ErrNoPuzzleAvailable):
		he := pkghttpx.NotFound("no movies available; the game needs movies marked Liked or Hated in the tracker", err)
		he.Code = "no_puzzle"
		writeError(w, r, he)
	case errors.Is(err, game.ErrProviderUnresolvable):
		he := pkghttpx.NotFound("could not fetch metadata for any candidate movie; try again shortly", err)
		he.Code = "provider_unresolvable"
		writeError(w, r, he)
	default:
		writeError(w, r, pkghttpx.Internal(fallbackMsg, err))
	}
}

// metadataResolver wraps the OMDb client with a cache-aside TTL layer.
// The cache is advisory: any miss or decode failure just refetches.
func metadataResolver(d Deps) game.ResolveFunc {
	return func(ctx context.Context, movieID string) (*model.MovieDetails, error) {
		cacheKey := "omdb:" + movieID
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			var details model.MovieDetails
			if err := json.Unmarshal([]byte(cached), &details); err == nil {
				return &details, nil
			}
		}
		details, err := d.OMDB.ResolveByID(ctx, movieID)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(details); err == nil {
			_ = d.Cache.Set(ctx, cacheKey, string(b), metadataTTL)
		}
		return details, nil
	}
}
