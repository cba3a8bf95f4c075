package routes

import (
	"time"

	"danny-movie-game-server/internal/game"
	"danny-movie-game-server/internal/repos"
	"danny-movie-game-server/pkg/cache"
	"danny-movie-game-server/pkg/omdb"
	"danny-movie-game-server/pkg/signer"
	"danny-movie-game-server/pkg/tmdb"
)

// Deps holds the dependencies required by the route handlers. Repo,
// OMDB and TMDB may be nil when their credentials are absent; handlers
// degrade per-endpoint instead of the process refusing to start.
type Deps struct {
	Repo      *repos.Repository
	Cache     cache.Cache
	Signer    signer.Codec
	OMDB      *omdb.Client
	TMDB      *tmdb.Client
	Policy    game.RetryPolicy
	Redaction game.RedactionConfig
	Name      string
	StartedAt time.Time
}
