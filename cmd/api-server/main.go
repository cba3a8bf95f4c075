package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"danny-movie-game-server/internal/config"
	"danny-movie-game-server/internal/game"
	"danny-movie-game-server/internal/jobs"
	"danny-movie-game-server/internal/migrate"
	"danny-movie-game-server/internal/repos"
	"danny-movie-game-server/internal/routes"
	"danny-movie-game-server/internal/server"
	"danny-movie-game-server/pkg/cache"
	pkgdb "danny-movie-game-server/pkg/db"
	"danny-movie-game-server/pkg/omdb"
	"danny-movie-game-server/pkg/signer"
	"danny-movie-game-server/pkg/tmdb"
)

const titleWarmInterval = 6 * time.Hour

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repository *repos.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pkgdb.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("db connect failed")
		}
		defer pool.Close()

		if err := migrate.Up(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
		repository = repos.New(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set; puzzle and leaderboard endpoints will report missing config")
	}

	var c cache.Cache
	if addr := cfg.ValkeyAddr; addr != "" {
		vc, err := cache.NewValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory()
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory()
	}

	var omdbClient *omdb.Client
	if cfg.OMDBAPIKey != "" {
		omdbClient = omdb.New(cfg.OMDBAPIKey)
	} else {
		log.Warn().Msg("OMDB_API_KEY not set; movie metadata endpoints will report missing config")
	}

	var tmdbClient *tmdb.Client
	if cfg.TMDBAPIKey != "" {
		tmdbClient = tmdb.New(cfg.TMDBAPIKey)
	} else {
		log.Warn().Msg("TMDB_API_KEY not set; the top-grossing corpus will report missing config")
	}

	policy := game.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.SelectMaxAttempts
	policy.PerAttemptTimeout = cfg.ProviderTimeout

	deps := routes.Deps{
		Repo:      repository,
		Cache:     c,
		Signer:    signer.NewHMAC(cfg.CursorSecret),
		OMDB:      omdbClient,
		TMDB:      tmdbClient,
		Policy:    policy,
		Redaction: game.NewRedactionConfig(cfg.AlwaysRedact, cfg.NeverRedact),
		Name:      "danny-movie-game-server",
		StartedAt: time.Now(),
	}
	api := server.New(deps, cfg.CORSAllowedOrigins)

	if cfg.SeedDevData {
		jobs.SeedStatusesIfEmpty(ctx, repository)
	}
	jobs.StartTitleWarm(ctx, repository, omdbClient, c, titleWarmInterval)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := server.StartHTTP(ctx, addr, api.Router()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	_, _ = fmt.Fprintln(os.Stderr, "shutting down...")
	time.Sleep(200 * time.Millisecond)
}
