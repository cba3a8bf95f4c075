package jobs

import (
	"context"

	"github.com/rs/zerolog/log"

	"danny-movie-game-server/internal/model"
	"danny-movie-game-server/internal/repos"
)

// devSeed is a small spread of well-known IMDb ids so a fresh local
// database can serve a puzzle immediately.
var devSeed = []model.MovieStatus{
	{MovieID: "tt0111161", Status: model.StatusLiked}, // The Shawshank Redemption
	{MovieID: "tt0068646", Status: model.StatusLiked}, // The Godfather
	{MovieID: "tt0468569", Status: model.StatusLiked}, // The Dark Knight
	{MovieID: "tt0110912", Status: model.StatusLiked}, // Pulp Fiction
	{MovieID: "tt0109830", Status: model.StatusHated}, // Forrest Gump
	{MovieID: "tt1375666", Status: model.StatusLiked}, // Inception
	{MovieID: "tt0133093", Status: model.StatusHated}, // The Matrix
	{MovieID: "tt0076759", Status: model.StatusLiked}, // Star Wars
	{MovieID: "tt0120737", Status: model.StatusUnseen}, // The Fellowship of the Ring
	{MovieID: "tt0114369", Status: model.StatusLiked}, // Se7en
}

// SeedStatusesIfEmpty populates the review table with sample rows when
// it holds nothing. Meant for local development only; callers gate it
// behind config.
func SeedStatusesIfEmpty(ctx context.Context, r *repos.Repository) {
	if r == nil {
		return
	}
	has, err := r.HasStatuses(ctx)
	if err != nil {
		log.Error().Err(err).Msg("seed: checking movie statuses failed")
		return
	}
	if has {
		return
	}
	n, err := r.SeedStatuses(ctx, devSeed)
	if err != nil {
		log.Error().Err(err).Msg("seed: inserting sample statuses failed")
		return
	}
	log.Info().Int("inserted", n).Msg("seeded sample movie statuses")
}
