package repos

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"danny-movie-game-server/internal/model"
)

type Repository struct {
	db *pgxpool.Pool

	Statuses    *StatusesRepo
	Leaderboard *LeaderboardRepo
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:          db,
		Statuses:    &StatusesRepo{db: db},
		Leaderboard: &LeaderboardRepo{db: db},
	}
}

// Forwarders for handler convenience
func (r *Repository) ListEligible(ctx context.Context) ([]model.MovieStatus, error) {
	return r.Statuses.ListEligible(ctx)
}
func (r *Repository) ListEligibleIDs(ctx context.Context) ([]string, error) {
	return r.Statuses.ListEligibleIDs(ctx)
}
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]model.MovieStatus, error) {
	return r.Statuses.ListByStatus(ctx, status)
}
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.Statuses.CountByStatus(ctx)
}
func (r *Repository) HasStatuses(ctx context.Context) (bool, error) {
	return r.Statuses.HasStatuses(ctx)
}
func (r *Repository) SeedStatuses(ctx context.Context, statuses []model.MovieStatus) (int, error) {
	return r.Statuses.SeedStatuses(ctx, statuses)
}

func (r *Repository) UpsertScore(ctx context.Context, playerName string, hintsUsed int, puzzleDate string) error {
	return r.Leaderboard.Upsert(ctx, playerName, hintsUsed, puzzleDate)
}
func (r *Repository) ListScoresPage(ctx context.Context, puzzleDate string, cursor *ScoreCursor, limit int32) ([]model.LeaderboardEntry, error) {
	return r.Leaderboard.ListByDatePage(ctx, puzzleDate, cursor, limit)
}
func (r *Repository) CountScores(ctx context.Context, puzzleDate string) (int64, error) {
	return r.Leaderboard.CountByDate(ctx, puzzleDate)
}
