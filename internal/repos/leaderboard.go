package repos

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"danny-movie-game-server/internal/model"
)

type LeaderboardRepo struct {
	db *pgxpool.Pool
}

// ScoreCursor is a keyset position in the (hints_used, submitted_at,
// id) ranking order.
type ScoreCursor struct {
	HintsUsed   int64
	SubmittedAt time.Time
	ID          int64
}

// Upsert records a score for (player, date); a resubmission for the
// same day overwrites both the score and the timestamp. Postgres'
// ON CONFLICT makes the last-write-wins race-free without any
// app-level locking.
func (r *LeaderboardRepo) Upsert(ctx context.Context, playerName string, hintsUsed int, puzzleDate string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO leaderboard (player_name, hints_used, puzzle_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_name, puzzle_date) DO UPDATE SET
			hints_used   = EXCLUDED.hints_used,
			submitted_at = now()`, playerName, hintsUsed, puzzleDate)
	return err
}

// ListByDatePage returns one ranking page: fewest hints first, ties
// broken by earliest submission.
func (r *LeaderboardRepo) ListByDatePage(ctx context.Context, puzzleDate string, cursor *ScoreCursor, limit int32) ([]model.LeaderboardEntry, error) {
	after := ScoreCursor{HintsUsed: -1}
	if cursor != nil {
		after = *cursor
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, player_name, hints_used, submitted_at
		FROM leaderboard
		WHERE puzzle_date = $1
		  AND (hints_used, submitted_at, id) > ($2, $3, $4)
		ORDER BY hints_used ASC, submitted_at ASC, id ASC
		LIMIT $5`, puzzleDate, after.HintsUsed, after.SubmittedAt, after.ID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.PlayerName, &e.HintsUsed, &e.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *LeaderboardRepo) CountByDate(ctx context.Context, puzzleDate string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leaderboard WHERE puzzle_date = $1`, puzzleDate).Scan(&n)
	return n, err
}
