package repos

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"danny-movie-game-server/internal/model"
)

// StatusesRepo reads the movie review table the external tracker app
// maintains. This service never updates review rows; SeedStatuses is a
// dev-only convenience.
type StatusesRepo struct {
	db *pgxpool.Pool
}

// ListEligible returns Liked/Hated movies ordered by movie id. The
// stable order is what makes date-hashed selection deterministic.
func (r *StatusesRepo) ListEligible(ctx context.Context) ([]model.MovieStatus, error) {
	rows, err := r.db.Query(ctx, `
		SELECT movie_id, status, updated_at
		FROM movie_statuses
		WHERE status = ANY($1)
		ORDER BY movie_id`, model.EligibleStatuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MovieStatus
	for rows.Next() {
		var ms model.MovieStatus
		if err := rows.Scan(&ms.MovieID, &ms.Status, &ms.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}

// ListByStatus returns every review row in one bucket, newest update
// first.
func (r *StatusesRepo) ListByStatus(ctx context.Context, status string) ([]model.MovieStatus, error) {
	rows, err := r.db.Query(ctx, `
		SELECT movie_id, status, updated_at
		FROM movie_statuses
		WHERE status = $1
		ORDER BY updated_at DESC, movie_id`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MovieStatus
	for rows.Next() {
		var ms model.MovieStatus
		if err := rows.Scan(&ms.MovieID, &ms.Status, &ms.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}

func (r *StatusesRepo) ListEligibleIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT movie_id
		FROM movie_statuses
		WHERE status = ANY($1)`, model.EligibleStatuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *StatusesRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM movie_statuses GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{
		model.StatusLiked:  0,
		model.StatusHated:  0,
		model.StatusUnseen: 0,
	}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *StatusesRepo) HasStatuses(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movie_statuses)`).Scan(&exists)
	return exists, err
}

// SeedStatuses inserts review rows without clobbering anything the
// tracker already wrote.
func (r *StatusesRepo) SeedStatuses(ctx context.Context, statuses []model.MovieStatus) (int, error) {
	count := 0
	for _, ms := range statuses {
		tag, err := r.db.Exec(ctx, `
			INSERT INTO movie_statuses (movie_id, status)
			VALUES ($1, $2)
			ON CONFLICT (movie_id) DO NOTHING`, ms.MovieID, ms.Status)
		if err != nil {
			return count, err
		}
		count += int(tag.RowsAffected())
	}
	return count, nil
}
