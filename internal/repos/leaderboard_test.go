package repos

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"danny-movie-game-server/internal/migrate"
	pkgdb "danny-movie-game-server/pkg/db"
)

// testRepo connects to TEST_DATABASE_URL and applies migrations; tests
// that need a live Postgres are skipped when it is unset.
func testRepo(t *testing.T) *Repository {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if err := migrate.Up(url); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	pool, err := pkgdb.Connect(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect failed: %v", err)
	}
	t.Cleanup(pool.Close)
	return New(pool)
}

func TestLeaderboardUpsertLastWriteWins(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	date := "2024-01-01"
	player := fmt.Sprintf("sam-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_, _ = r.db.Exec(context.Background(),
			`DELETE FROM leaderboard WHERE player_name = $1`, player)
	})

	if err := r.UpsertScore(ctx, player, 2, date); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := r.UpsertScore(ctx, player, 5, date); err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	entries, err := r.ListScoresPage(ctx, date, nil, 1000)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	matches := 0
	for _, e := range entries {
		if e.PlayerName != player {
			continue
		}
		matches++
		if e.HintsUsed != 5 {
			t.Fatalf("resubmission did not replace the score: hintsUsed=%d", e.HintsUsed)
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one row for %s, found %d", player, matches)
	}
}

func TestLeaderboardRankingOrder(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	date := "2024-01-02"
	suffix := time.Now().UnixNano()
	better := fmt.Sprintf("better-%d", suffix)
	worse := fmt.Sprintf("worse-%d", suffix)
	t.Cleanup(func() {
		_, _ = r.db.Exec(context.Background(),
			`DELETE FROM leaderboard WHERE player_name IN ($1, $2)`, better, worse)
	})

	if err := r.UpsertScore(ctx, worse, 6, date); err != nil {
		t.Fatal(err)
	}
	if err := r.UpsertScore(ctx, better, 1, date); err != nil {
		t.Fatal(err)
	}

	entries, err := r.ListScoresPage(ctx, date, nil, 1000)
	if err != nil {
		t.Fatal(err)
	}
	betterIdx, worseIdx := -1, -1
	for i, e := range entries {
		switch e.PlayerName {
		case better:
			betterIdx = i
		case worse:
			worseIdx = i
		}
	}
	if betterIdx == -1 || worseIdx == -1 {
		t.Fatalf("submitted rows missing from page: %+v", entries)
	}
	if betterIdx > worseIdx {
		t.Fatal("fewer hints should rank first")
	}
}
