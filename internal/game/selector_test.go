package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"danny-movie-game-server/internal/model"
)

func eligibleSet(ids ...string) []model.MovieStatus {
	out := make([]model.MovieStatus, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.MovieStatus{MovieID: id, Status: model.StatusLiked})
	}
	return out
}

func okResolver(t *testing.T) ResolveFunc {
	t.Helper()
	return func(ctx context.Context, movieID string) (*model.MovieDetails, error) {
		return &model.MovieDetails{ID: movieID, Title: "Title " + movieID}, nil
	}
}

func fastPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, PerAttemptTimeout: time.Second, Backoff: 0}
}

func TestDateHashStable(t *testing.T) {
	a := DateHash("2025-03-14")
	b := DateHash("2025-03-14")
	if a != b {
		t.Fatalf("hash not stable: %d vs %d", a, b)
	}
	if DateHash("2025-03-14") == DateHash("2025-03-15") {
		t.Fatal("adjacent dates hashed identically")
	}
}

func TestSelectDeterministicAcrossCalls(t *testing.T) {
	set := eligibleSet("tt0000005", "tt0000001", "tt0000003", "tt0000002", "tt0000004")
	var first string
	for i := 0; i < 10; i++ {
		ms, details, err := Select(context.Background(), "2025-06-01", set, okResolver(t), fastPolicy())
		if err != nil {
			t.Fatalf("select failed: %v", err)
		}
		if details == nil || details.ID != ms.MovieID {
			t.Fatalf("details mismatch: %+v vs %+v", details, ms)
		}
		if first == "" {
			first = ms.MovieID
		} else if ms.MovieID != first {
			t.Fatalf("selection not deterministic: %s then %s", first, ms.MovieID)
		}
	}
}

func TestSelectIgnoresInputOrder(t *testing.T) {
	a := eligibleSet("tt0000001", "tt0000002", "tt0000003")
	b := eligibleSet("tt0000003", "tt0000001", "tt0000002")
	ma, _, err := Select(context.Background(), "2025-06-01", a, okResolver(t), fastPolicy())
	if err != nil {
		t.Fatal(err)
	}
	mb, _, err := Select(context.Background(), "2025-06-01", b, okResolver(t), fastPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if ma.MovieID != mb.MovieID {
		t.Fatalf("input order changed selection: %s vs %s", ma.MovieID, mb.MovieID)
	}
}

func TestSelectEmptySet(t *testing.T) {
	_, _, err := Select(context.Background(), "2025-06-01", nil, okResolver(t), fastPolicy())
	if !errors.Is(err, ErrNoPuzzleAvailable) {
		t.Fatalf("expected ErrNoPuzzleAvailable, got %v", err)
	}
}

func TestSelectFallsThroughFailedCandidates(t *testing.T) {
	set := eligibleSet("tt0000001", "tt0000002", "tt0000003", "tt0000004")
	date := "2025-06-01"
	primary, _, err := Select(context.Background(), date, set, okResolver(t), fastPolicy())
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	resolve := func(ctx context.Context, movieID string) (*model.MovieDetails, error) {
		calls++
		if movieID == primary.MovieID {
			return nil, errors.New("provider down for this id")
		}
		return &model.MovieDetails{ID: movieID, Title: "Title"}, nil
	}
	got, _, err := Select(context.Background(), date, set, resolve, fastPolicy())
	if err != nil {
		t.Fatalf("expected fallback to succeed: %v", err)
	}
	if got.MovieID == primary.MovieID {
		t.Fatal("fallback returned the failed candidate")
	}
	if calls != 2 {
		t.Fatalf("expected 2 resolve calls, got %d", calls)
	}
}

func TestSelectExhaustsAttemptBudget(t *testing.T) {
	set := eligibleSet("tt0000001", "tt0000002", "tt0000003")
	calls := 0
	resolve := func(ctx context.Context, movieID string) (*model.MovieDetails, error) {
		calls++
		return nil, errors.New("down")
	}
	_, _, err := Select(context.Background(), "2025-06-01", set, resolve, fastPolicy())
	if !errors.Is(err, ErrProviderUnresolvable) {
		t.Fatalf("expected ErrProviderUnresolvable, got %v", err)
	}
	// Budget of 5 is capped by the 3-movie set.
	if calls != 3 {
		t.Fatalf("expected 3 resolve calls, got %d", calls)
	}
}

func TestSelectSingleMovieEveryDay(t *testing.T) {
	set := eligibleSet("tt0000042")
	for _, date := range []string{"2025-01-01", "2025-06-15", "2025-12-31"} {
		ms, _, err := Select(context.Background(), date, set, okResolver(t), fastPolicy())
		if err != nil {
			t.Fatalf("date %s: %v", date, err)
		}
		if ms.MovieID != "tt0000042" {
			t.Fatalf("date %s selected %s", date, ms.MovieID)
		}
	}
}

func TestStartIndexDistribution(t *testing.T) {
	const n = 10
	counts := make([]int, n)
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 365; i++ {
		counts[StartIndex(day.Format("2006-01-02"), n)]++
		day = day.AddDate(0, 0, 1)
	}
	avg := 365.0 / n
	for i, c := range counts {
		if float64(c) > 2*avg {
			t.Fatalf("index %d hit %d times, more than twice the average %.1f", i, c, avg)
		}
	}
}

func TestSelectRandomEmptySet(t *testing.T) {
	_, _, err := SelectRandom(context.Background(), nil, okResolver(t), fastPolicy())
	if !errors.Is(err, ErrNoPuzzleAvailable) {
		t.Fatalf("expected ErrNoPuzzleAvailable, got %v", err)
	}
}

func TestSelectRandomReturnsMember(t *testing.T) {
	set := eligibleSet("tt0000001", "tt0000002", "tt0000003")
	ms, details, err := SelectRandom(context.Background(), set, okResolver(t), fastPolicy())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range set {
		if e.MovieID == ms.MovieID {
			found = true
		}
	}
	if !found {
		t.Fatalf("selected %s not in eligible set", ms.MovieID)
	}
	if details.ID != ms.MovieID {
		t.Fatalf("details id %s does not match selection %s", details.ID, ms.MovieID)
	}
}
