package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"danny-movie-game-server/internal/model"
)

var (
	// ErrNoPuzzleAvailable is returned when the eligible set is empty.
	ErrNoPuzzleAvailable = errors.New("no eligible movies")
	// ErrProviderUnresolvable is returned when every probed candidate
	// failed to resolve within the attempt budget.
	ErrProviderUnresolvable = errors.New("no candidate movie could be resolved")
)

// ResolveFunc resolves a movie id to its full metadata.
type ResolveFunc func(ctx context.Context, movieID string) (*model.MovieDetails, error)

// RetryPolicy bounds how hard selection probes candidates when the
// metadata provider fails. Kept separate from the selection logic so it
// can be tuned and tested on its own.
type RetryPolicy struct {
	MaxAttempts       int
	PerAttemptTimeout time.Duration
	Backoff           time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       5,
		PerAttemptTimeout: 8 * time.Second,
		Backoff:           200 * time.Millisecond,
	}
}

// DateHash is a 32-bit rolling hash of the puzzle date string with
// signed wraparound. The same date always lands on the same value.
func DateHash(date string) int32 {
	var h int32
	for _, c := range date {
		h = h*31 + int32(c)
	}
	return h
}

// StartIndex maps a date onto a start position in an eligible list of
// size n.
func StartIndex(date string, n int) int {
	h := int64(DateHash(date))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

// Select deterministically picks the movie for the given UTC date from
// the eligible set and resolves its metadata. Candidates are probed
// starting at the hash-derived index, advancing by one (wrapping), so a
// provider failure for one movie falls through to the next instead of
// killing the request. Selection is a pure function of (date, eligible
// set); concurrent requests for the same date do duplicate work but
// reach the same answer.
func Select(ctx context.Context, date string, eligible []model.MovieStatus, resolve ResolveFunc, policy RetryPolicy) (model.MovieStatus, *model.MovieDetails, error) {
	if len(eligible) == 0 {
		return model.MovieStatus{}, nil, ErrNoPuzzleAvailable
	}
	ordered := sortedByID(eligible)
	return probe(ctx, ordered, StartIndex(date, len(ordered)), resolve, policy)
}

// SelectRandom picks a non-deterministic movie from the eligible set,
// with the same fallback probing as Select.
func SelectRandom(ctx context.Context, eligible []model.MovieStatus, resolve ResolveFunc, policy RetryPolicy) (model.MovieStatus, *model.MovieDetails, error) {
	if len(eligible) == 0 {
		return model.MovieStatus{}, nil, ErrNoPuzzleAvailable
	}
	ordered := sortedByID(eligible)
	return probe(ctx, ordered, rand.Intn(len(ordered)), resolve, policy)
}

func sortedByID(eligible []model.MovieStatus) []model.MovieStatus {
	ordered := make([]model.MovieStatus, len(eligible))
	copy(ordered, eligible)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].MovieID < ordered[j].MovieID })
	return ordered
}

func probe(ctx context.Context, ordered []model.MovieStatus, start int, resolve ResolveFunc, policy RetryPolicy) (model.MovieStatus, *model.MovieDetails, error) {
	attempts := policy.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	if attempts > len(ordered) {
		attempts = len(ordered)
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		cand := ordered[(start+i)%len(ordered)]
		details, err := resolveOne(ctx, cand.MovieID, resolve, policy.PerAttemptTimeout)
		if err == nil && details != nil {
			return cand, details, nil
		}
		if err == nil {
			err = errors.New("empty metadata")
		}
		lastErr = err
		log.Warn().
			Str("movie_id", cand.MovieID).
			Int("attempt", i+1).
			Err(err).
			Msg("candidate metadata resolution failed, advancing")

		if policy.Backoff > 0 && i < attempts-1 {
			select {
			case <-ctx.Done():
				return model.MovieStatus{}, nil, ctx.Err()
			case <-time.After(policy.Backoff):
			}
		}
	}
	return model.MovieStatus{}, nil, fmt.Errorf("%w after %d attempts: %v", ErrProviderUnresolvable, attempts, lastErr)
}

func resolveOne(ctx context.Context, movieID string, resolve ResolveFunc, timeout time.Duration) (*model.MovieDetails, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return resolve(ctx, movieID)
}
