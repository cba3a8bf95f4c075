package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"danny-movie-game-server/internal/model"
	"danny-movie-game-server/internal/repos"
	pkghttpx "danny-movie-game-server/pkg/httpx"
)

const leaderboardTTL = time.Minute

// Leaderboard handles GET /leaderboard?date=: the day's ranking,
// fewest hints first, earliest submission breaking ties. Large days
// paginate with a signed keyset cursor.
func Leaderboard(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		date := r.URL.Query().Get("date")
		if date == "" {
			writeError(w, r, pkghttpx.BadRequest("puzzle date is required", nil))
			return
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid puzzle date, expected YYYY-MM-DD", err))
			return
		}

		limitStr := r.URL.Query().Get("limit")
		if limitStr == "" {
			limitStr = "100"
		}
		lim64, err := strconv.ParseInt(limitStr, 10, 32)
		if err != nil || lim64 <= 0 || lim64 > 1000 {
			writeError(w, r, pkghttpx.BadRequest("invalid limit", err))
			return
		}

		token := r.URL.Query().Get("cursor")
		var cursor *repos.ScoreCursor
		if token != "" {
			if d.Signer == nil {
				writeError(w, r, pkghttpx.Internal("cursor signer not configured", nil))
				return
			}
			hints, subMicro, id, decErr := d.Signer.DecodeLeaderboardCursor(token)
			if decErr != nil {
				writeError(w, r, pkghttpx.BadRequest("invalid cursor", decErr))
				return
			}
			cursor = &repos.ScoreCursor{
				HintsUsed:   hints,
				SubmittedAt: time.UnixMicro(subMicro).UTC(),
				ID:          id,
			}
		}

		if d.Repo == nil {
			writeError(w, r, pkghttpx.ConfigMissing("DATABASE_URL is not set; configure the database connection"))
			return
		}

		// Only the first default-sized page is cached; it is what the
		// results screen fetches and what submissions invalidate.
		cacheable := token == "" && limitStr == "100"
		cacheKey := "leaderboard:" + date
		if cacheable {
			if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
				writeCached(w, cached)
				return
			}
		}

		entries, err := d.Repo.ListScoresPage(ctx, date, cursor, int32(lim64))
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to read leaderboard", err))
			return
		}
		total, err := d.Repo.CountScores(ctx, date)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to count leaderboard", err))
			return
		}
		if entries == nil {
			entries = []model.LeaderboardEntry{}
		}

		resp := map[string]any{
			"leaderboard": entries,
			"total":       total,
		}
		if len(entries) == int(lim64) && d.Signer != nil {
			last := entries[len(entries)-1]
			resp["nextCursor"] = d.Signer.EncodeLeaderboardCursor(int64(last.HintsUsed), last.SubmittedAt.UnixMicro(), last.ID)
		}

		b, _ := json.Marshal(resp)
		if cacheable {
			_ = d.Cache.Set(ctx, cacheKey, string(b), leaderboardTTL)
		}
		writeCached(w, string(b))
	}
}
