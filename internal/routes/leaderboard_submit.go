package routes

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"danny-movie-game-server/internal/game"
	pkghttpx "danny-movie-game-server/pkg/httpx"
)

const maxPlayerNameLen = 50

// LeaderboardSubmit handles POST /leaderboard/submit. Scores upsert on
// (player, date): resubmitting the same day replaces the earlier score.
// Player names are client-supplied free text; they are trimmed and
// length-capped, nothing more (there is no auth in this game).
func LeaderboardSubmit(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type submitReq struct {
			PlayerName string `json:"playerName"`
			HintsUsed  *int   `json:"hintsUsed"`
			PuzzleDate string `json:"puzzleDate"`
		}

		ctx := r.Context()

		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}

		name := strings.TrimSpace(req.PlayerName)
		if name == "" {
			writeError(w, r, pkghttpx.BadRequest("player name is required", nil))
			return
		}
		if runes := []rune(name); len(runes) > maxPlayerNameLen {
			name = string(runes[:maxPlayerNameLen])
		}
		if req.HintsUsed == nil || *req.HintsUsed < 0 || *req.HintsUsed > game.MaxHintLevel {
			writeError(w, r, pkghttpx.BadRequest("invalid hints used value", nil))
			return
		}
		if req.PuzzleDate == "" {
			writeError(w, r, pkghttpx.BadRequest("puzzle date is required", nil))
			return
		}
		if _, err := time.Parse("2006-01-02", req.PuzzleDate); err != nil {
			writeError(w, r, pkghttpx.BadRequest("invalid puzzle date, expected YYYY-MM-DD", err))
			return
		}

		if d.Repo == nil {
			writeError(w, r, pkghttpx.ConfigMissing("DATABASE_URL is not set; configure the database connection"))
			return
		}
		if err := d.Repo.UpsertScore(ctx, name, *req.HintsUsed, req.PuzzleDate); err != nil {
			writeError(w, r, pkghttpx.Internal("failed to submit to leaderboard", err))
			return
		}

		_ = d.Cache.Delete(ctx, "leaderboard:"+req.PuzzleDate)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
