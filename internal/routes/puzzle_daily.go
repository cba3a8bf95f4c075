package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"danny-movie-game-server/internal/game"
	"danny-movie-game-server/internal/model"
	pkghttpx "danny-movie-game-server/pkg/httpx"
)

type puzzleResponse struct {
	MovieID              string              `json:"movieId"`
	Status               string              `json:"status"`
	PuzzleDate           string              `json:"puzzleDate"`
	Year                 string              `json:"year"`
	Title                string              `json:"title"`
	Poster               string              `json:"poster"`
	Plot                 string              `json:"plot"`
	Genre                string              `json:"genre"`
	Rated                string              `json:"rated"`
	Runtime              string              `json:"runtime"`
	Director             string              `json:"director"`
	FirstActor           string              `json:"firstActor"`
	SupportingActors     string              `json:"supportingActors"`
	PlotWithoutNames     string              `json:"plotWithoutNames"`
	AcademyAwards        string              `json:"academyAwards"`
	RedactedPlotSegments []model.PlotSegment `json:"redactedPlotSegments"`
}

// PuzzleDaily handles GET /puzzle/daily. The puzzle is derived fresh
// per request; determinism of the selector is what keeps concurrent
// requests for the same UTC date consistent.
func PuzzleDaily(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d.Repo == nil {
			writeError(w, r, pkghttpx.ConfigMissing("DATABASE_URL is not set; configure the database connection"))
			return
		}
		if d.OMDB == nil {
			writeError(w, r, pkghttpx.ConfigMissing("OMDB_API_KEY is not set; configure the metadata provider"))
			return
		}

		now := time.Now().UTC()
		today := now.Format("2006-01-02")
		cacheKey := "puzzle:daily:" + today
		if cached, ok := d.Cache.Get(ctx, cacheKey); ok {
			writeCached(w, cached)
			return
		}

		eligible, err := d.Repo.ListEligible(ctx)
		if err != nil {
			writeError(w, r, pkghttpx.Internal("failed to list reviewed movies", err))
			return
		}

		status, details, err := game.Select(ctx, today, eligible, metadataResolver(d), d.Policy)
		if err != nil {
			writeSelectError(w, r, err, "failed to pick the daily movie")
			return
		}

		resp := buildPuzzleResponse(today, status, details, d.Redaction)
		b, _ := json.Marshal(resp)
		// The same movie holds until UTC midnight; cache it that long.
		if ttl := time.Until(now.Truncate(24 * time.Hour).Add(24 * time.Hour)); ttl > time.Minute {
			_ = d.Cache.Set(ctx, cacheKey, string(b), ttl)
		}
		writeCached(w, string(b))
	}
}

func buildPuzzleResponse(date string, status model.MovieStatus, details *model.MovieDetails, cfg game.RedactionConfig) puzzleResponse {
	plotNoNames := game.RemoveKnownNames(details.Plot, game.KnownNames(details))
	return puzzleResponse{
		MovieID:              status.MovieID,
		Status:               status.Status,
		PuzzleDate:           date,
		Year:                 details.Year,
		Title:                details.Title,
		Poster:               details.PosterURL,
		Plot:                 details.Plot,
		Genre:                details.Genre,
		Rated:                details.ContentRating,
		Runtime:              formatRuntime(details.RuntimeMinutes),
		Director:             details.Director,
		FirstActor:           game.LeadActor(details.CastOrdered),
		SupportingActors:     game.SupportingActors(details.CastOrdered),
		PlotWithoutNames:     plotNoNames,
		AcademyAwards:        game.AcademyAwardSummary(details.AwardsSummary),
		RedactedPlotSegments: game.SegmentPlot(plotNoNames, cfg),
	}
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return strconv.Itoa(minutes) + " min"
}
