package server

import (
	"net/http"

	"danny-movie-game-server/internal/routes"
)

type Server struct {
	deps        routes.Deps
	corsOrigins []string
}

func New(d routes.Deps, corsOrigins []string) *Server {
	return &Server{deps: d, corsOrigins: corsOrigins}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	d := s.deps

	// Endpoints declared here for easy scanning
	mux.HandleFunc("GET /health", routes.Health(d))
	mux.HandleFunc("GET /puzzle/daily", routes.PuzzleDaily(d))
	mux.HandleFunc("GET /puzzle/random", routes.PuzzleRandom(d))
	mux.HandleFunc("GET /autocomplete", routes.Autocomplete(d))
	mux.HandleFunc("GET /titles", routes.Titles(d))
	mux.HandleFunc("GET /titles/top-grossing", routes.TopGrossing(d))
	mux.HandleFunc("GET /movies", routes.Movies(d))
	mux.HandleFunc("GET /stats", routes.Stats(d))
	mux.HandleFunc("POST /leaderboard/submit", routes.LeaderboardSubmit(d))
	mux.HandleFunc("GET /leaderboard", routes.Leaderboard(d))

	var h http.Handler = mux
	h = withSecurityHeaders(h)
	h = withCORS(s.corsOrigins)(h)
	return withCorrelationID(withLogging(h))
}
