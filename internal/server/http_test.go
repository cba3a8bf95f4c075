package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"danny-movie-game-server/internal/game"
	"danny-movie-game-server/internal/routes"
	"danny-movie-game-server/internal/server"
	"danny-movie-game-server/pkg/cache"
	"danny-movie-game-server/pkg/omdb"
	"danny-movie-game-server/pkg/signer"
	"danny-movie-game-server/pkg/tmdb"
)

func testRouter(omdbClient *omdb.Client) http.Handler {
	d := routes.Deps{
		Cache:     cache.NewInMemory(),
		Signer:    signer.NewHMAC([]byte("test-secret")),
		OMDB:      omdbClient,
		Policy:    game.DefaultRetryPolicy(),
		Redaction: game.NewRedactionConfig(nil, []string{"Danny"}),
		Name:      "danny-movie-game-server",
		StartedAt: time.Now(),
	}
	return server.New(d, nil).Router()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad error body %q: %v", w.Body.String(), err)
	}
	return body.Code
}

func TestHealth(t *testing.T) {
	w := do(t, testRouter(nil), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Fatalf("got %v", body)
	}
}

func TestCorrelationIDHeader(t *testing.T) {
	w := do(t, testRouter(nil), http.MethodGet, "/health", "")
	if w.Header().Get("X-Correlation-Id") == "" {
		t.Fatal("missing correlation id header")
	}
}

func TestSecurityHeaders(t *testing.T) {
	w := do(t, testRouter(nil), http.MethodGet, "/health", "")
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing nosniff header")
	}
}

func TestUnknownRoute(t *testing.T) {
	w := do(t, testRouter(nil), http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPuzzleDailyWithoutDatabase(t *testing.T) {
	w := do(t, testRouter(nil), http.MethodGet, "/puzzle/daily", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if code := errCode(t, w); code != "config_missing" {
		t.Fatalf("expected config_missing, got %s", code)
	}
}

func TestLeaderboardValidation(t *testing.T) {
	r := testRouter(nil)
	cases := []struct {
		target string
		want   string
	}{
		{"/leaderboard", "bad_request"},
		{"/leaderboard?date=not-a-date", "bad_request"},
		{"/leaderboard?date=2025-06-01&limit=0", "bad_request"},
		{"/leaderboard?date=2025-06-01&limit=5000", "bad_request"},
		{"/leaderboard?date=2025-06-01&cursor=garbage", "bad_request"},
		{"/leaderboard?date=2025-06-01", "config_missing"},
	}
	for _, tc := range cases {
		w := do(t, r, http.MethodGet, tc.target, "")
		if code := errCode(t, w); code != tc.want {
			t.Fatalf("%s: expected %s, got %s (status %d)", tc.target, tc.want, code, w.Code)
		}
	}
}

func TestLeaderboardSubmitValidation(t *testing.T) {
	r := testRouter(nil)
	cases := []struct {
		body string
		want string
	}{
		{"{not json", "bad_request"},
		{`{"playerName":"","hintsUsed":1,"puzzleDate":"2025-06-01"}`, "bad_request"},
		{`{"playerName":"dan","puzzleDate":"2025-06-01"}`, "bad_request"},
		{`{"playerName":"dan","hintsUsed":-1,"puzzleDate":"2025-06-01"}`, "bad_request"},
		{`{"playerName":"dan","hintsUsed":99,"puzzleDate":"2025-06-01"}`, "bad_request"},
		{`{"playerName":"dan","hintsUsed":1,"puzzleDate":"June 1st"}`, "bad_request"},
		{`{"playerName":"dan","hintsUsed":1,"puzzleDate":"2025-06-01"}`, "config_missing"},
	}
	for _, tc := range cases {
		w := do(t, r, http.MethodPost, "/leaderboard/submit", tc.body)
		if code := errCode(t, w); code != tc.want {
			t.Fatalf("body %s: expected %s, got %s (status %d)", tc.body, tc.want, code, w.Code)
		}
	}
}

func TestAutocompleteEmptyQuery(t *testing.T) {
	w := do(t, testRouter(nil), http.MethodGet, "/autocomplete?q=", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Suggestions) != 0 {
		t.Fatalf("got %v", body.Suggestions)
	}
}

func TestAutocompleteRanksProviderResults(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"Search": [{"Title": "The Dark Knight"}, {"Title": "Dark City"}],
			"Response": "True"
		}`))
	}))
	defer provider.Close()

	client := omdb.New("test-key")
	client.BaseURL = provider.URL
	r := testRouter(client)

	w := do(t, r, http.MethodGet, "/autocomplete?q=dark", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Suggestions) != 2 || body.Suggestions[0] != "Dark City" {
		t.Fatalf("got %v", body.Suggestions)
	}
}

func TestAutocompleteProviderFailureDegrades(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer provider.Close()

	client := omdb.New("test-key")
	client.BaseURL = provider.URL
	client.MaxRetries = 1

	w := do(t, testRouter(client), http.MethodGet, "/autocomplete?q=dark", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on provider failure, got %d", w.Code)
	}
}

func TestTopGrossingWithoutProvider(t *testing.T) {
	w := do(t, testRouter(nil), http.MethodGet, "/titles/top-grossing", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if code := errCode(t, w); code != "config_missing" {
		t.Fatalf("expected config_missing, got %s", code)
	}
}

func TestTopGrossingBuildsCorpus(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"page": 1,
			"total_pages": 1,
			"results": [{"id": 1, "title": "Titanic"}, {"id": 2, "title": "Avatar"}]
		}`))
	}))
	defer provider.Close()

	client := tmdb.New("test-key")
	client.BaseURL = provider.URL

	d := routes.Deps{
		Cache:     cache.NewInMemory(),
		Signer:    signer.NewHMAC([]byte("test-secret")),
		TMDB:      client,
		Policy:    game.DefaultRetryPolicy(),
		Redaction: game.NewRedactionConfig(nil, nil),
		StartedAt: time.Now(),
	}
	r := server.New(d, nil).Router()

	w := do(t, r, http.MethodGet, "/titles/top-grossing", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Titles []string `json:"titles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	// Every probed year returns the same two movies; the corpus
	// dedupes and sorts them.
	if len(body.Titles) != 2 || body.Titles[0] != "Avatar" || body.Titles[1] != "Titanic" {
		t.Fatalf("got %v", body.Titles)
	}
}

func TestMoviesValidation(t *testing.T) {
	r := testRouter(nil)
	for _, target := range []string{"/movies", "/movies?status=Seen-Liked"} {
		w := do(t, r, http.MethodGet, target, "")
		if code := errCode(t, w); code != "bad_request" {
			t.Fatalf("%s: expected bad_request, got %s (status %d)", target, code, w.Code)
		}
	}
	w := do(t, r, http.MethodGet, "/movies?status=Liked", "")
	if code := errCode(t, w); code != "config_missing" {
		t.Fatalf("expected config_missing without a database, got %s", code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(nil)
	req := httptest.NewRequest(http.MethodOptions, "/puzzle/daily", nil)
	req.Header.Set("Origin", "https://game.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("missing allow-origin header")
	}
}
