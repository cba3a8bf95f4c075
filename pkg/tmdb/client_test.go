package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	return &Client{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: time.Second},
	}
}

func TestTopGrossingByYear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("primary_release_year") != "1994" {
			t.Errorf("unexpected year param: %s", q.Get("primary_release_year"))
		}
		if q.Get("sort_by") != "revenue.desc" {
			t.Errorf("unexpected sort param: %s", q.Get("sort_by"))
		}
		_, _ = w.Write([]byte(`{
			"page": 1,
			"total_pages": 1,
			"results": [
				{"id": 1, "title": "The Lion King"},
				{"id": 2, "title": "Forrest Gump"},
				{"id": 3, "title": "the lion king"},
				{"id": 4, "title": "Skipped", "adult": true},
				{"id": 5, "title": "  "}
			]
		}`))
	}))
	defer srv.Close()

	titles, err := testClient(srv.URL).TopGrossingByYear(context.Background(), 1994, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(titles) != 2 || titles[0] != "The Lion King" || titles[1] != "Forrest Gump" {
		t.Fatalf("got %v", titles)
	}
}

func TestTopGrossingByYearLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"page": 1,
			"total_pages": 1,
			"results": [
				{"id": 1, "title": "A"}, {"id": 2, "title": "B"}, {"id": 3, "title": "C"}
			]
		}`))
	}))
	defer srv.Close()

	titles, err := testClient(srv.URL).TopGrossingByYear(context.Background(), 2000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(titles) != 2 {
		t.Fatalf("limit not applied: %v", titles)
	}
}

func TestTopGrossingByYearServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).TopGrossingByYear(context.Background(), 2000, 10); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestTopGrossingByYearMissingKey(t *testing.T) {
	c := New("")
	if _, err := c.TopGrossingByYear(context.Background(), 2000, 10); err == nil {
		t.Fatal("expected error without an API key")
	}
}
