package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "https://img.example/w600", "test-key")
}

func TestSearchByTitle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "the matrix" {
			t.Errorf("query = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_results": 2,
			"results": [
				{"id": 603, "title": "The Matrix", "original_title": "The Matrix", "release_date": "1999-03-30", "poster_path": "/matrix.jpg"},
				{"id": 604, "title": "The Matrix Reloaded", "original_title": "The Matrix Reloaded", "release_date": "2003-05-15", "poster_path": "/reloaded.jpg"}
			]
		}`))
	})

	results, total, err := c.SearchByTitle(context.Background(), "the matrix")
	if err != nil {
		t.Fatalf("SearchByTitle: %v", err)
	}
	if total != 2 || len(results) != 2 {
		t.Fatalf("total = %d, len = %d", total, len(results))
	}
	if results[0].ID != 603 || results[0].Title != "The Matrix" {
		t.Errorf("first result = %+v", results[0])
	}
}

func TestGetDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 603, "original_title": "The Matrix", "release_date": "1999-03-30", "overview": "A hacker...", "poster_path": "/matrix.jpg"}`))
	})

	d, err := c.GetDetails(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	if d.OriginalTitle != "The Matrix" || d.ReleaseDate != "1999-03-30" {
		t.Errorf("details = %+v", d)
	}
}

func TestGetDetailsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := c.GetDetails(context.Background(), 1); err == nil {
		t.Error("expected error on non-2xx status")
	}
}

func TestGetDetailsMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": `))
	})
	if _, err := c.GetDetails(context.Background(), 1); err == nil {
		t.Error("expected error on malformed response")
	}
}

func TestGetDetailsMissingTitle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1}`))
	})
	if _, err := c.GetDetails(context.Background(), 1); err == nil {
		t.Error("expected error when the record has no title")
	}
}

func TestPosterURL(t *testing.T) {
	c := NewClient("https://api.example", "https://img.example/w600", "k")
	if got := c.PosterURL("/matrix.jpg"); got != "https://img.example/w600/matrix.jpg" {
		t.Errorf("PosterURL = %q", got)
	}
	if got := c.PosterURL(""); got != "" {
		t.Errorf("PosterURL(empty) = %q, want empty", got)
	}
}
