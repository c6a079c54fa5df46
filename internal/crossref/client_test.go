package crossref

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

// newTestClient points a client at srv with an unbounded limiter so tests
// run at full speed.
func newTestClient(srv *httptest.Server, opts ...ClientOption) *Client {
	opts = append([]ClientOption{
		WithBaseURL(srv.URL),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	}, opts...)
	return NewClient(opts...)
}

func TestWorkByDOI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works/10.1234/abc" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"status": "ok",
			"message": {
				"title": ["Food Deserts and Health"],
				"author": [{"given": "Ada", "family": "Lovelace"}],
				"published": {"date-parts": [[2019, 3]]},
				"container-title": ["Journal of Nutrition"],
				"DOI": "10.1234/ABC"
			}
		}`))
	}))
	defer srv.Close()

	work, err := newTestClient(srv).WorkByDOI(context.Background(), "10.1234/abc")
	if err != nil {
		t.Fatalf("WorkByDOI() error: %v", err)
	}

	if work.Title[0] != "Food Deserts and Health" {
		t.Errorf("title = %q", work.Title[0])
	}
	if work.Published.Year() != 2019 {
		t.Errorf("year = %d, want 2019", work.Published.Year())
	}
	if work.Author[0].Family != "Lovelace" {
		t.Errorf("author = %+v", work.Author[0])
	}
}

func TestWorkByDOINotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).WorkByDOI(context.Background(), "10.9999/missing")
	if !IsNotFound(err) {
		t.Errorf("error = %v, want not-found", err)
	}
}

func TestWorkByDOIRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).WorkByDOI(context.Background(), "10.1234/abc")
	if !IsRateLimited(err) {
		t.Errorf("error = %v, want rate-limited", err)
	}
}

func TestWorkByDOIServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).WorkByDOI(context.Background(), "10.1234/abc")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error = %T (%v), want *APIError", err, err)
	}
	if apiErr.StatusCode != 500 {
		t.Errorf("status = %d, want 500", apiErr.StatusCode)
	}
}

func TestWorkByDOIBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "message":`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).WorkByDOI(context.Background(), "10.1234/abc")
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSearchTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query.title"); got != "food deserts" {
			t.Errorf("query.title = %q", got)
		}
		if got := r.URL.Query().Get("rows"); got != "3" {
			t.Errorf("rows = %q, want 3", got)
		}
		w.Write([]byte(`{
			"status": "ok",
			"message": {"items": [
				{"title": ["Food deserts and health"], "DOI": "10.1/a", "score": 90.1},
				{"title": ["Food access in cities"], "DOI": "10.1/b", "score": 45.2}
			]}
		}`))
	}))
	defer srv.Close()

	works, err := newTestClient(srv).SearchTitle(context.Background(), "food deserts", 3)
	if err != nil {
		t.Fatalf("SearchTitle() error: %v", err)
	}
	if len(works) != 2 {
		t.Fatalf("got %d works, want 2", len(works))
	}
	if works[0].DOI != "10.1/a" {
		t.Errorf("first DOI = %q", works[0].DOI)
	}
}

func TestSearchTitleDefaultRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("rows"); got != "5" {
			t.Errorf("rows = %q, want default 5", got)
		}
		w.Write([]byte(`{"status": "ok", "message": {"items": []}}`))
	}))
	defer srv.Close()

	works, err := newTestClient(srv).SearchTitle(context.Background(), "anything", 0)
	if err != nil {
		t.Fatalf("SearchTitle() error: %v", err)
	}
	if len(works) != 0 {
		t.Errorf("got %d works, want 0", len(works))
	}
}

func TestUserAgentMailto(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"status": "ok", "message": {}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, WithMailto("reviewer@example.org"))
	if _, err := c.WorkByDOI(context.Background(), "10.1234/abc"); err != nil {
		t.Fatalf("WorkByDOI() error: %v", err)
	}
	if gotUA != "lr/1.0 (mailto:reviewer@example.org)" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}
