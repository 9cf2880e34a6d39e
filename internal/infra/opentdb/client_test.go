package opentdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"trivia-duel/internal/domain"
)

func TestFetchDecodesResults(t *testing.T) {
	var query map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"amount":     r.URL.Query().Get("amount"),
			"category":   r.URL.Query().Get("category"),
			"difficulty": r.URL.Query().Get("difficulty"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":0,"results":[{"type":"boolean","difficulty":"easy","category":"Science &amp; Nature","question":"Water boils at 100&deg;C at sea level.","correct_answer":"True","incorrect_answers":["False"]}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	got, err := client.Fetch(context.Background(), domain.FetchRequest{Amount: 80, Category: "17", Difficulty: domain.DifficultyEasy})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].Category != "Science &amp; Nature" {
		t.Fatalf("expected raw, still-encoded record, got %+v", got)
	}
	if query["amount"] != "50" || query["category"] != "17" || query["difficulty"] != "easy" {
		t.Fatalf("unexpected query %v", query)
	}
}

func TestFetchMapsResponseCodes(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{1, ErrNoResults},
		{2, ErrInvalidParameter},
		{4, ErrToken},
		{5, ErrRateLimited},
	}
	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response_code":` + strconv.Itoa(tc.code) + `,"results":[]}`))
		}))
		_, err := NewClient(server.URL, time.Second).Fetch(context.Background(), domain.FetchRequest{Amount: 1})
		server.Close()
		if !errors.Is(err, tc.want) {
			t.Fatalf("code %d: expected %v, got %v", tc.code, tc.want, err)
		}
	}
}

func TestFetchHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Fetch(context.Background(), domain.FetchRequest{Amount: 1})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}
