package zerodb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openhack/hackboard/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewHTTPClient(server.URL, "test-key", "test-project", logger.Noop{})
	client.SetRetry(3, 0) // no backoff delay in tests
	return client, server
}

func TestHTTPClient_InsertRows_Success(t *testing.T) {
	var gotBody insertRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/rows/insert" {
			t.Errorf("expected path /v1/rows/insert, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", auth)
		}
		if project := r.Header.Get("X-Project-ID"); project != "test-project" {
			t.Errorf("expected project header, got %q", project)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(insertResponse{Success: true, RowIDs: []string{"hack-1"}})
	})

	ids, err := client.InsertRows(context.Background(), TableHackathons, []Row{{"id": "hack-1", "name": "Spring Hack"}})
	if err != nil {
		t.Fatalf("InsertRows failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "hack-1" {
		t.Errorf("expected row ids [hack-1], got %v", ids)
	}
	if gotBody.Table != TableHackathons {
		t.Errorf("expected table %q in request, got %q", TableHackathons, gotBody.Table)
	}
}

func TestHTTPClient_InsertRows_RetriesOn5xx(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(insertResponse{Success: true, RowIDs: []string{"row-1"}})
	})

	_, err := client.InsertRows(context.Background(), TableTeams, []Row{{"name": "Team Rocket"}})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestHTTPClient_InsertRows_GivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.InsertRows(context.Background(), TableTeams, []Row{{"name": "x"}})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestHTTPClient_InsertRows_NoRetryOn4xx(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.InsertRows(context.Background(), TableTeams, []Row{{"name": "x"}})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt for a 4xx, got %d", attempts)
	}
}

func TestHTTPClient_InsertRows_EnvelopeFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(insertResponse{Success: false, Error: "table quota exceeded"})
	})

	_, err := client.InsertRows(context.Background(), TableScores, []Row{{"total_score": 90}})
	if err == nil {
		t.Fatal("expected error for failure envelope")
	}
}

func TestHTTPClient_QueryRows_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/rows/query" {
			t.Errorf("expected path /v1/rows/query, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(queryResponse{
			Success: true,
			Rows:    []Row{{"id": "hack-1", "status": "LIVE"}},
			Total:   1,
		})
	})

	rows, total, err := client.QueryRows(context.Background(), TableHackathons, QueryOptions{
		Filter: map[string]any{"status": "LIVE"},
	})
	if err != nil {
		t.Fatalf("QueryRows failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d (total %d)", len(rows), total)
	}
	if rows[0]["id"] != "hack-1" {
		t.Errorf("expected row id hack-1, got %v", rows[0]["id"])
	}
}

func TestHTTPClient_QueryRows_InvalidJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, _, err := client.QueryRows(context.Background(), TableHackathons, QueryOptions{})
	if err == nil {
		t.Fatal("expected error for invalid JSON response")
	}
}

func TestHTTPClient_EmbedAndStore_PinnedModel(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		json.NewEncoder(w).Encode(embedResponse{Success: true, EmbeddingIDs: []string{"emb-1"}})
	})

	_, err := client.EmbedAndStore(context.Background(), EmbedRequest{
		Documents: []Document{{ID: "submission:sub-1", Text: "our project"}},
		Namespace: SubmissionNamespace("hack-1"),
		Model:     "some-other-model",
	})
	if err == nil {
		t.Fatal("expected error for non-pinned model")
	}
	if called {
		t.Error("request must not be issued for a rejected model")
	}
}

func TestHTTPClient_EmbedAndStore_DefaultsModel(t *testing.T) {
	var got EmbedRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings/store" {
			t.Errorf("expected path /v1/embeddings/store, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(embedResponse{Success: true, EmbeddingIDs: []string{"emb-1"}})
	})

	ids, err := client.EmbedAndStore(context.Background(), EmbedRequest{
		Documents: []Document{{ID: "submission:sub-1", Text: "our project"}},
		Namespace: SubmissionNamespace("hack-1"),
	})
	if err != nil {
		t.Fatalf("EmbedAndStore failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 embedding id, got %d", len(ids))
	}
	if got.Model != EmbeddingModel {
		t.Errorf("expected model %q on the wire, got %q", EmbeddingModel, got.Model)
	}
}

func TestHTTPClient_EmbedAndStore_RejectsBadNamespace(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be issued for an invalid namespace")
	})

	_, err := client.EmbedAndStore(context.Background(), EmbedRequest{
		Documents: []Document{{ID: "submission:sub-1", Text: "text"}},
		Namespace: "submissions/hack-1",
	})
	if err == nil {
		t.Fatal("expected error for invalid namespace")
	}
}

func TestHTTPClient_Search_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings/search" {
			t.Errorf("expected path /v1/embeddings/search, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(searchResponse{
			Success: true,
			Results: []SearchResult{{ID: "submission:sub-1", Score: 0.92, Text: "our project"}},
		})
	})

	results, err := client.Search(context.Background(), SearchRequest{
		Query:     "machine learning",
		Namespace: SubmissionNamespace("hack-1"),
		Limit:     5,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "submission:sub-1" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestHTTPClient_ContextCancelStopsRetry(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client.SetRetry(3, 50*time.Millisecond) // backoff long enough for cancellation to win

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.InsertRows(ctx, TableTeams, []Row{{"name": "x"}})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestValidNamespace(t *testing.T) {
	tests := []struct {
		ns   string
		want bool
	}{
		{"hackathons/hack-1/submissions", true},
		{"hackathons/6b1f0c2e-26a1-4f1e-9f30-9a4a0a1c2d3e/submissions", true},
		{"hackathons//submissions", false},
		{"hackathons/hack-1/projects", false},
		{"teams/hack-1/submissions", false},
		{"hackathons/hack-1", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidNamespace(tt.ns); got != tt.want {
			t.Errorf("ValidNamespace(%q) = %v, want %v", tt.ns, got, tt.want)
		}
	}
}

func TestDocIDFormats(t *testing.T) {
	if got := SubmissionDocID("sub-1"); got != "submission:sub-1" {
		t.Errorf("SubmissionDocID = %q", got)
	}
	if got := ProjectDocID("proj-1"); got != "project:proj-1" {
		t.Errorf("ProjectDocID = %q", got)
	}
	if got := SubmissionNamespace("hack-1"); got != "hackathons/hack-1/submissions" {
		t.Errorf("SubmissionNamespace = %q", got)
	}
}
