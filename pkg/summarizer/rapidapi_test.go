package summarizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dtnitsch/sumz/models"
)

func TestRapidAPI_Success(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/summarize" {
			t.Errorf("path = %q, want /summarize", r.URL.Path)
		}
		if got := r.URL.Query().Get("url"); got != "https://example.com/post?id=1&x=y" {
			t.Errorf("url param = %q", got)
		}
		if got := r.URL.Query().Get("length"); got != "3" {
			t.Errorf("length param = %q, want 3", got)
		}
		if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
			t.Errorf("X-RapidAPI-Key = %q", got)
		}
		if got := r.Header.Get("X-RapidAPI-Host"); got != "summ.example" {
			t.Errorf("X-RapidAPI-Host = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary":"  A concise summary.  "}`))
	}))
	defer server.Close()

	r := NewRapidAPI("test-key", WithBaseURL(server.URL+"/"), WithHost("summ.example"))
	outcome := r.Summarize(context.Background(), models.SummarizeParams{ArticleURL: "https://example.com/post?id=1&x=y"})

	summary, ok := outcome.Summary()
	if !ok {
		t.Fatalf("Summarize() failed: %v", outcome.Err())
	}
	if summary != "A concise summary." {
		t.Errorf("summary = %q", summary)
	}
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("requests = %d, want exactly 1", n)
	}
}

func TestRapidAPI_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "api error field", status: 500, body: `{"error":"Internal error"}`, wantStatus: 500, wantMsg: "Internal error"},
		{name: "gateway message field", status: 403, body: `{"message":"You are not subscribed to this API."}`, wantStatus: 403, wantMsg: "You are not subscribed to this API."},
		{name: "plain text body", status: 502, body: "upstream timed out", wantStatus: 502, wantMsg: "upstream timed out"},
		{name: "empty body", status: 429, body: "", wantStatus: 429, wantMsg: "Too Many Requests"},
		{name: "empty summary", status: 200, body: `{"summary":""}`, wantStatus: 200, wantMsg: "no summary returned"},
		{name: "missing summary", status: 200, body: `{}`, wantStatus: 200, wantMsg: "no summary returned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			outcome := NewRapidAPI("k", WithBaseURL(server.URL)).Summarize(context.Background(), models.SummarizeParams{ArticleURL: "https://example.com"})
			fe, failed := outcome.Failure()
			if !failed {
				t.Fatal("expected failure outcome")
			}
			if fe.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", fe.Status, tt.wantStatus)
			}
			if fe.Data.Error != tt.wantMsg {
				t.Errorf("message = %q, want %q", fe.Data.Error, tt.wantMsg)
			}
		})
	}
}

func TestRapidAPI_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	outcome := NewRapidAPI("k", WithBaseURL(baseURL)).Summarize(context.Background(), models.SummarizeParams{ArticleURL: "https://example.com"})
	fe, failed := outcome.Failure()
	if !failed {
		t.Fatal("expected failure outcome")
	}
	if fe.Status != 0 {
		t.Errorf("status = %d, want 0 for transport failure", fe.Status)
	}
	if fe.Data.Error == "" {
		t.Error("expected a non-empty message")
	}
}

func TestRapidAPI_NoDeduplication(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`{"summary":"s"}`))
	}))
	defer server.Close()

	r := NewRapidAPI("k", WithBaseURL(server.URL))
	params := models.SummarizeParams{ArticleURL: "https://example.com/same"}
	r.Summarize(context.Background(), params)
	r.Summarize(context.Background(), params)

	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("requests = %d, want 2 (no caching by URL)", n)
	}
}
