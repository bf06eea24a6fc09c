package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetHtmlBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("<html><body>hello</body></html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	f := NewFetcher(0)

	body, err := f.GetHtmlBytes(context.Background(), server.URL+"/ok")
	if err != nil {
		t.Fatalf("GetHtmlBytes() error = %v", err)
	}
	if string(body) != "<html><body>hello</body></html>" {
		t.Errorf("body = %q", body)
	}

	_, err = f.GetHtmlBytes(context.Background(), server.URL+"/missing")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestGetHtmlBytes_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewFetcher(0).GetHtmlBytes(context.Background(), url)
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("transport failure reported as status error: %v", err)
	}
}
