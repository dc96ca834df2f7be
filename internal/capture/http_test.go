package capture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestHTTPSource(t *testing.T) {
	page, err := os.ReadFile("../../testdata/fixtures/week.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(page)
	}))
	defer server.Close()

	html, err := NewHTTPSource(server.URL, 0).HTML(context.Background())
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	if html != string(page) {
		t.Error("body should be returned unchanged")
	}
	if gotUA != UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, UserAgent)
	}
}

func TestHTTPSource_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sign in required", http.StatusUnauthorized)
	}))
	defer server.Close()

	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"bad status", server.URL, "unexpected status code: 401"},
		{"empty url", "", "URL is required"},
		{"bad url", "://nope", "creating request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTPSource(tt.url, 0).HTML(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("HTML() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
