package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompanyContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<nav>Menu</nav>
			<main><h1>Acme Robotics</h1><p>We build <strong>warehouse robots</strong> for mid-market logistics.</p></main>
			<footer>Legal</footer>
		</body></html>`))
	}))
	defer srv.Close()

	text, err := CompanyContext(context.Background(), srv.URL, WebsiteOptions{})
	if err != nil {
		t.Fatalf("CompanyContext returned error: %v", err)
	}
	if !strings.Contains(text, "Acme Robotics") || !strings.Contains(text, "warehouse robots") {
		t.Errorf("context = %q", text)
	}
	if strings.Contains(text, "Menu") || strings.Contains(text, "Legal") {
		t.Errorf("noise survived extraction: %q", text)
	}
	if !strings.Contains(text, "#") && !strings.Contains(text, "**") {
		t.Errorf("expected markdown formatting, got %q", text)
	}
}

func TestCompanyContextTruncates(t *testing.T) {
	long := strings.Repeat("Robots all the way down. ", 400)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><main><p>" + long + "</p></main></body></html>"))
	}))
	defer srv.Close()

	text, err := CompanyContext(context.Background(), srv.URL, WebsiteOptions{})
	if err != nil {
		t.Fatalf("CompanyContext returned error: %v", err)
	}
	if len([]rune(text)) > MaxContextChars+3 {
		t.Errorf("context length = %d, want <= %d plus ellipsis", len([]rune(text)), MaxContextChars)
	}
	if !strings.HasSuffix(text, "...") {
		t.Errorf("truncated context should end with ellipsis")
	}
}

func TestCompanyContextFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := CompanyContext(context.Background(), srv.URL, WebsiteOptions{}); err == nil {
		t.Errorf("CompanyContext = nil error, want fetch error")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcde..." {
		t.Errorf("truncate = %q", got)
	}
}
