package server

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/services/auth"
	"restaurant-storefront/internal/services/catalog"
	"restaurant-storefront/internal/services/order"
)

func testServer(t *testing.T, staticDir string) *Server {
	t.Helper()
	log := logger.New("test")
	return New(0, staticDir,
		catalog.NewHandler(nil, log),
		order.NewHandler(nil, log),
		auth.NewHandler(nil, log),
		log)
}

func TestServer_ServesStaticSite(t *testing.T) {
	dir := t.TempDir()
	page := []byte("<html><body>menu page</body></html>")
	if err := os.WriteFile(filepath.Join(dir, "index.html"), page, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	s := testServer(t, dir)

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 200 {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "menu page") {
		t.Errorf("GET / did not serve index.html, got %q", rec.Body.String())
	}
}

func TestServer_HealthCheck(t *testing.T) {
	s := testServer(t, t.TempDir())

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != 200 {
		t.Fatalf("GET /health status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health body %q", rec.Body.String())
	}
}
