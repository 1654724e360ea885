package server

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := New(Config{
		Host:    "127.0.0.1",
		Port:    "0",
		DataDir: t.TempDir(),
		WebDir:  "../../web",
	})
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEditorPage(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/editor", nil))
	if rec.Code != 200 {
		t.Fatalf("status=%d, want 200", rec.Code)
	}

	body := rec.Body.String()
	// The SSE handlers patch into #layer-control; the page must host it.
	if !strings.Contains(body, `id="layer-control"`) {
		t.Fatalf("editor page has no layer-control host element")
	}
	if !strings.Contains(body, "datastar") {
		t.Fatalf("editor page does not load the datastar bundle")
	}
	if !strings.Contains(body, "/api/v1/editor/events") {
		t.Fatalf("editor page does not connect the editor event stream")
	}
}

func TestViewerPage(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/viewer", nil))
	if rec.Code != 200 {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `id="map"`) {
		t.Fatalf("viewer page has no map element")
	}
}
