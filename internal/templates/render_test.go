package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFragment(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

type baseEntry struct {
	Name   string
	Active bool
}

func TestRenderLayerControl(t *testing.T) {
	r, err := NewBuiltin()
	if err != nil {
		t.Fatalf("NewBuiltin: %v", err)
	}

	html, err := r.Render("layer-control", map[string]any{
		"ViewID": "map",
		"Base": []baseEntry{
			{Name: "Streets", Active: true},
			{Name: "Dark"},
		},
		"Overlays": []string{"traffic"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(html, `id="layer-control-map"`) {
		t.Fatalf("html=%s, want control element id", html)
	}
	if !strings.Contains(html, `value="Streets"`) || !strings.Contains(html, "checked") {
		t.Fatalf("html=%s, want Streets checked", html)
	}
	if !strings.Contains(html, "traffic") {
		t.Fatalf("html=%s, want the overlay row", html)
	}
}

func TestRenderMarkerItem(t *testing.T) {
	r, err := NewBuiltin()
	if err != nil {
		t.Fatalf("NewBuiltin: %v", err)
	}

	html, err := r.Render("marker-item", map[string]any{
		"ID":    "marker-1",
		"Lat":   48.85,
		"Lon":   2.35,
		"Popup": "Paris",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "marker-1") || !strings.Contains(html, "Paris") {
		t.Fatalf("html=%s, want marker id and popup text", html)
	}
}

func TestLayeredFragmentsOverrideBuiltins(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "empty-state.html", `{{define "empty-state"}}<p>custom empty</p>{{end}}`)

	r, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html, err := r.Render("empty-state", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "custom empty") {
		t.Fatalf("html=%s, want the on-disk override", html)
	}

	// Fragments absent from the dir still come from the builtins.
	if _, err := r.Render("layer-control", map[string]any{"ViewID": "x"}); err != nil {
		t.Fatalf("builtin fallback: %v", err)
	}
}
