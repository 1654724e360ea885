package service

import (
	"context"
	"testing"

	"github.com/joeblew999/plat-mapview/internal/mapview"
	"github.com/joeblew999/plat-mapview/internal/tiles"
)

func TestCreateAndGet(t *testing.T) {
	svc := NewViewService(t.TempDir(), "test-key", nil)

	id, mv, err := svc.Create(context.Background(), "#main-map", CreateOptions{Zoom: 8})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "mainmap" {
		t.Fatalf("id=%q, want mainmap", id)
	}
	if mv.Zoom() != 8 {
		t.Fatalf("zoom=%d, want 8", mv.Zoom())
	}

	got, ok := svc.Get(id)
	if !ok || got != mv {
		t.Fatal("Get did not return the created view")
	}
}

func TestCreateDuplicate(t *testing.T) {
	svc := NewViewService(t.TempDir(), "", nil)

	if _, _, err := svc.Create(context.Background(), "#map", CreateOptions{}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := svc.Create(context.Background(), "#map", CreateOptions{}); err == nil {
		t.Fatal("want error for duplicate target")
	}
}

func TestCreateBadTarget(t *testing.T) {
	svc := NewViewService(t.TempDir(), "", nil)

	if _, _, err := svc.Create(context.Background(), "###", CreateOptions{}); err == nil {
		t.Fatal("want error for target that yields an empty ID")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	svc := NewViewService(dir, "test-key", nil)

	center := mapview.Coordinate{Latitude: 40.7, Longitude: -74.0}
	id, mv, err := svc.Create(context.Background(), "#map", CreateOptions{Center: &center, Zoom: 11})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mv.AddOverlayLayer("traffic", &tiles.Layer{Name: "Traffic", URL: "https://example.com/{z}/{x}/{y}.png"})
	if _, err := mv.AddMarker(center, nil, &mapview.PopupOptions{Content: "NYC"}); err != nil {
		t.Fatalf("AddMarker: %v", err)
	}
	mv.SetActiveBase("Dark")
	if err := svc.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A fresh service over the same data dir restores the view.
	restored := NewViewService(dir, "test-key", nil)
	rv, ok := restored.Get(id)
	if !ok {
		t.Fatal("restored service is missing the view")
	}
	if rv.Center() != center {
		t.Fatalf("center=%+v, want %+v", rv.Center(), center)
	}
	if rv.Zoom() != 11 {
		t.Fatalf("zoom=%d, want 11", rv.Zoom())
	}
	if rv.ActiveBase() != "Dark" {
		t.Fatalf("active=%q, want Dark", rv.ActiveBase())
	}
	if len(rv.Overlays()) != 1 {
		t.Fatalf("got %d overlays, want 1", len(rv.Overlays()))
	}
	markers := rv.Markers()
	if len(markers) != 1 || markers[0].Popup == nil || markers[0].Popup.Content != "NYC" {
		t.Fatalf("markers=%+v, want one with popup NYC", markers)
	}
}

func TestDelete(t *testing.T) {
	svc := NewViewService(t.TempDir(), "", nil)

	id, _, err := svc.Create(context.Background(), "#map", CreateOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := svc.Get(id); ok {
		t.Fatal("view still present after delete")
	}
	if err := svc.Delete(id); err == nil {
		t.Fatal("want error deleting a missing view")
	}
}

func TestGenerateID(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"#map", "map"},
		{".map-container", "mapcontainer"},
		{"#My Map", "my_map"},
		{"map2", "map2"},
	}
	for _, tt := range tests {
		if got := generateID(tt.target); got != tt.want {
			t.Errorf("generateID(%q)=%q, want %q", tt.target, got, tt.want)
		}
	}
}
