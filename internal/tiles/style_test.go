package tiles

import (
	"strings"
	"testing"
)

const testKey = "test-key"

func TestBaseLayersWithKey(t *testing.T) {
	layers, active := BaseLayers(testKey)

	if len(layers) != 6 {
		t.Fatalf("got %d base layers, want 6", len(layers))
	}
	for _, name := range []string{"Streets", "Satellite", "Hybrid", "Basic", "Toner", "Dark"} {
		if _, ok := layers[name]; !ok {
			t.Errorf("missing base layer %q", name)
		}
	}
	if active != "Streets" {
		t.Fatalf("active=%q, want Streets", active)
	}
}

func TestBaseLayersWithoutKey(t *testing.T) {
	layers, active := BaseLayers("")

	if len(layers) != 1 {
		t.Fatalf("got %d base layers, want 1", len(layers))
	}
	osm, ok := layers["OpenStreetMap"]
	if !ok {
		t.Fatal("missing OpenStreetMap fallback layer")
	}
	if active != "OpenStreetMap" {
		t.Fatalf("active=%q, want OpenStreetMap", active)
	}
	if osm.URL != "https://tile.openstreetmap.org/{z}/{x}/{y}.png" {
		t.Fatalf("osm url=%q", osm.URL)
	}
	if osm.TileSize != 256 || osm.ZoomOffset != 0 {
		t.Fatalf("osm tileSize=%d zoomOffset=%d, want 256/0", osm.TileSize, osm.ZoomOffset)
	}
	if strings.Contains(osm.URL, "key=") {
		t.Fatal("osm url must not carry a key")
	}
}

func TestForStyleURLs(t *testing.T) {
	tests := []struct {
		style Style
		want  string
	}{
		{Streets, "https://api.maptiler.com/maps/streets-v2/{z}/{x}/{y}.png?key=test-key"},
		{Basic, "https://api.maptiler.com/maps/basic-v2/{z}/{x}/{y}.png?key=test-key"},
		{Toner, "https://api.maptiler.com/maps/toner-v2/{z}/{x}/{y}.png?key=test-key"},
		{Dark, "https://api.maptiler.com/maps/dark-v2/{z}/{x}/{y}.png?key=test-key"},
		{Satellite, "https://api.maptiler.com/tiles/satellite/{z}/{x}/{y}.jpg?key=test-key"},
	}

	for _, tt := range tests {
		layer, err := ForStyle(tt.style, testKey)
		if err != nil {
			t.Fatalf("%s: %v", tt.style, err)
		}
		if layer.URL != tt.want {
			t.Errorf("%s url=%q, want %q", tt.style, layer.URL, tt.want)
		}
		if layer.TileSize != 512 || layer.ZoomOffset != -1 || layer.MinZoom != 1 {
			t.Errorf("%s params=%d/%d/%d, want 512/-1/1",
				tt.style, layer.TileSize, layer.ZoomOffset, layer.MinZoom)
		}
	}
}

func TestAttribution(t *testing.T) {
	sat, _ := ForStyle(Satellite, testKey)
	if strings.Contains(sat.Attribution, "OpenStreetMap") {
		t.Fatal("satellite attribution should not name OSM contributors")
	}

	streets, _ := ForStyle(Streets, testKey)
	if !strings.Contains(streets.Attribution, "MapTiler") || !strings.Contains(streets.Attribution, "OpenStreetMap") {
		t.Fatalf("streets attribution=%q, want MapTiler and OSM", streets.Attribution)
	}
}

func TestHybridComposite(t *testing.T) {
	layer, err := ForStyle(Hybrid, testKey)
	if err != nil {
		t.Fatal(err)
	}
	if !layer.IsComposite() {
		t.Fatal("hybrid should be a composite layer")
	}
	if len(layer.Sublayers) != 2 {
		t.Fatalf("got %d sublayers, want 2", len(layer.Sublayers))
	}
	if layer.Sublayers[0].ID != "satellite" {
		t.Fatalf("bottom sublayer=%q, want satellite", layer.Sublayers[0].ID)
	}
	want := "https://api.maptiler.com/maps/streets-v2/overlay/{z}/{x}/{y}.png?key=test-key"
	if layer.Sublayers[1].URL != want {
		t.Fatalf("labels url=%q, want %q", layer.Sublayers[1].URL, want)
	}
}

func TestForStyleUnknown(t *testing.T) {
	if _, err := ForStyle("watercolor", testKey); err == nil {
		t.Fatal("want error for unknown style")
	}
}
