package tiles

import "testing"

func TestTileJSONSingleLayer(t *testing.T) {
	layer, _ := ForStyle(Streets, testKey)
	tj := layer.TileJSON()

	if tj.Tilejson != "3.0.0" {
		t.Fatalf("tilejson=%q, want 3.0.0", tj.Tilejson)
	}
	if len(tj.Tiles) != 1 || tj.Tiles[0] != layer.URL {
		t.Fatalf("tiles=%v, want [%s]", tj.Tiles, layer.URL)
	}
	if tj.Minzoom != 1 {
		t.Fatalf("minzoom=%d, want 1", tj.Minzoom)
	}
	if tj.Maxzoom != 19 {
		t.Fatalf("maxzoom=%d, want default 19", tj.Maxzoom)
	}
}

func TestTileJSONComposite(t *testing.T) {
	layer, _ := ForStyle(Hybrid, testKey)
	tj := layer.TileJSON()

	if len(tj.Tiles) != 2 {
		t.Fatalf("tiles=%d, want 2 for composite", len(tj.Tiles))
	}
	if tj.Tiles[0] != layer.Sublayers[0].URL {
		t.Fatal("composite tiles must be listed in stacking order")
	}
}
