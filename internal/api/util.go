package api

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"

	"github.com/joeblew999/plat-mapview/internal/tiles"
)

func orbPoint(lat, lon float64) orb.Point {
	return orb.Point{lon, lat}
}

// tileURL resolves a concrete tile URL. Composite layers resolve through
// their first (bottom) part.
func tileURL(layer *tiles.Layer, t maptile.Tile) string {
	if layer.IsComposite() && len(layer.Sublayers) > 0 {
		layer = layer.Sublayers[0]
	}
	return layer.ExpandURL(t)
}
