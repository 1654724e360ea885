// Package tiles builds the base and overlay tile layer catalog served to
// the browser map engine.
package tiles

import (
	"fmt"
	"strings"
)

// Style identifies a named base-layer style hosted by MapTiler.
type Style string

const (
	Streets   Style = "streets"
	Basic     Style = "basic"
	Toner     Style = "toner"
	Dark      Style = "dark"
	Satellite Style = "satellite"
	Hybrid    Style = "hybrid"

	// OSM is the keyless fallback style.
	OSM Style = "openstreetmap"
)

// Styles lists the keyed styles in display order.
var Styles = []Style{Streets, Satellite, Hybrid, Basic, Toner, Dark}

const (
	maptilerBase = "https://api.maptiler.com"
	osmURL       = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"

	maptilerAttribution = `&copy; <a href="https://www.maptiler.com/">MapTiler</a>`
	osmAttribution      = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// Fixed rendering parameters for MapTiler raster tiles. The provider serves
// 512px tiles, which shifts the zoom scale by -1 relative to 256px tiles.
const (
	maptilerTileSize   = 512
	maptilerZoomOffset = -1
	maptilerMinZoom    = 1

	osmTileSize   = 256
	osmZoomOffset = 0
)

// Layer describes one tile layer the client engine can render. A composite
// layer (hybrid) carries its stacked parts in Sublayers and no URL of its own.
type Layer struct {
	ID          string   `json:"id" doc:"Layer identifier" example:"streets"`
	Name        string   `json:"name" doc:"Display name for the layer control" example:"Streets"`
	URL         string   `json:"url,omitempty" doc:"Tile URL template with {z}/{x}/{y} placeholders"`
	TileSize    int      `json:"tileSize,omitempty" doc:"Tile edge length in pixels" example:"512"`
	ZoomOffset  int      `json:"zoomOffset,omitempty" doc:"Zoom offset applied by the engine" example:"-1"`
	MinZoom     int      `json:"minZoom,omitempty" doc:"Minimum zoom level" example:"1"`
	MaxZoom     int      `json:"maxZoom,omitempty" doc:"Maximum zoom level" example:"19"`
	Attribution string   `json:"attribution,omitempty" doc:"Attribution HTML"`
	Sublayers   []*Layer `json:"sublayers,omitempty" doc:"Stacked parts of a composite layer"`
}

// IsComposite reports whether the layer is a stacked group.
func (l *Layer) IsComposite() bool {
	return len(l.Sublayers) > 0
}

// ForStyle returns the layer for a style. The mapping is deterministic:
// satellite is a single raster layer, hybrid stacks the satellite raster
// under a transparent label overlay, and the remaining styles are plain
// raster layers from the maps endpoint. OSM needs no key.
func ForStyle(style Style, key string) (*Layer, error) {
	switch style {
	case OSM:
		return osmLayer(), nil
	case Satellite:
		return satelliteLayer(key), nil
	case Hybrid:
		return &Layer{
			ID:   string(Hybrid),
			Name: displayName(Hybrid),
			Sublayers: []*Layer{
				satelliteLayer(key),
				{
					ID:          "hybrid-labels",
					Name:        "Hybrid Labels",
					URL:         fmt.Sprintf("%s/maps/streets-v2/overlay/{z}/{x}/{y}.png?key=%s", maptilerBase, key),
					TileSize:    maptilerTileSize,
					ZoomOffset:  maptilerZoomOffset,
					MinZoom:     maptilerMinZoom,
					Attribution: maptilerAttribution + " " + osmAttribution,
				},
			},
		}, nil
	case Streets, Basic, Toner, Dark:
		return &Layer{
			ID:          string(style),
			Name:        displayName(style),
			URL:         fmt.Sprintf("%s/maps/%s-v2/{z}/{x}/{y}.png?key=%s", maptilerBase, style, key),
			TileSize:    maptilerTileSize,
			ZoomOffset:  maptilerZoomOffset,
			MinZoom:     maptilerMinZoom,
			Attribution: maptilerAttribution + " " + osmAttribution,
		}, nil
	default:
		return nil, fmt.Errorf("unknown tile style %q", style)
	}
}

// BaseLayers returns the base-layer catalog keyed by display name, plus the
// name of the initially active layer. With a provider key the set holds the
// six styled entries and streets is active; without one it holds exactly the
// OSM entry.
func BaseLayers(key string) (map[string]*Layer, string) {
	if key == "" {
		l := osmLayer()
		return map[string]*Layer{l.Name: l}, l.Name
	}

	layers := make(map[string]*Layer, len(Styles))
	for _, s := range Styles {
		l, err := ForStyle(s, key)
		if err != nil {
			continue
		}
		layers[l.Name] = l
	}
	active, _ := ForStyle(Streets, key)
	return layers, active.Name
}

func satelliteLayer(key string) *Layer {
	return &Layer{
		ID:          string(Satellite),
		Name:        displayName(Satellite),
		URL:         fmt.Sprintf("%s/tiles/satellite/{z}/{x}/{y}.jpg?key=%s", maptilerBase, key),
		TileSize:    maptilerTileSize,
		ZoomOffset:  maptilerZoomOffset,
		MinZoom:     maptilerMinZoom,
		Attribution: maptilerAttribution,
	}
}

func osmLayer() *Layer {
	return &Layer{
		ID:          string(OSM),
		Name:        "OpenStreetMap",
		URL:         osmURL,
		TileSize:    osmTileSize,
		ZoomOffset:  osmZoomOffset,
		Attribution: osmAttribution,
	}
}

func displayName(s Style) string {
	name := string(s)
	return strings.ToUpper(name[:1]) + name[1:]
}
