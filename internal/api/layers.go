package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"

	"github.com/joeblew999/plat-mapview/internal/tiles"
)

// LayerHandler serves the tile-layer catalog.
type LayerHandler struct {
	maptilerKey string
}

// NewLayerHandler creates a layer catalog handler.
func NewLayerHandler(maptilerKey string) *LayerHandler {
	return &LayerHandler{maptilerKey: maptilerKey}
}

// RegisterRoutes registers layer catalog routes with Huma.
func (h *LayerHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/styles", h.GetStyles, huma.OperationTags("layers"))
	huma.Get(api, "/api/v1/styles/{style}/tilejson", h.GetTileJSON, huma.OperationTags("layers"))
	huma.Get(api, "/api/v1/styles/{style}/prefetch", h.Prefetch, huma.OperationTags("layers"))
}

// StylesBody lists the available base-layer styles. Without a provider key
// the catalog collapses to the OpenStreetMap fallback.
type StylesBody struct {
	Styles []string                `json:"styles" doc:"Available style names"`
	Layers map[string]*tiles.Layer `json:"layers" doc:"Base layers by display name"`
	Active string                  `json:"active" doc:"Initially active layer name"`
}

func (h *LayerHandler) GetStyles(ctx context.Context, input *struct{}) (*struct{ Body StylesBody }, error) {
	layers, active := tiles.BaseLayers(h.maptilerKey)

	var styles []string
	if h.maptilerKey == "" {
		styles = []string{string(tiles.OSM)}
	} else {
		for _, s := range tiles.Styles {
			styles = append(styles, string(s))
		}
	}

	return &struct{ Body StylesBody }{Body: StylesBody{
		Styles: styles,
		Layers: layers,
		Active: active,
	}}, nil
}

type StyleInput struct {
	Style string `path:"style" doc:"Style name" example:"streets"`
}

func (h *LayerHandler) GetTileJSON(ctx context.Context, input *StyleInput) (*struct{ Body tiles.TileJSON }, error) {
	layer, err := h.styleLayer(input.Style)
	if err != nil {
		return nil, err
	}
	return &struct{ Body tiles.TileJSON }{Body: layer.TileJSON()}, nil
}

// PrefetchInput selects the tiles to warm: either a neighborhood around a
// point, or the cover of a bounding box when bbox is given.
type PrefetchInput struct {
	StyleInput
	Lat    float64 `query:"lat" doc:"Latitude in degrees (ignored when bbox is given)"`
	Lon    float64 `query:"lon" doc:"Longitude in degrees (ignored when bbox is given)"`
	Bbox   string  `query:"bbox" doc:"Bounding box as minLon,minLat,maxLon,maxLat"`
	Zoom   int     `query:"zoom" minimum:"0" maximum:"22" doc:"Zoom level (default 5)"`
	Radius uint32  `query:"radius" maximum:"4" doc:"Neighborhood radius in tiles (default 1)"`
}

// TileRef addresses a single tile.
type TileRef struct {
	Z   uint32 `json:"z" doc:"Zoom level"`
	X   uint32 `json:"x" doc:"Tile column"`
	Y   uint32 `json:"y" doc:"Tile row"`
	URL string `json:"url" doc:"Resolved tile URL"`
}

// PrefetchBody lists the tiles the client should warm before a camera move.
type PrefetchBody struct {
	Tiles []TileRef `json:"tiles" doc:"Tiles covering the neighborhood"`
	Count int       `json:"count" doc:"Number of tiles listed"`
}

func (h *LayerHandler) Prefetch(ctx context.Context, input *PrefetchInput) (*struct{ Body PrefetchBody }, error) {
	layer, err := h.styleLayer(input.Style)
	if err != nil {
		return nil, err
	}

	zoom := input.Zoom
	if zoom == 0 {
		zoom = 5
	}
	radius := input.Radius
	if radius == 0 {
		radius = 1
	}

	var covered []maptile.Tile
	if input.Bbox != "" {
		bound, err := parseBbox(input.Bbox)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		covered = tiles.Cover(bound, maptile.Zoom(zoom))
	} else {
		point := orbPoint(input.Lat, input.Lon)
		covered = tiles.Around(point, maptile.Zoom(zoom), radius)
	}

	refs := make([]TileRef, 0, len(covered))
	for _, t := range covered {
		refs = append(refs, TileRef{
			Z: uint32(t.Z), X: t.X, Y: t.Y,
			URL: tileURL(layer, t),
		})
	}

	return &struct{ Body PrefetchBody }{Body: PrefetchBody{Tiles: refs, Count: len(refs)}}, nil
}

// parseBbox reads a minLon,minLat,maxLon,maxLat query value.
func parseBbox(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("bbox wants minLon,minLat,maxLon,maxLat, got %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("bbox component %q: %w", p, err)
		}
		vals[i] = v
	}
	if vals[0] > vals[2] || vals[1] > vals[3] {
		return orb.Bound{}, fmt.Errorf("bbox min exceeds max in %q", s)
	}
	return orb.Bound{Min: orb.Point{vals[0], vals[1]}, Max: orb.Point{vals[2], vals[3]}}, nil
}

func (h *LayerHandler) styleLayer(style string) (*tiles.Layer, error) {
	s := tiles.Style(style)
	if s != tiles.OSM && h.maptilerKey == "" {
		return nil, huma.Error404NotFound("style requires a MapTiler key; only the OpenStreetMap fallback is available")
	}
	layer, err := tiles.ForStyle(s, h.maptilerKey)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return layer, nil
}
