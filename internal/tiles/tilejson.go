package tiles

// TileJSON is a TileJSON 3.0.0 descriptor for a raster tile source.
type TileJSON struct {
	Tilejson    string    `json:"tilejson"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Attribution string    `json:"attribution,omitempty"`
	Tiles       []string  `json:"tiles"`
	Minzoom     int       `json:"minzoom,omitempty"`
	Maxzoom     int       `json:"maxzoom,omitempty"`
	Bounds      []float64 `json:"bounds,omitempty"`
	Center      []float64 `json:"center,omitempty"`
}

// TileJSON returns the descriptor for the layer. A composite layer lists the
// URL templates of all its parts in stacking order.
func (l *Layer) TileJSON() TileJSON {
	urls := []string{}
	maxzoom := l.MaxZoom
	if l.IsComposite() {
		for _, sub := range l.Sublayers {
			urls = append(urls, sub.URL)
			if sub.MaxZoom > maxzoom {
				maxzoom = sub.MaxZoom
			}
		}
	} else {
		urls = append(urls, l.URL)
	}
	if maxzoom == 0 {
		maxzoom = 19
	}

	return TileJSON{
		Tilejson:    "3.0.0",
		Name:        l.Name,
		Attribution: l.Attribution,
		Tiles:       urls,
		Minzoom:     l.MinZoom,
		Maxzoom:     maxzoom,
		Bounds:      []float64{-180, -85.0511, 180, 85.0511},
		Center:      []float64{0, 0, 2},
	}
}
