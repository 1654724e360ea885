// Package mapview holds the server-side state of one interactive map: its
// camera, base and overlay tile layers, markers, and layer-switcher control.
// The browser engine mirrors this state; mutations are pushed to it over SSE
// or websocket by the transport layers.
package mapview

import (
	"context"
	"log"
	"sync"

	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-mapview/internal/geolocate"
	"github.com/joeblew999/plat-mapview/internal/tiles"
)

// DefaultZoom is the zoom level used when none is configured.
const DefaultZoom = 5

// DefaultCenter is the fallback coordinate used when neither an explicit
// center nor a geolocation fix is available.
var DefaultCenter = Coordinate{Latitude: -6.2, Longitude: 106.816666}

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude" doc:"Latitude in degrees" example:"-6.2"`
	Longitude float64 `json:"longitude" doc:"Longitude in degrees" example:"106.816666"`
}

// Point converts to an orb point (X=lon, Y=lat).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Options configures map construction. Any engine-specific settings the
// wrapper does not interpret go in Engine and are shallow-merged into the
// engine init config last.
type Options struct {
	// Center skips geolocation when set.
	Center *Coordinate
	// Locate triggers a single geolocation attempt when Center is absent.
	Locate bool
	// Zoom overrides DefaultZoom when positive.
	Zoom int
	// MapTilerKey selects the styled base-layer catalog. Without it the
	// catalog holds only the OpenStreetMap fallback.
	MapTilerKey string
	// Engine holds pass-through engine options.
	Engine map[string]any
}

// MapView is the authoritative state of one map instance. All fields are
// owned exclusively by the instance and guarded for concurrent transport
// access.
type MapView struct {
	mu sync.RWMutex

	target     string
	center     Coordinate
	zoom       int
	baseLayers map[string]*tiles.Layer
	activeBase string
	overlays   map[string]*tiles.Layer
	control    *LayerControl
	markers    []*Marker
	markerSeq  int
	listeners  map[string][]EventFunc
	engineOpts map[string]any
}

// Build resolves the initial center and constructs the map view. The center
// decision order is: explicit option, then a single geolocation attempt when
// requested, then DefaultCenter. A geolocation failure of any kind is logged
// and substituted with DefaultCenter; construction never fails because of
// it.
func Build(ctx context.Context, target string, opts Options, locator geolocate.Locator) *MapView {
	center := DefaultCenter
	switch {
	case opts.Center != nil:
		center = *opts.Center
	case opts.Locate:
		if locator == nil || !locator.Available() {
			log.Printf("mapview: geolocation unavailable, using default center")
			break
		}
		pos, err := locator.CurrentPosition(ctx, nil)
		if err != nil {
			log.Printf("mapview: geolocation failed, using default center: %v", err)
			break
		}
		center = Coordinate{Latitude: pos.Latitude, Longitude: pos.Longitude}
	}
	return New(target, center, opts)
}

// New constructs a map view synchronously. The base-layer catalog is built
// eagerly for every style regardless of whether it will be shown, the
// streets style (or the OSM fallback) starts active, and the layer-switcher
// control is attached immediately with all base layers and no overlays.
func New(target string, center Coordinate, opts Options) *MapView {
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	baseLayers, active := tiles.BaseLayers(opts.MapTilerKey)

	mv := &MapView{
		target:     target,
		center:     center,
		zoom:       zoom,
		baseLayers: baseLayers,
		activeBase: active,
		overlays:   make(map[string]*tiles.Layer),
		listeners:  make(map[string][]EventFunc),
	}
	mv.control = NewLayerControl(mv.baseNamesInOrder(), active)

	// Engine init config: forced entries first, caller options merged last
	// so they can override zoom or layers but never delete the layer list.
	merged := map[string]any{
		"center": []float64{center.Latitude, center.Longitude},
		"zoom":   zoom,
		"layers": []string{active},
	}
	for k, v := range opts.Engine {
		merged[k] = v
	}
	mv.engineOpts = merged

	return mv
}

// Target returns the DOM selector the client binds the map canvas to.
func (m *MapView) Target() string {
	return m.target
}

// Zoom returns the current zoom setting.
func (m *MapView) Zoom() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.zoom
}

// Center returns the current map center.
func (m *MapView) Center() Coordinate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.center
}

// ChangeCamera re-centers the map at coord, using the given zoom level when
// provided and the instance's current zoom setting otherwise. Coordinates
// are passed through unvalidated; the engine's normalization applies.
func (m *MapView) ChangeCamera(coord Coordinate, zoom ...int) {
	m.mu.Lock()
	m.center = coord
	if len(zoom) > 0 {
		m.zoom = zoom[0]
	}
	z := m.zoom
	m.mu.Unlock()

	m.Fire("move", map[string]any{
		"latitude":  coord.Latitude,
		"longitude": coord.Longitude,
		"zoom":      z,
	})
}

// BaseLayers returns the base-layer catalog keyed by display name.
func (m *MapView) BaseLayers() map[string]*tiles.Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]*tiles.Layer, len(m.baseLayers))
	for k, v := range m.baseLayers {
		result[k] = v
	}
	return result
}

// ActiveBase returns the display name of the active base layer.
func (m *MapView) ActiveBase() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeBase
}

// SetActiveBase switches the active base layer. Unknown names are ignored.
func (m *MapView) SetActiveBase(name string) {
	m.mu.Lock()
	_, ok := m.baseLayers[name]
	if ok {
		m.activeBase = name
		m.control.SetActive(name)
	}
	m.mu.Unlock()

	if ok {
		m.Fire("baselayerchange", map[string]any{"name": name})
	}
}

// AddOverlayLayer registers layer under name, overwriting any prior entry
// under that name without detaching the old layer, and makes it toggleable
// through the layer-switcher control. Returns the layer handle.
func (m *MapView) AddOverlayLayer(name string, layer *tiles.Layer) *tiles.Layer {
	m.mu.Lock()
	m.overlays[name] = layer
	m.control.AddOverlay(name)
	m.mu.Unlock()

	m.Fire("overlayadd", map[string]any{"name": name})
	return layer
}

// RemoveOverlayLayer detaches the named overlay and removes it from the
// control. Absent names are a no-op.
func (m *MapView) RemoveOverlayLayer(name string) {
	m.mu.Lock()
	if _, ok := m.overlays[name]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.overlays, name)
	m.control.RemoveOverlay(name)
	m.mu.Unlock()

	m.Fire("overlayremove", map[string]any{"name": name})
}

// Overlays returns the overlay mapping.
func (m *MapView) Overlays() map[string]*tiles.Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]*tiles.Layer, len(m.overlays))
	for k, v := range m.overlays {
		result[k] = v
	}
	return result
}

// Control returns the layer-switcher control.
func (m *MapView) Control() *LayerControl {
	return m.control
}

// EngineOptions returns the merged engine init config sent to the client.
func (m *MapView) EngineOptions() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]any, len(m.engineOpts))
	for k, v := range m.engineOpts {
		result[k] = v
	}
	return result
}

// baseNamesInOrder lists base-layer display names in catalog order, with the
// active layer's ordering defined by tiles.Styles.
func (m *MapView) baseNamesInOrder() []string {
	if len(m.baseLayers) == 1 {
		for name := range m.baseLayers {
			return []string{name}
		}
	}

	names := make([]string, 0, len(m.baseLayers))
	for _, s := range tiles.Styles {
		for name, l := range m.baseLayers {
			if l.ID == string(s) {
				names = append(names, name)
			}
		}
	}
	return names
}
