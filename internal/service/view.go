package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/joeblew999/plat-mapview/internal/geolocate"
	"github.com/joeblew999/plat-mapview/internal/mapview"
	"github.com/joeblew999/plat-mapview/internal/tiles"
)

// ViewService manages named map views and persists their state.
type ViewService struct {
	dataDir     string
	maptilerKey string
	locator     geolocate.Locator
	views       map[string]*mapview.MapView
	mu          sync.RWMutex
}

// NewViewService creates a view service. Persisted views are restored from
// disk immediately. The MapTiler key applies to every view the service
// constructs; without one, views fall back to the OpenStreetMap base layer.
func NewViewService(dataDir, maptilerKey string, locator geolocate.Locator) *ViewService {
	s := &ViewService{
		dataDir:     dataDir,
		maptilerKey: maptilerKey,
		locator:     locator,
		views:       make(map[string]*mapview.MapView),
	}
	s.loadFromDisk()
	return s
}

// CreateOptions configures a view created through the service.
type CreateOptions struct {
	Center *mapview.Coordinate
	Locate bool
	Zoom   int
	Engine map[string]any
}

// Create builds a new map view under an ID derived from the target and wires
// its events onto the bus. Geolocation is attempted only when requested and
// no explicit center is given; its failure never fails creation.
func (s *ViewService) Create(ctx context.Context, target string, opts CreateOptions) (string, *mapview.MapView, error) {
	id := generateID(target)
	if id == "" {
		return "", nil, fmt.Errorf("cannot derive a view ID from target %q", target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.views[id]; exists {
		return "", nil, fmt.Errorf("view with ID %q already exists", id)
	}

	mv := mapview.Build(ctx, target, mapview.Options{
		Center:      opts.Center,
		Locate:      opts.Locate,
		Zoom:        opts.Zoom,
		MapTilerKey: s.maptilerKey,
		Engine:      opts.Engine,
	}, s.locator)

	s.attachBus(id, mv)
	s.views[id] = mv
	if err := s.saveToDisk(); err != nil {
		delete(s.views, id)
		return "", nil, err
	}

	return id, mv, nil
}

// Get returns a view by ID.
func (s *ViewService) Get(id string) (*mapview.MapView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mv, ok := s.views[id]
	return mv, ok
}

// List returns snapshots of all views.
func (s *ViewService) List() map[string]ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]ViewState, len(s.views))
	for id, mv := range s.views {
		result[id] = Snapshot(id, mv)
	}
	return result
}

// Delete removes a view by ID.
func (s *ViewService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.views[id]; !exists {
		return fmt.Errorf("view %q not found", id)
	}

	delete(s.views, id)
	return s.saveToDisk()
}

// Save persists the current state of all views. Handlers call this after
// mutating a view through its handle.
func (s *ViewService) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveToDisk()
}

// attachBus forwards every event a view fires onto the shared bus.
func (s *ViewService) attachBus(id string, mv *mapview.MapView) {
	mv.On(mapview.Wildcard, func(ev mapview.Event) {
		DefaultBus.Publish(Event{View: id, Name: ev.Name, Data: ev.Data})
	})
}

// configFile returns the path to the views state file.
func (s *ViewService) configFile() string {
	return filepath.Join(s.dataDir, "views.json")
}

// loadFromDisk restores persisted views. Each view is rebuilt from its
// snapshot: constructed with its saved center and zoom, then overlays and
// markers are replayed in order.
func (s *ViewService) loadFromDisk() {
	data, err := os.ReadFile(s.configFile())
	if err != nil {
		return // File doesn't exist yet, start empty
	}

	var states map[string]ViewState
	if err := json.Unmarshal(data, &states); err != nil {
		return // Invalid JSON, start empty
	}

	for id, st := range states {
		center := st.Center
		mv := mapview.New(st.Target, center, mapview.Options{
			Zoom:        st.Zoom,
			MapTilerKey: s.maptilerKey,
		})
		for _, name := range sortedOverlayNames(st.Overlays) {
			mv.AddOverlayLayer(name, st.Overlays[name])
		}
		for _, marker := range st.Markers {
			mv.AddMarker(marker.Coordinate, marker.Options, marker.Popup)
		}
		mv.SetActiveBase(st.ActiveBase)
		s.attachBus(id, mv)
		s.views[id] = mv
	}
}

// saveToDisk persists view snapshots. Callers hold the lock.
func (s *ViewService) saveToDisk() error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}

	states := make(map[string]ViewState, len(s.views))
	for id, mv := range s.views {
		states[id] = Snapshot(id, mv)
	}

	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.configFile(), data, 0644)
}

// sortedOverlayNames gives the replay a stable order; insertion order is not
// recoverable from the snapshot map.
func sortedOverlayNames(overlays map[string]*tiles.Layer) []string {
	names := make([]string, 0, len(overlays))
	for name := range overlays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// generateID creates a URL-safe ID from a target selector.
func generateID(target string) string {
	id := strings.ToLower(target)
	id = strings.TrimPrefix(id, "#")
	id = strings.TrimPrefix(id, ".")
	id = strings.ReplaceAll(id, " ", "_")
	// Remove any characters that aren't alphanumeric or underscore
	var result strings.Builder
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
