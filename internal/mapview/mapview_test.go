package mapview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joeblew999/plat-mapview/internal/geolocate"
	"github.com/joeblew999/plat-mapview/internal/mapview"
)

const testKey = "test-key"

// fakeLocator implements geolocate.Locator for construction tests.
type fakeLocator struct {
	available bool
	pos       geolocate.Position
	err       error
}

func (f *fakeLocator) Available() bool { return f.available }

func (f *fakeLocator) CurrentPosition(ctx context.Context, opts *geolocate.Options) (geolocate.Position, error) {
	if !f.available {
		return geolocate.Position{}, geolocate.ErrUnavailable
	}
	return f.pos, f.err
}

func TestBuildExplicitCenter(t *testing.T) {
	center := mapview.Coordinate{Latitude: 51.5, Longitude: -0.12}
	mv := mapview.Build(context.Background(), "#map", mapview.Options{
		Center: &center,
		Locate: true, // explicit center wins, no geolocation attempt
	}, &fakeLocator{available: true, err: errors.New("should not be called")})

	if got := mv.Center(); got != center {
		t.Fatalf("center=%+v, want %+v", got, center)
	}
}

func TestBuildLocateSuccess(t *testing.T) {
	loc := &fakeLocator{available: true, pos: geolocate.Position{Latitude: 35.6, Longitude: 139.7}}
	mv := mapview.Build(context.Background(), "#map", mapview.Options{Locate: true}, loc)

	want := mapview.Coordinate{Latitude: 35.6, Longitude: 139.7}
	if got := mv.Center(); got != want {
		t.Fatalf("center=%+v, want %+v", got, want)
	}
}

func TestBuildLocateFailureFallsBack(t *testing.T) {
	loc := &fakeLocator{available: true, err: errors.New("permission denied")}
	mv := mapview.Build(context.Background(), "#map", mapview.Options{Locate: true}, loc)

	if got := mv.Center(); got != mapview.DefaultCenter {
		t.Fatalf("center=%+v, want default %+v", got, mapview.DefaultCenter)
	}
}

func TestBuildLocateUnavailableFallsBack(t *testing.T) {
	mv := mapview.Build(context.Background(), "#map", mapview.Options{Locate: true}, &fakeLocator{})

	if got := mv.Center(); got != mapview.DefaultCenter {
		t.Fatalf("center=%+v, want default %+v", got, mapview.DefaultCenter)
	}
}

func TestBuildNoCenterNoLocate(t *testing.T) {
	mv := mapview.Build(context.Background(), "#map", mapview.Options{}, nil)

	if got := mv.Center(); got != mapview.DefaultCenter {
		t.Fatalf("center=%+v, want default %+v", got, mapview.DefaultCenter)
	}
}

func TestDefaultZoom(t *testing.T) {
	mv := mapview.New("#map", mapview.DefaultCenter, mapview.Options{})
	if mv.Zoom() != 5 {
		t.Fatalf("zoom=%d, want 5", mv.Zoom())
	}

	mv = mapview.New("#map", mapview.DefaultCenter, mapview.Options{Zoom: 12})
	if mv.Zoom() != 12 {
		t.Fatalf("zoom=%d, want 12", mv.Zoom())
	}
}

func TestBaseCatalogKeyed(t *testing.T) {
	mv := mapview.New("#map", mapview.DefaultCenter, mapview.Options{MapTilerKey: testKey})

	if len(mv.BaseLayers()) != 6 {
		t.Fatalf("got %d base layers, want 6", len(mv.BaseLayers()))
	}
	if mv.ActiveBase() != "Streets" {
		t.Fatalf("active=%q, want Streets", mv.ActiveBase())
	}

	want := []string{"Streets", "Satellite", "Hybrid", "Basic", "Toner", "Dark"}
	got := mv.Control().BaseNames()
	if len(got) != len(want) {
		t.Fatalf("control names=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("control names=%v, want %v", got, want)
		}
	}
}

func TestBaseCatalogKeyless(t *testing.T) {
	mv := mapview.New("#map", mapview.DefaultCenter, mapview.Options{})

	if len(mv.BaseLayers()) != 1 {
		t.Fatalf("got %d base layers, want 1", len(mv.BaseLayers()))
	}
	if mv.ActiveBase() != "OpenStreetMap" {
		t.Fatalf("active=%q, want OpenStreetMap", mv.ActiveBase())
	}
}

func TestChangeCameraAndCenter(t *testing.T) {
	mv := mapview.New("#map", mapview.DefaultCenter, mapview.Options{})

	mv.ChangeCamera(mapview.Coordinate{Latitude: 10, Longitude: 20})
	got := mv.Center()
	if got.Latitude != 10 || got.Longitude != 20 {
		t.Fatalf("center=%+v, want {10 20}", got)
	}
	if mv.Zoom() != 5 {
		t.Fatalf("zoom=%d, want unchanged 5", mv.Zoom())
	}

	mv.ChangeCamera(mapview.Coordinate{Latitude: -1, Longitude: -2}, 9)
	if mv.Zoom() != 9 {
		t.Fatalf("zoom=%d, want 9", mv.Zoom())
	}
}

func TestEngineOptionsMerge(t *testing.T) {
	mv := mapview.New("#map", mapview.DefaultCenter, mapview.Options{
		Engine: map[string]any{"zoom": 10, "attributionControl": false},
	})

	opts := mv.EngineOptions()
	if opts["zoom"] != 10 {
		t.Fatalf("zoom=%v, want caller override 10", opts["zoom"])
	}
	if opts["attributionControl"] != false {
		t.Fatalf("attributionControl=%v, want false", opts["attributionControl"])
	}
	// The forced layer list entry survives the merge.
	if _, ok := opts["layers"]; !ok {
		t.Fatal("layers entry missing from engine options")
	}
}

func TestSetActiveBase(t *testing.T) {
	mv := mapview.New("#map", mapview.DefaultCenter, mapview.Options{MapTilerKey: testKey})

	mv.SetActiveBase("Dark")
	if mv.ActiveBase() != "Dark" {
		t.Fatalf("active=%q, want Dark", mv.ActiveBase())
	}

	mv.SetActiveBase("NoSuchLayer")
	if mv.ActiveBase() != "Dark" {
		t.Fatalf("active=%q, unknown names must be ignored", mv.ActiveBase())
	}
}

func TestEventListenerOrder(t *testing.T) {
	mv := mapview.New("#map", mapview.DefaultCenter, mapview.Options{})

	var order []string
	mv.On("move", func(ev mapview.Event) { order = append(order, "first") })
	mv.On("move", func(ev mapview.Event) { order = append(order, "second") })
	mv.On(mapview.Wildcard, func(ev mapview.Event) { order = append(order, "wildcard") })

	mv.ChangeCamera(mapview.Coordinate{Latitude: 1, Longitude: 2})

	want := []string{"first", "second", "wildcard"}
	if len(order) != len(want) {
		t.Fatalf("order=%v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v, want %v", order, want)
		}
	}
}
