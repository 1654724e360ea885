package editor

import (
	"context"
	"fmt"
	"log"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mapview/internal/db"
	"github.com/joeblew999/plat-mapview/internal/mapview"
	"github.com/joeblew999/plat-mapview/internal/service"
	"github.com/joeblew999/plat-mapview/internal/templates"
)

// ViewHandler drives one map view from the editor UI: base-layer switching,
// camera moves, marker placement, and overlay removal.
type ViewHandler struct {
	viewService *service.ViewService
	renderer    *templates.Renderer
	markers     *db.MarkerStore // optional durable store, nil without a DB
}

func NewViewHandler(viewService *service.ViewService, renderer *templates.Renderer, markers *db.MarkerStore) *ViewHandler {
	return &ViewHandler{viewService: viewService, renderer: renderer, markers: markers}
}

// save persists the view set after a mutation. Persistence failures are
// logged rather than surfaced: the live view already changed.
func (h *ViewHandler) save(id string) {
	if err := h.viewService.Save(); err != nil {
		log.Printf("editor: persisting view %q: %v", id, err)
	}
}

func (h *ViewHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/editor/views/{id}/control", h.Control, huma.OperationTags("editor"))
	huma.Post(api, "/api/v1/editor/views/{id}/baselayer", h.SetBaseLayer, huma.OperationTags("editor"))
	huma.Post(api, "/api/v1/editor/views/{id}/camera", h.Camera, huma.OperationTags("editor"))
	huma.Post(api, "/api/v1/editor/views/{id}/markers", h.AddMarker, huma.OperationTags("editor"))
	huma.Delete(api, "/api/v1/editor/views/{id}/overlays/{name}", h.RemoveOverlay, huma.OperationTags("editor"))
}

type ViewInput struct {
	ID string `path:"id" doc:"View ID"`
}

type ViewSignalsInput struct {
	ViewInput
	SignalsInput
}

// Control patches the layer-switcher control fragment.
func (h *ViewHandler) Control(ctx context.Context, input *ViewInput) (*huma.StreamResponse, error) {
	mv, ok := h.viewService.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}
	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			sse := NewSSE(humaCtx)
			sse.Patch(h.renderControl(input.ID, mv), "#layer-control")
		},
	}, nil
}

// SetBaseLayer switches the active base layer from the baselayer signal.
func (h *ViewHandler) SetBaseLayer(ctx context.Context, input *ViewSignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	name := signals.String("baselayer")
	if name == "" {
		return nil, huma.Error400BadRequest("Base layer name is required")
	}

	mv, ok := h.viewService.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}

	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			sse := NewSSE(humaCtx)
			mv.SetActiveBase(name)
			h.save(input.ID)
			sse.Patch(h.renderControl(input.ID, mv), "#layer-control")
		},
	}, nil
}

// Camera re-centers the map from lat/lon/zoom signals.
func (h *ViewHandler) Camera(ctx context.Context, input *ViewSignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}

	mv, ok := h.viewService.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}

	coord := mapview.Coordinate{
		Latitude:  signals.Float("lat"),
		Longitude: signals.Float("lon"),
	}

	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			sse := NewSSE(humaCtx)
			if signals.Has("zoom") && signals.Int("zoom") > 0 {
				mv.ChangeCamera(coord, signals.Int("zoom"))
			} else {
				mv.ChangeCamera(coord)
			}
			h.save(input.ID)
			sse.Signals(map[string]any{
				"success": fmt.Sprintf("Centered at %.5f, %.5f", coord.Latitude, coord.Longitude),
			})
		},
	}, nil
}

// AddMarker places a marker from markerlat/markerlon/popupcontent signals.
func (h *ViewHandler) AddMarker(ctx context.Context, input *ViewSignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}

	mv, ok := h.viewService.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}

	coord := mapview.Coordinate{
		Latitude:  signals.Float("markerlat"),
		Longitude: signals.Float("markerlon"),
	}

	var popup *mapview.PopupOptions
	if signals.Has("popupcontent") {
		popup, err = mapview.DecodePopupOptions(map[string]any{
			"content": signals.Value("popupcontent"),
		})
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
	}

	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			sse := NewSSE(humaCtx)

			marker, err := mv.AddMarker(coord, nil, popup)
			if err != nil {
				sse.Error(err.Error())
				return
			}
			h.save(input.ID)
			if h.markers != nil {
				if err := h.markers.Insert(ctx, input.ID, marker); err != nil {
					log.Printf("editor: storing marker %s for view %q: %v", marker.ID, input.ID, err)
				}
			}

			popupText := ""
			if marker.Popup != nil {
				popupText = marker.Popup.Content
			}
			html, _ := h.renderer.Render("marker-item", map[string]any{
				"ID":    marker.ID,
				"Lat":   marker.Coordinate.Latitude,
				"Lon":   marker.Coordinate.Longitude,
				"Popup": popupText,
			})
			sse.Append(html, "#marker-list")
			sse.Success("Marker added")
		},
	}, nil
}

type RemoveOverlayInput struct {
	ViewInput
	Name string `path:"name" doc:"Overlay name to remove"`
}

// RemoveOverlay detaches an overlay and re-renders the whole control
// fragment, since the client control has no per-entry update.
func (h *ViewHandler) RemoveOverlay(ctx context.Context, input *RemoveOverlayInput) (*huma.StreamResponse, error) {
	mv, ok := h.viewService.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}
	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			sse := NewSSE(humaCtx)
			mv.RemoveOverlayLayer(input.Name)
			h.save(input.ID)
			sse.Patch(h.renderControl(input.ID, mv), "#layer-control")
			sse.Success("Overlay removed")
		},
	}, nil
}

type baseEntry struct {
	Name   string
	Active bool
}

func (h *ViewHandler) renderControl(id string, mv *mapview.MapView) string {
	control := mv.Control()
	active := control.Active()

	var base []baseEntry
	for _, name := range control.BaseNames() {
		base = append(base, baseEntry{Name: name, Active: name == active})
	}

	html, err := h.renderer.Render("layer-control", map[string]any{
		"ViewID":   id,
		"Base":     base,
		"Overlays": control.OverlayNames(),
	})
	if err != nil {
		return ""
	}
	return html
}
