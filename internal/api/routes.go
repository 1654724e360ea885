// Package api defines the Huma API routes and handlers.
package api

import (
	"context"
	"errors"
	"log"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mapview/internal/db"
	"github.com/joeblew999/plat-mapview/internal/geolocate"
	"github.com/joeblew999/plat-mapview/internal/mapview"
	"github.com/joeblew999/plat-mapview/internal/service"
	"github.com/joeblew999/plat-mapview/internal/tiles"
)

// Services holds the service dependencies for API handlers.
type Services struct {
	View    *service.ViewService
	Icon    *service.IconService
	Markers *db.MarkerStore
	Locator geolocate.Locator
}

// RegisterRoutes registers all auto-discovered API routes.
func RegisterRoutes(humaAPI huma.API, svc *Services) {
	huma.AutoRegister(humaAPI, NewAPIHandler(svc))
}

// Types

type ViewIDInput struct {
	ID string `path:"id" doc:"View ID" example:"main_map"`
}

type ViewOutput struct {
	Body service.ViewState
}

type ViewsOutput struct {
	Body map[string]service.ViewState
}

type MessageBody struct {
	Message string `json:"message" doc:"Result message"`
}

type CreatedViewBody struct {
	ID      string            `json:"id" doc:"Generated view ID"`
	View    service.ViewState `json:"view" doc:"Created view state"`
	Message string            `json:"message" doc:"Result message"`
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

// APIHandler holds all REST API handlers. Methods named Register* are
// auto-discovered by huma.AutoRegister.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterHealth registers health check routes.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

// RegisterViews registers view lifecycle routes.
func (h *APIHandler) RegisterViews(api huma.API) {
	huma.Get(api, "/api/v1/views", h.GetViews, huma.OperationTags("views"))
	huma.Post(api, "/api/v1/views", h.CreateView, huma.OperationTags("views"))
	huma.Get(api, "/api/v1/views/{id}", h.GetView, huma.OperationTags("views"))
	huma.Delete(api, "/api/v1/views/{id}", h.DeleteView, huma.OperationTags("views"))
}

// RegisterCamera registers camera routes.
func (h *APIHandler) RegisterCamera(api huma.API) {
	huma.Post(api, "/api/v1/views/{id}/camera", h.ChangeCamera, huma.OperationTags("camera"))
	huma.Get(api, "/api/v1/views/{id}/center", h.GetCenter, huma.OperationTags("camera"))
}

// RegisterMarkers registers marker routes.
func (h *APIHandler) RegisterMarkers(api huma.API) {
	huma.Post(api, "/api/v1/views/{id}/markers", h.AddMarker, huma.OperationTags("markers"))
	huma.Get(api, "/api/v1/views/{id}/markers", h.GetMarkers, huma.OperationTags("markers"))
}

// RegisterOverlays registers overlay layer routes.
func (h *APIHandler) RegisterOverlays(api huma.API) {
	huma.Put(api, "/api/v1/views/{id}/overlays/{name}", h.PutOverlay, huma.OperationTags("overlays"))
	huma.Delete(api, "/api/v1/views/{id}/overlays/{name}", h.DeleteOverlay, huma.OperationTags("overlays"))
}

// RegisterIcons registers icon catalog routes.
func (h *APIHandler) RegisterIcons(api huma.API) {
	huma.Get(api, "/api/v1/icons", h.GetIcons, huma.OperationTags("icons"))
}

// RegisterLocate registers geolocation routes.
func (h *APIHandler) RegisterLocate(api huma.API) {
	huma.Get(api, "/api/v1/locate", h.Locate, huma.OperationTags("locate"))
}

// Handlers

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0"}}, nil
}

func (h *APIHandler) GetViews(ctx context.Context, input *struct{}) (*ViewsOutput, error) {
	if h.svc == nil || h.svc.View == nil {
		return &ViewsOutput{Body: map[string]service.ViewState{}}, nil
	}
	return &ViewsOutput{Body: h.svc.View.List()}, nil
}

// CreateViewBody mirrors the construction configuration: an explicit center
// skips geolocation, locate requests one geolocation attempt, and any engine
// settings pass through to the client map constructor.
type CreateViewBody struct {
	Target string              `json:"target" required:"true" minLength:"1" doc:"DOM selector for the map canvas" example:"#map"`
	Center *mapview.Coordinate `json:"center,omitempty" doc:"Explicit initial center (skips geolocation)"`
	Locate bool                `json:"locate,omitempty" doc:"Attempt geolocation when no center is given"`
	Zoom   int                 `json:"zoom,omitempty" minimum:"0" maximum:"22" doc:"Initial zoom level (default 5)"`
	Engine map[string]any      `json:"engine,omitempty" doc:"Pass-through engine options"`
}

func (h *APIHandler) CreateView(ctx context.Context, input *struct{ Body CreateViewBody }) (*struct{ Body CreatedViewBody }, error) {
	if h.svc == nil || h.svc.View == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	id, mv, err := h.svc.View.Create(ctx, input.Body.Target, service.CreateOptions{
		Center: input.Body.Center,
		Locate: input.Body.Locate,
		Zoom:   input.Body.Zoom,
		Engine: input.Body.Engine,
	})
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return &struct{ Body CreatedViewBody }{Body: CreatedViewBody{
		ID: id, View: service.Snapshot(id, mv), Message: "View created",
	}}, nil
}

func (h *APIHandler) GetView(ctx context.Context, input *ViewIDInput) (*ViewOutput, error) {
	mv, ok := h.view(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}
	return &ViewOutput{Body: service.Snapshot(input.ID, mv)}, nil
}

func (h *APIHandler) DeleteView(ctx context.Context, input *ViewIDInput) (*struct{ Body MessageBody }, error) {
	if h.svc == nil || h.svc.View == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	if err := h.svc.View.Delete(input.ID); err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	if h.svc.Markers != nil {
		if err := h.svc.Markers.DeleteView(ctx, input.ID); err != nil {
			log.Printf("api: dropping stored markers for view %q: %v", input.ID, err)
		}
	}
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "View deleted"}}, nil
}

// CameraBody re-centers the camera; zoom falls back to the view's current
// setting when omitted.
type CameraBody struct {
	Center mapview.Coordinate `json:"center" required:"true" doc:"New map center"`
	Zoom   *int               `json:"zoom,omitempty" minimum:"0" maximum:"22" doc:"Zoom level override"`
}

func (h *APIHandler) ChangeCamera(ctx context.Context, input *struct {
	ViewIDInput
	Body CameraBody
}) (*ViewOutput, error) {
	mv, ok := h.view(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}
	if input.Body.Zoom != nil {
		mv.ChangeCamera(input.Body.Center, *input.Body.Zoom)
	} else {
		mv.ChangeCamera(input.Body.Center)
	}
	h.saveView(input.ID)
	return &ViewOutput{Body: service.Snapshot(input.ID, mv)}, nil
}

func (h *APIHandler) GetCenter(ctx context.Context, input *ViewIDInput) (*struct{ Body mapview.Coordinate }, error) {
	mv, ok := h.view(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}
	return &struct{ Body mapview.Coordinate }{Body: mv.Center()}, nil
}

// MarkerBody carries the marker placement request. Options arrive untyped so
// a payload that is not an options object is rejected with an
// invalid-argument error before any marker is created.
type MarkerBody struct {
	Coordinate    mapview.Coordinate `json:"coordinate" required:"true" doc:"Marker position"`
	MarkerOptions any                `json:"markerOptions,omitempty" doc:"Marker options object"`
	PopupOptions  any                `json:"popupOptions,omitempty" doc:"Popup options object; requires a content field"`
}

func (h *APIHandler) AddMarker(ctx context.Context, input *struct {
	ViewIDInput
	Body MarkerBody
}) (*struct{ Body mapview.Marker }, error) {
	mv, ok := h.view(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}

	opts, err := mapview.DecodeMarkerOptions(input.Body.MarkerOptions)
	if err != nil {
		return nil, markerError(err)
	}
	popup, err := mapview.DecodePopupOptions(input.Body.PopupOptions)
	if err != nil {
		return nil, markerError(err)
	}

	marker, err := mv.AddMarker(input.Body.Coordinate, opts, popup)
	if err != nil {
		return nil, markerError(err)
	}
	h.saveView(input.ID)
	if h.svc.Markers != nil {
		if err := h.svc.Markers.Insert(ctx, input.ID, marker); err != nil {
			log.Printf("api: storing marker %s for view %q: %v", marker.ID, input.ID, err)
		}
	}
	return &struct{ Body mapview.Marker }{Body: *marker}, nil
}

// GetMarkers serves from the durable marker store when one is attached,
// falling back to the in-memory view state.
func (h *APIHandler) GetMarkers(ctx context.Context, input *ViewIDInput) (*struct{ Body []*mapview.Marker }, error) {
	mv, ok := h.view(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}

	var markers []*mapview.Marker
	if h.svc.Markers != nil {
		stored, err := h.svc.Markers.List(ctx, input.ID)
		if err != nil {
			log.Printf("api: listing stored markers for view %q: %v", input.ID, err)
		} else {
			markers = stored
		}
	}
	if markers == nil {
		markers = mv.Markers()
	}
	if markers == nil {
		markers = []*mapview.Marker{}
	}
	return &struct{ Body []*mapview.Marker }{Body: markers}, nil
}

type OverlayNameInput struct {
	ViewIDInput
	Name string `path:"name" doc:"Overlay name" example:"traffic"`
}

func (h *APIHandler) PutOverlay(ctx context.Context, input *struct {
	OverlayNameInput
	Body tiles.Layer
}) (*ViewOutput, error) {
	mv, ok := h.view(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}
	layer := input.Body
	mv.AddOverlayLayer(input.Name, &layer)
	h.saveView(input.ID)
	return &ViewOutput{Body: service.Snapshot(input.ID, mv)}, nil
}

func (h *APIHandler) DeleteOverlay(ctx context.Context, input *OverlayNameInput) (*ViewOutput, error) {
	mv, ok := h.view(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("view not found")
	}
	// Absent names are a no-op by contract.
	mv.RemoveOverlayLayer(input.Name)
	h.saveView(input.ID)
	return &ViewOutput{Body: service.Snapshot(input.ID, mv)}, nil
}

func (h *APIHandler) GetIcons(ctx context.Context, input *struct{}) (*struct{ Body []service.IconFile }, error) {
	if h.svc == nil || h.svc.Icon == nil {
		return &struct{ Body []service.IconFile }{Body: []service.IconFile{}}, nil
	}
	icons, err := h.svc.Icon.List()
	if err != nil {
		return &struct{ Body []service.IconFile }{Body: []service.IconFile{}}, nil
	}
	return &struct{ Body []service.IconFile }{Body: icons}, nil
}

// LocateBody reports the geolocation capability and, when available, the
// current position.
type LocateBody struct {
	Available bool                `json:"available" doc:"Whether geolocation is available"`
	Position  *geolocate.Position `json:"position,omitempty" doc:"Resolved position"`
}

func (h *APIHandler) Locate(ctx context.Context, input *struct{}) (*struct{ Body LocateBody }, error) {
	if h.svc == nil || h.svc.Locator == nil || !h.svc.Locator.Available() {
		return nil, huma.Error503ServiceUnavailable(geolocate.ErrUnavailable.Error())
	}
	pos, err := h.svc.Locator.CurrentPosition(ctx, nil)
	if err != nil {
		return nil, huma.Error502BadGateway("geolocation failed: " + err.Error())
	}
	return &struct{ Body LocateBody }{Body: LocateBody{Available: true, Position: &pos}}, nil
}

func (h *APIHandler) view(id string) (*mapview.MapView, bool) {
	if h.svc == nil || h.svc.View == nil {
		return nil, false
	}
	return h.svc.View.Get(id)
}

// saveView persists view state after a mutation. The live state already
// changed, so a persistence failure is logged rather than failing the
// request.
func (h *APIHandler) saveView(id string) {
	if err := h.svc.View.Save(); err != nil {
		log.Printf("api: persisting view %q: %v", id, err)
	}
}

// markerError maps the marker argument taxonomy onto HTTP errors.
func markerError(err error) error {
	if errors.Is(err, mapview.ErrInvalidArgument) || errors.Is(err, mapview.ErrMissingField) {
		return huma.Error422UnprocessableEntity(err.Error())
	}
	return huma.Error400BadRequest(err.Error())
}
