package editor

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mapview/internal/service"
	"github.com/joeblew999/plat-mapview/internal/templates"
)

// EventHandler streams map events to the Datastar UI via SSE.
type EventHandler struct {
	viewService *service.ViewService
	renderer    *templates.Renderer
}

// NewEventHandler creates a new event handler.
func NewEventHandler(viewService *service.ViewService, renderer *templates.Renderer) *EventHandler {
	return &EventHandler{viewService: viewService, renderer: renderer}
}

func (h *EventHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/editor/events", h.Events,
		huma.OperationTags("editor"),
	)
}

// Events holds the SSE connection open and forwards every map event as a
// DOM CustomEvent; layer changes additionally re-patch the control fragment.
func (h *EventHandler) Events(ctx context.Context, input *EmptyInput) (*huma.StreamResponse, error) {
	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			sse := NewSSE(humaCtx)
			ch := service.DefaultBus.Subscribe()
			defer service.DefaultBus.Unsubscribe(ch)

			vh := &ViewHandler{viewService: h.viewService, renderer: h.renderer}

			for {
				select {
				case <-ctx.Done():
					return
				case ev := <-ch:
					switch ev.Name {
					case "overlayadd", "overlayremove", "baselayerchange":
						if mv, ok := h.viewService.Get(ev.View); ok {
							sse.Patch(vh.renderControl(ev.View, mv), "#layer-control")
						}
					}
					detail := map[string]any{
						"view": ev.View,
						"name": ev.Name,
					}
					for k, v := range ev.Data {
						detail[k] = v
					}
					sse.DispatchCustomEvent("map-event", detail)
				}
			}
		},
	}, nil
}
