package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/joeblew999/plat-mapview/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is read-only and carries no credentials.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsEvent is the wire form of one map event.
type wsEvent struct {
	View string         `json:"view"`
	Name string         `json:"name"`
	Data map[string]any `json:"data,omitempty"`
}

// handleEventsWS streams map events over a websocket. The optional view
// query parameter filters the feed to a single view.
func (s *Server) handleEventsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	viewFilter := r.URL.Query().Get("view")

	ch := service.DefaultBus.Subscribe()
	defer service.DefaultBus.Unsubscribe(ch)

	// Drain reads so client close frames are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case ev := <-ch:
			if viewFilter != "" && ev.View != viewFilter {
				continue
			}
			if err := conn.WriteJSON(wsEvent{View: ev.View, Name: ev.Name, Data: ev.Data}); err != nil {
				return
			}
		}
	}
}
