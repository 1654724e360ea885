// Package service contains business logic for the plat-mapview platform.
package service

import (
	"github.com/joeblew999/plat-mapview/internal/mapview"
	"github.com/joeblew999/plat-mapview/internal/tiles"
)

// ViewState is the serializable snapshot of one map view. It is what the
// REST API returns and what gets persisted to disk.
type ViewState struct {
	ID         string                  `json:"id" doc:"Unique view identifier" example:"main_map"`
	Target     string                  `json:"target" required:"true" minLength:"1" maxLength:"100" doc:"DOM selector the client binds to" example:"#map"`
	Center     mapview.Coordinate      `json:"center" doc:"Current map center"`
	Zoom       int                     `json:"zoom" doc:"Current zoom level" example:"5"`
	ActiveBase string                  `json:"activeBase" doc:"Active base-layer name" example:"Streets"`
	BaseLayers []string                `json:"baseLayers" doc:"Base-layer names in control order"`
	Overlays   map[string]*tiles.Layer `json:"overlays,omitempty" doc:"Overlay layers by name"`
	Markers    []*mapview.Marker       `json:"markers,omitempty" doc:"Placed markers in insertion order"`
	Engine     map[string]any          `json:"engine,omitempty" doc:"Merged engine init config"`
}

// Snapshot captures the current state of a live map view.
func Snapshot(id string, mv *mapview.MapView) ViewState {
	return ViewState{
		ID:         id,
		Target:     mv.Target(),
		Center:     mv.Center(),
		Zoom:       mv.Zoom(),
		ActiveBase: mv.ActiveBase(),
		BaseLayers: mv.Control().BaseNames(),
		Overlays:   mv.Overlays(),
		Markers:    mv.Markers(),
		Engine:     mv.EngineOptions(),
	}
}

// IconFile describes an uploaded marker icon image.
type IconFile struct {
	Name string `json:"name" doc:"Icon file name" example:"pin-red.png"`
	Size string `json:"size" doc:"Human-readable file size" example:"4.2 KB"`
	URL  string `json:"url" doc:"URL the client loads the icon from" example:"/icons/pin-red.png"`
}
