package mapview

import (
	"encoding/json"
	"fmt"
)

// Default marker images, Leaflet's stock set at two resolutions plus shadow.
const (
	defaultIconURL       = "https://unpkg.com/leaflet@1.9.4/dist/images/marker-icon.png"
	defaultIconRetinaURL = "https://unpkg.com/leaflet@1.9.4/dist/images/marker-icon-2x.png"
	defaultShadowURL     = "https://unpkg.com/leaflet@1.9.4/dist/images/marker-shadow.png"
)

// Icon describes the marker image set handed to the engine.
type Icon struct {
	IconURL       string `json:"iconUrl" doc:"Marker image URL"`
	IconRetinaURL string `json:"iconRetinaUrl,omitempty" doc:"High-resolution marker image URL"`
	ShadowURL     string `json:"shadowUrl,omitempty" doc:"Shadow image URL"`
	IconSize      [2]int `json:"iconSize,omitempty" doc:"Icon size in pixels"`
	IconAnchor    [2]int `json:"iconAnchor,omitempty" doc:"Icon anchor point in pixels"`
	PopupAnchor   [2]int `json:"popupAnchor,omitempty" doc:"Popup anchor relative to the icon anchor"`
	ShadowSize    [2]int `json:"shadowSize,omitempty" doc:"Shadow size in pixels"`
}

// IconOptions overrides fields of the default icon. Zero values keep the
// default.
type IconOptions struct {
	IconURL       string `json:"iconUrl,omitempty"`
	IconRetinaURL string `json:"iconRetinaUrl,omitempty"`
	ShadowURL     string `json:"shadowUrl,omitempty"`
	IconSize      [2]int `json:"iconSize,omitempty"`
	IconAnchor    [2]int `json:"iconAnchor,omitempty"`
	PopupAnchor   [2]int `json:"popupAnchor,omitempty"`
	ShadowSize    [2]int `json:"shadowSize,omitempty"`
}

// MarkerOptions configures one marker.
type MarkerOptions struct {
	Title     string       `json:"title,omitempty" doc:"Tooltip text"`
	Alt       string       `json:"alt,omitempty" doc:"Accessible alternative text"`
	Draggable bool         `json:"draggable,omitempty" doc:"Whether the marker can be dragged"`
	Opacity   float64      `json:"opacity,omitempty" doc:"Marker opacity (0-1)"`
	Icon      *IconOptions `json:"icon,omitempty" doc:"Icon overrides"`
}

// PopupOptions configures the popup bound to a marker. Content is required.
type PopupOptions struct {
	Content  string `json:"content" doc:"Popup HTML or text content"`
	MaxWidth int    `json:"maxWidth,omitempty" doc:"Maximum popup width in pixels"`
}

// Marker is a placed marker. Markers are owned by the map view once added;
// there is no removal operation.
type Marker struct {
	ID         string         `json:"id" doc:"Marker identifier" example:"marker-1"`
	Coordinate Coordinate     `json:"coordinate" doc:"Marker position"`
	Icon       Icon           `json:"icon" doc:"Resolved icon"`
	Options    *MarkerOptions `json:"options,omitempty" doc:"Marker options as supplied"`
	Popup      *PopupOptions  `json:"popup,omitempty" doc:"Bound popup, if any"`
}

// NewIcon returns the default icon with any supplied overrides applied.
// Pure, no side effects.
func NewIcon(overrides *IconOptions) Icon {
	icon := Icon{
		IconURL:       defaultIconURL,
		IconRetinaURL: defaultIconRetinaURL,
		ShadowURL:     defaultShadowURL,
		IconSize:      [2]int{25, 41},
		IconAnchor:    [2]int{12, 41},
		PopupAnchor:   [2]int{1, -34},
		ShadowSize:    [2]int{41, 41},
	}
	if overrides == nil {
		return icon
	}
	if overrides.IconURL != "" {
		icon.IconURL = overrides.IconURL
	}
	if overrides.IconRetinaURL != "" {
		icon.IconRetinaURL = overrides.IconRetinaURL
	}
	if overrides.ShadowURL != "" {
		icon.ShadowURL = overrides.ShadowURL
	}
	if overrides.IconSize != [2]int{} {
		icon.IconSize = overrides.IconSize
	}
	if overrides.IconAnchor != [2]int{} {
		icon.IconAnchor = overrides.IconAnchor
	}
	if overrides.PopupAnchor != [2]int{} {
		icon.PopupAnchor = overrides.PopupAnchor
	}
	if overrides.ShadowSize != [2]int{} {
		icon.ShadowSize = overrides.ShadowSize
	}
	return icon
}

// AddMarker places a marker at coord. The icon is the default set overridden
// by any icon fields in opts. A popup is bound when popup is supplied; a
// popup without content is rejected before the marker is created. The marker
// is added to the map and its handle returned.
func (m *MapView) AddMarker(coord Coordinate, opts *MarkerOptions, popup *PopupOptions) (*Marker, error) {
	if popup != nil && popup.Content == "" {
		return nil, fmt.Errorf("popupOptions: %w: content", ErrMissingField)
	}

	var iconOpts *IconOptions
	if opts != nil {
		iconOpts = opts.Icon
	}

	m.mu.Lock()
	m.markerSeq++
	marker := &Marker{
		ID:         fmt.Sprintf("marker-%d", m.markerSeq),
		Coordinate: coord,
		Icon:       NewIcon(iconOpts),
		Options:    opts,
		Popup:      popup,
	}
	m.markers = append(m.markers, marker)
	m.mu.Unlock()

	m.Fire("markeradd", map[string]any{
		"id":        marker.ID,
		"latitude":  coord.Latitude,
		"longitude": coord.Longitude,
	})
	return marker, nil
}

// Markers returns the placed markers in insertion order.
func (m *MapView) Markers() []*Marker {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Marker, len(m.markers))
	copy(result, m.markers)
	return result
}

// DecodeMarkerOptions converts a decoded JSON value into marker options. A
// value that is not an object is an invalid-argument error; nil means no
// options.
func DecodeMarkerOptions(v any) (*MarkerOptions, error) {
	obj, err := asObject(v, "markerOptions")
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	var opts MarkerOptions
	if err := reencode(obj, &opts); err != nil {
		return nil, fmt.Errorf("markerOptions: %w: %v", ErrInvalidArgument, err)
	}
	return &opts, nil
}

// DecodePopupOptions converts a decoded JSON value into popup options.
// Non-object values are invalid-argument errors and an object without
// content is a missing-field error.
func DecodePopupOptions(v any) (*PopupOptions, error) {
	obj, err := asObject(v, "popupOptions")
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	var opts PopupOptions
	if err := reencode(obj, &opts); err != nil {
		return nil, fmt.Errorf("popupOptions: %w: %v", ErrInvalidArgument, err)
	}
	if opts.Content == "" {
		return nil, fmt.Errorf("popupOptions: %w: content", ErrMissingField)
	}
	return &opts, nil
}

func asObject(v any, name string) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: expected an options object", name, ErrInvalidArgument)
	}
	return obj, nil
}

func reencode(obj map[string]any, dst any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
