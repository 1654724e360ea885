// Package mapclient is a thin Go client for the plat-mapview API.
package mapclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client talks to a running plat-mapview server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL, e.g. "http://localhost:8087".
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: http.DefaultClient}
}

// Coordinate mirrors the API's latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ViewState mirrors the view snapshot returned by the API.
type ViewState struct {
	ID         string         `json:"id"`
	Target     string         `json:"target"`
	Center     Coordinate     `json:"center"`
	Zoom       int            `json:"zoom"`
	ActiveBase string         `json:"activeBase"`
	BaseLayers []string       `json:"baseLayers"`
	Overlays   map[string]any `json:"overlays,omitempty"`
	Markers    []Marker       `json:"markers,omitempty"`
}

// Marker mirrors a placed marker.
type Marker struct {
	ID         string     `json:"id"`
	Coordinate Coordinate `json:"coordinate"`
	Popup      *struct {
		Content string `json:"content"`
	} `json:"popup,omitempty"`
}

// CreateViewRequest mirrors the view construction configuration.
type CreateViewRequest struct {
	Target string         `json:"target"`
	Center *Coordinate    `json:"center,omitempty"`
	Locate bool           `json:"locate,omitempty"`
	Zoom   int            `json:"zoom,omitempty"`
	Engine map[string]any `json:"engine,omitempty"`
}

// CreatedView is the response to CreateView.
type CreatedView struct {
	ID      string    `json:"id"`
	View    ViewState `json:"view"`
	Message string    `json:"message"`
}

// HealthBody is the /health response.
type HealthBody struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// InfoBody is the /api/v1/info response.
type InfoBody struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Features []string `json:"features"`
}

// MarkerRequest places a marker. Options are free-form objects; the server
// rejects non-object values.
type MarkerRequest struct {
	Coordinate    Coordinate `json:"coordinate"`
	MarkerOptions any        `json:"markerOptions,omitempty"`
	PopupOptions  any        `json:"popupOptions,omitempty"`
}

// CameraRequest re-centers the camera.
type CameraRequest struct {
	Center Coordinate `json:"center"`
	Zoom   *int       `json:"zoom,omitempty"`
}

func (c *Client) Health(ctx context.Context) (*http.Response, HealthBody, error) {
	var body HealthBody
	resp, err := c.do(ctx, http.MethodGet, "/health", nil, &body)
	return resp, body, err
}

func (c *Client) GetInfo(ctx context.Context) (*http.Response, InfoBody, error) {
	var body InfoBody
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/info", nil, &body)
	return resp, body, err
}

func (c *Client) CreateView(ctx context.Context, req CreateViewRequest) (*http.Response, CreatedView, error) {
	var body CreatedView
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/views", req, &body)
	return resp, body, err
}

func (c *Client) ListViews(ctx context.Context) (*http.Response, map[string]ViewState, error) {
	body := map[string]ViewState{}
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/views", nil, &body)
	return resp, body, err
}

func (c *Client) GetView(ctx context.Context, id string) (*http.Response, ViewState, error) {
	var body ViewState
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/views/"+id, nil, &body)
	return resp, body, err
}

func (c *Client) DeleteView(ctx context.Context, id string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, "/api/v1/views/"+id, nil, nil)
}

func (c *Client) ChangeCamera(ctx context.Context, id string, req CameraRequest) (*http.Response, ViewState, error) {
	var body ViewState
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/views/"+id+"/camera", req, &body)
	return resp, body, err
}

func (c *Client) GetCenter(ctx context.Context, id string) (*http.Response, Coordinate, error) {
	var body Coordinate
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/views/"+id+"/center", nil, &body)
	return resp, body, err
}

func (c *Client) AddMarker(ctx context.Context, id string, req MarkerRequest) (*http.Response, Marker, error) {
	var body Marker
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/views/"+id+"/markers", req, &body)
	return resp, body, err
}

func (c *Client) ListMarkers(ctx context.Context, id string) (*http.Response, []Marker, error) {
	var body []Marker
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/views/"+id+"/markers", nil, &body)
	return resp, body, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (*http.Response, error) {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode >= 400 {
		return resp, fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp, err
		}
	}
	return resp, nil
}
