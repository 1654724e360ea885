package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultEndpoint is the IP geolocation service queried when none is
// configured explicitly.
const DefaultEndpoint = "http://ip-api.com/json"

// IPLocator resolves a coarse position from the caller's public IP address.
type IPLocator struct {
	endpoint string
	client   *http.Client
}

// NewIPLocator creates a locator against endpoint. An empty endpoint selects
// DefaultEndpoint; a nil client selects http.DefaultClient.
func NewIPLocator(endpoint string, client *http.Client) *IPLocator {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &IPLocator{endpoint: endpoint, client: client}
}

// Available reports whether the locator has an endpoint to query.
func (l *IPLocator) Available() bool {
	return l != nil && l.endpoint != ""
}

// ipAPIResponse is the subset of the ip-api.com JSON payload we read.
type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentPosition performs one lookup against the configured endpoint.
func (l *IPLocator) CurrentPosition(ctx context.Context, opts *Options) (Position, error) {
	if !l.Available() {
		return Position{}, ErrUnavailable
	}

	if opts != nil && opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return Position{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return Position{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("geolocation lookup failed: %s", resp.Status)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Position{}, fmt.Errorf("geolocation response: %w", err)
	}
	if body.Status != "success" {
		return Position{}, fmt.Errorf("geolocation lookup failed: %s", body.Message)
	}

	return Position{Latitude: body.Lat, Longitude: body.Lon}, nil
}
