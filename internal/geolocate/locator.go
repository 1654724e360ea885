// Package geolocate resolves the host's current position for map centering.
package geolocate

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when no geolocation capability is present.
var ErrUnavailable = errors.New("geolocation not available")

// Position is a resolved geographic position.
type Position struct {
	Latitude  float64 `json:"latitude" doc:"Latitude in degrees" example:"-6.2"`
	Longitude float64 `json:"longitude" doc:"Longitude in degrees" example:"106.816666"`
	Accuracy  float64 `json:"accuracy,omitempty" doc:"Accuracy radius in meters, 0 when unknown"`
}

// Options tunes a single position lookup.
type Options struct {
	// Timeout bounds the lookup. Zero inherits the provider's own limits.
	Timeout time.Duration
}

// Locator answers one-shot position queries. Lookups are never retried by
// callers; a failure is substituted with a default coordinate instead.
type Locator interface {
	// Available reports whether the capability is present at all.
	Available() bool
	// CurrentPosition performs a single position lookup. It returns
	// ErrUnavailable when Available would report false; any other failure
	// (denial, timeout, no fix) propagates as-is.
	CurrentPosition(ctx context.Context, opts *Options) (Position, error)
}
