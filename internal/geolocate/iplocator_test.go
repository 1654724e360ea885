package geolocate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joeblew999/plat-mapview/internal/geolocate"
)

func TestCurrentPositionSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","lat":52.52,"lon":13.405}`))
	}))
	defer ts.Close()

	loc := geolocate.NewIPLocator(ts.URL, nil)
	if !loc.Available() {
		t.Fatal("locator should be available")
	}

	pos, err := loc.CurrentPosition(context.Background(), nil)
	if err != nil {
		t.Fatalf("CurrentPosition: %v", err)
	}
	if pos.Latitude != 52.52 || pos.Longitude != 13.405 {
		t.Fatalf("position=%+v, want {52.52 13.405}", pos)
	}
}

func TestCurrentPositionServiceFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer ts.Close()

	_, err := geolocate.NewIPLocator(ts.URL, nil).CurrentPosition(context.Background(), nil)
	if err == nil {
		t.Fatal("want error for failed lookup")
	}
}

func TestCurrentPositionHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := geolocate.NewIPLocator(ts.URL, nil).CurrentPosition(context.Background(), nil)
	if err == nil {
		t.Fatal("want error for non-200 response")
	}
}

func TestUnavailableLocator(t *testing.T) {
	var loc *geolocate.IPLocator
	if loc.Available() {
		t.Fatal("nil locator must not be available")
	}

	_, err := loc.CurrentPosition(context.Background(), nil)
	if !errors.Is(err, geolocate.ErrUnavailable) {
		t.Fatalf("err=%v, want ErrUnavailable", err)
	}
}
