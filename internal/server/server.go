// Package server wires the HTTP surface: REST API, editor SSE, websocket
// event feed, static files, and the viewer page.
package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/joeblew999/plat-mapview/internal/api"
	"github.com/joeblew999/plat-mapview/internal/api/editor"
	"github.com/joeblew999/plat-mapview/internal/db"
	"github.com/joeblew999/plat-mapview/internal/geolocate"
	"github.com/joeblew999/plat-mapview/internal/service"
	"github.com/joeblew999/plat-mapview/internal/templates"
)

// Config holds the server configuration.
type Config struct {
	Host    string
	Port    string
	DataDir string
	WebDir  string // Path to web/ directory for static files and templates
	// MapTilerKey selects the styled base-layer catalog. Keyless servers
	// fall back to OpenStreetMap tiles.
	MapTilerKey string
	// GeolocateURL overrides the IP geolocation endpoint.
	GeolocateURL string
}

// Server is the mapview HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	db       *sql.DB
	services *api.Services
	renderer *templates.Renderer
}

// New creates a new mapview server.
func New(cfg Config) *Server {
	mux := http.NewServeMux()

	// Create Huma API with humago (pure stdlib) adapter
	humaConfig := huma.DefaultConfig("plat-mapview API", "1.0.0")
	humaConfig.Info.Description = "Interactive map platform API for managing map views, tile layers, markers, and camera state."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, api.LinkTransformer())
	// Disable $schema property in responses (cleaner JSON)
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}

	humaAPI := humago.New(mux, humaConfig)

	locator := geolocate.NewIPLocator(cfg.GeolocateURL, nil)

	// Initialize services
	services := &api.Services{
		View:    service.NewViewService(cfg.DataDir, cfg.MapTilerKey, locator),
		Icon:    service.NewIconService(cfg.DataDir),
		Locator: locator,
	}

	// Fragment templates: built-ins layered under any web dir overrides
	renderer, err := rendererFor(cfg.WebDir)
	if err != nil {
		fmt.Printf("Template load failed, using built-ins: %v\n", err)
		renderer, _ = templates.NewBuiltin()
	}

	s := &Server{
		config:   cfg,
		mux:      mux,
		humaAPI:  humaAPI,
		services: services,
		renderer: renderer,
	}

	// Initialize DuckDB connection and the marker store
	conn, err := db.Get(db.Config{
		DataDir: cfg.DataDir,
		DBName:  "mapview",
	})
	if err == nil && conn != nil {
		s.db = conn
		if store, err := db.NewMarkerStore(conn); err == nil {
			services.Markers = store
		}
	}

	s.routes()
	return s
}

func rendererFor(webDir string) (*templates.Renderer, error) {
	if webDir == "" {
		return templates.NewBuiltin()
	}
	return templates.New(filepath.Join(webDir, "templates", "fragments"))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close closes server resources.
func (s *Server) Close() error {
	return db.Close()
}

// OpenAPI returns the generated OpenAPI spec.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

func (s *Server) routes() {
	// Register Huma REST API routes (OpenAPI-documented JSON endpoints)
	api.RegisterRoutes(s.humaAPI, s.services)

	infoHandler := api.NewInfoHandler(s.config.DataDir, s.db != nil, s.config.MapTilerKey != "")
	infoHandler.RegisterRoutes(s.humaAPI)

	layerHandler := api.NewLayerHandler(s.config.MapTilerKey)
	layerHandler.RegisterRoutes(s.humaAPI)

	dbHandler := api.NewDBHandler(s.db)
	dbHandler.RegisterRoutes(s.humaAPI)

	// Editor SSE routes using Huma + Datastar SDK
	viewHandler := editor.NewViewHandler(s.services.View, s.renderer, s.services.Markers)
	viewHandler.RegisterRoutes(s.humaAPI)

	eventHandler := editor.NewEventHandler(s.services.View, s.renderer)
	eventHandler.RegisterRoutes(s.humaAPI)

	// Websocket map-event feed
	s.mux.HandleFunc("/api/v1/events/ws", s.handleEventsWS)

	// Static files and marker icons
	if s.config.WebDir != "" {
		staticDir := filepath.Join(s.config.WebDir, "static")
		s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}
	s.mux.Handle("/icons/", http.StripPrefix("/icons/", s.handleIcons(s.services.Icon.IconsDir())))

	// Page routes
	s.mux.HandleFunc("/viewer", s.handleViewer)
	s.mux.HandleFunc("/editor", s.handleEditor)
	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "plat-mapview",
		"status":  "running",
	})
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	templatePath := filepath.Join(s.config.WebDir, "templates", "viewer.html")
	http.ServeFile(w, r, templatePath)
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	templatePath := filepath.Join(s.config.WebDir, "templates", "editor.html")
	http.ServeFile(w, r, templatePath)
}

func (s *Server) handleIcons(iconsDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		http.FileServer(http.Dir(iconsDir)).ServeHTTP(w, r)
	})
}
