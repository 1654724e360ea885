package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

type InfoHandler struct {
	dataDir string
	dbOK    bool
	keyed   bool
}

func NewInfoHandler(dataDir string, dbOK, keyed bool) *InfoHandler {
	return &InfoHandler{dataDir: dataDir, dbOK: dbOK, keyed: keyed}
}

func (h *InfoHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/info", h.GetInfo, huma.OperationTags("health"))
}

type InfoBody struct {
	Name     string   `json:"name" doc:"Service name"`
	Version  string   `json:"version" doc:"Service version"`
	DataDir  string   `json:"data_dir" doc:"Data directory path"`
	DB       bool     `json:"db" doc:"Whether database is available"`
	Features []string `json:"features" doc:"Available features"`
}

func (h *InfoHandler) GetInfo(ctx context.Context, input *struct{}) (*struct{ Body InfoBody }, error) {
	features := []string{"geolocation", "markers", "overlays", "tilejson"}
	if h.keyed {
		features = append(features, "maptiler")
	} else {
		features = append(features, "osm-fallback")
	}
	return &struct{ Body InfoBody }{Body: InfoBody{
		Name:     "plat-mapview",
		Version:  "0.1.0",
		DataDir:  h.dataDir,
		DB:       h.dbOK,
		Features: features,
	}}, nil
}
