package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/joeblew999/plat-mapview/internal/mapview"
)

// MarkerStore persists placed markers so they survive restarts and can be
// queried with SQL.
type MarkerStore struct {
	db *sql.DB
}

// NewMarkerStore creates the store and its backing table.
func NewMarkerStore(conn *sql.DB) (*MarkerStore, error) {
	s := &MarkerStore{db: conn}
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS markers (
			view_id   VARCHAR NOT NULL,
			marker_id VARCHAR NOT NULL,
			latitude  DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			options   VARCHAR,
			popup     VARCHAR,
			PRIMARY KEY (view_id, marker_id)
		)`)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Insert records a marker for a view. Options and popup, when present, are
// stored as JSON.
func (s *MarkerStore) Insert(ctx context.Context, viewID string, marker *mapview.Marker) error {
	options, err := nullableJSON(marker.Options)
	if err != nil {
		return err
	}
	popup, err := nullableJSON(marker.Popup)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO markers (view_id, marker_id, latitude, longitude, options, popup) VALUES (?, ?, ?, ?, ?, ?)`,
		viewID, marker.ID, marker.Coordinate.Latitude, marker.Coordinate.Longitude, options, popup)
	return err
}

// List returns the stored markers for a view in marker-ID order, with icons
// rebuilt from the stored options.
func (s *MarkerStore) List(ctx context.Context, viewID string) ([]*mapview.Marker, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT marker_id, latitude, longitude, options, popup FROM markers WHERE view_id = ? ORDER BY marker_id`,
		viewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markers []*mapview.Marker
	for rows.Next() {
		var (
			m       mapview.Marker
			options sql.NullString
			popup   sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Coordinate.Latitude, &m.Coordinate.Longitude, &options, &popup); err != nil {
			return nil, err
		}
		if options.Valid {
			var o mapview.MarkerOptions
			if err := json.Unmarshal([]byte(options.String), &o); err == nil {
				m.Options = &o
			}
		}
		if popup.Valid {
			var p mapview.PopupOptions
			if err := json.Unmarshal([]byte(popup.String), &p); err == nil {
				m.Popup = &p
			}
		}
		var iconOpts *mapview.IconOptions
		if m.Options != nil {
			iconOpts = m.Options.Icon
		}
		m.Icon = mapview.NewIcon(iconOpts)
		markers = append(markers, &m)
	}
	return markers, rows.Err()
}

// nullableJSON marshals v, keeping typed nils as SQL NULL.
func nullableJSON(v any) (any, error) {
	switch val := v.(type) {
	case *mapview.MarkerOptions:
		if val == nil {
			return nil, nil
		}
	case *mapview.PopupOptions:
		if val == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// DeleteView drops all markers stored for a view.
func (s *MarkerStore) DeleteView(ctx context.Context, viewID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM markers WHERE view_id = ?`, viewID)
	return err
}
