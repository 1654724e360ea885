package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IconService manages uploaded marker icon images.
type IconService struct {
	iconsDir string
}

// NewIconService creates a new icon service.
func NewIconService(dataDir string) *IconService {
	return &IconService{
		iconsDir: filepath.Join(dataDir, "icons"),
	}
}

// List returns all available icon images.
func (s *IconService) List() ([]IconFile, error) {
	entries, err := os.ReadDir(s.iconsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []IconFile{}, nil
		}
		return nil, err
	}

	// Supported icon image extensions
	validExts := map[string]bool{
		".png":  true,
		".svg":  true,
		".webp": true,
	}

	var files []IconFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !validExts[ext] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, IconFile{
			Name: entry.Name(),
			Size: formatSize(info.Size()),
			URL:  "/icons/" + entry.Name(),
		})
	}

	return files, nil
}

// IconsDir returns the path to the icons directory.
func (s *IconService) IconsDir() string {
	return s.iconsDir
}

// formatSize returns a human-readable file size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
