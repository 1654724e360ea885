package tiles

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// ExpandURL substitutes a tile's coordinates into the layer's URL template.
func (l *Layer) ExpandURL(t maptile.Tile) string {
	r := strings.NewReplacer(
		"{z}", strconv.FormatUint(uint64(t.Z), 10),
		"{x}", strconv.FormatUint(uint64(t.X), 10),
		"{y}", strconv.FormatUint(uint64(t.Y), 10),
	)
	return r.Replace(l.URL)
}

// Cover returns the tiles covering bound b at zoom z in row-major order.
func Cover(b orb.Bound, z maptile.Zoom) []maptile.Tile {
	min := maptile.At(b.Min, z)
	max := maptile.At(b.Max, z)

	// Tile Y grows southward, so the northern edge (b.Max) has the smaller Y.
	var result []maptile.Tile
	for y := max.Y; y <= min.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			result = append(result, maptile.New(x, y, z))
		}
	}
	return result
}

// Around returns the tile containing p at zoom z plus its neighbors within
// radius tiles in each direction. Used to warm the client cache ahead of a
// camera move.
func Around(p orb.Point, z maptile.Zoom, radius uint32) []maptile.Tile {
	center := maptile.At(p, z)

	minX := int64(center.X) - int64(radius)
	minY := int64(center.Y) - int64(radius)
	n := int64(uint32(1) << z)

	var result []maptile.Tile
	for dy := int64(0); dy <= 2*int64(radius); dy++ {
		y := minY + dy
		if y < 0 || y >= n {
			continue
		}
		for dx := int64(0); dx <= 2*int64(radius); dx++ {
			x := minX + dx
			if x < 0 || x >= n {
				continue
			}
			result = append(result, maptile.New(uint32(x), uint32(y), z))
		}
	}
	return result
}
