package mapview

import "sync"

// LayerControl is the layer-switcher state: an ordered list of mutually
// exclusive base layers and an ordered list of toggleable overlays. The
// control supports direct overlay removal, so it is updated in place rather
// than rebuilt. It carries its own lock because the handle escapes the map
// view: transports read it while the view mutates it.
type LayerControl struct {
	mu       sync.RWMutex
	base     []string
	overlays []string
	active   string
}

// NewLayerControl creates a control listing baseNames with active selected.
func NewLayerControl(baseNames []string, active string) *LayerControl {
	base := make([]string, len(baseNames))
	copy(base, baseNames)
	return &LayerControl{base: base, active: active}
}

// BaseNames returns the base-layer names in display order.
func (c *LayerControl) BaseNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]string, len(c.base))
	copy(result, c.base)
	return result
}

// OverlayNames returns the overlay names in insertion order.
func (c *LayerControl) OverlayNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]string, len(c.overlays))
	copy(result, c.overlays)
	return result
}

// Active returns the selected base-layer name.
func (c *LayerControl) Active() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// SetActive selects a base layer. Names not listed are ignored.
func (c *LayerControl) SetActive(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.base {
		if n == name {
			c.active = name
			return
		}
	}
}

// AddOverlay lists an overlay in the control. Re-adding keeps the original
// position.
func (c *LayerControl) AddOverlay(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.overlays {
		if n == name {
			return
		}
	}
	c.overlays = append(c.overlays, name)
}

// RemoveOverlay delists an overlay. Unknown names are a no-op.
func (c *LayerControl) RemoveOverlay(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.overlays {
		if n == name {
			c.overlays = append(c.overlays[:i], c.overlays[i+1:]...)
			return
		}
	}
}
