// Package editor contains Datastar SSE handlers that drive the browser map.
package editor

import (
	"encoding/json"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/starfederation/datastar-go/datastar"
)

// EmptyInput is a shared empty input struct for handlers with no parameters.
type EmptyInput struct{}

// SSEContext wraps the Datastar SSE generator with helper methods.
type SSEContext struct {
	SSE *datastar.ServerSentEventGenerator
}

// NewSSE creates an SSE context from a Huma context.
func NewSSE(humaCtx huma.Context) *SSEContext {
	r, w := humago.Unwrap(humaCtx)
	return &SSEContext{
		SSE: datastar.NewSSE(w, r),
	}
}

// Patch sends HTML to replace content at a selector.
func (c *SSEContext) Patch(html, selector string) {
	c.SSE.PatchElements(html, datastar.WithSelector(selector), datastar.WithModeInner())
}

// Append sends HTML appended inside a selector.
func (c *SSEContext) Append(html, selector string) {
	c.SSE.PatchElements(html, datastar.WithSelector(selector), datastar.WithModeAppend())
}

// RemoveElementByID removes the element with the given ID from the page.
func (c *SSEContext) RemoveElementByID(id string) {
	c.SSE.PatchElements("", datastar.WithSelector("#"+id), datastar.WithModeRemove())
}

// Error sends an error signal to the client.
func (c *SSEContext) Error(msg string) {
	c.SSE.MarshalAndPatchSignals(map[string]any{
		"error": msg,
	})
}

// Success sends a success signal to the client.
func (c *SSEContext) Success(msg string) {
	c.SSE.MarshalAndPatchSignals(map[string]any{
		"success": msg,
	})
}

// Signals sends arbitrary signals to the client.
func (c *SSEContext) Signals(signals map[string]any) {
	c.SSE.MarshalAndPatchSignals(signals)
}

// DispatchCustomEvent fires a DOM CustomEvent on the client window. The map
// page listens for these to forward state changes into the engine.
func (c *SSEContext) DispatchCustomEvent(name string, detail map[string]any) {
	data, err := json.Marshal(detail)
	if err != nil {
		data = []byte("{}")
	}
	c.SSE.ExecuteScript(fmt.Sprintf(
		"window.dispatchEvent(new CustomEvent(%q, {detail: %s}))", name, data))
}
