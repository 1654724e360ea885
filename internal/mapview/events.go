package mapview

// Event is one occurrence of a named map event.
type Event struct {
	Name string         `json:"name" doc:"Event name" example:"move"`
	Data map[string]any `json:"data,omitempty" doc:"Event payload"`
}

// EventFunc handles an event occurrence.
type EventFunc func(Event)

// Wildcard subscribes a listener to every event name.
const Wildcard = "*"

// On registers fn to run on occurrences of name. Listeners run synchronously
// in registration order per event name; wildcard listeners run after the
// named ones.
func (m *MapView) On(name string, fn EventFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[name] = append(m.listeners[name], fn)
}

// Fire dispatches an event to the listeners registered for its name, then to
// wildcard listeners.
func (m *MapView) Fire(name string, data map[string]any) {
	m.mu.RLock()
	named := make([]EventFunc, len(m.listeners[name]))
	copy(named, m.listeners[name])
	wild := make([]EventFunc, len(m.listeners[Wildcard]))
	copy(wild, m.listeners[Wildcard])
	m.mu.RUnlock()

	ev := Event{Name: name, Data: data}
	for _, fn := range named {
		fn(ev)
	}
	for _, fn := range wild {
		fn(ev)
	}
}
