package events

import "sync"

// Event is published whenever a view's counter changes.
type Event struct {
	ViewID string
	Value  int
}

// EventHub fans counter changes out to the update streams of the view they belong to. Each stream holds at most
// one pending event, newer events replace an unread one, so a slow stream always re-renders the latest value.
type EventHub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan *Event
	next int
}

func NewHub() *EventHub {
	return &EventHub{subs: map[string]map[int]chan *Event{}}
}

func (h *EventHub) Subscribe(viewID string) (int, <-chan *Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan *Event, 1)
	if h.subs[viewID] == nil {
		h.subs[viewID] = map[int]chan *Event{}
	}
	h.subs[viewID][id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		view := h.subs[viewID]
		if c, ok := view[id]; ok {
			close(c)
			delete(view, id)
			if len(view) == 0 {
				delete(h.subs, viewID)
			}
		}
	}
	return id, ch, cancel
}

// Broadcast hands the event to every stream of its view without blocking.
func (h *EventHub) Broadcast(event *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[event.ViewID] {
		// The hub is the only sender and holds the lock, so after dropping a stale event there is room.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- h.copy(event):
		default:
		}
	}
}

// Subscribers reports how many streams are listening for the view.
func (h *EventHub) Subscribers(viewID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[viewID])
}

func (h *EventHub) copy(e *Event) *Event {
	return &Event{e.ViewID, e.Value}
}
