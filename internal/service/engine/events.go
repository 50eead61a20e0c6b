package engine

import (
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// EventKind names what happened.
type EventKind string

const (
	// EventAdded is published after an alarm was scheduled.
	EventAdded EventKind = "added"
	// EventRemoved is published after a user removed an alarm.
	EventRemoved EventKind = "removed"
	// EventFired is published when an alarm goes off.
	EventFired EventKind = "fired"
	// EventExpired is published for alarms missed beyond the catch-up window.
	EventExpired EventKind = "expired"
	// EventSoundingEnded is published when an alarm stops sounding.
	EventSoundingEnded EventKind = "sounding_ended"
)

// subscriptionBuffer is the per-subscriber channel capacity.
const subscriptionBuffer = 32

// Event is a state change observed by presentation layers.
type Event struct {
	// Kind is what happened.
	Kind EventKind
	// Entry is the affected alarm. For EventSoundingEnded only Label is set.
	Entry alarm.Entry
	// At is the engine time of the event.
	At time.Time
	// Stopped reports, for EventSoundingEnded, whether the user cut the sound short.
	Stopped bool
}

// Subscription receives engine events.
//
// If the subscriber can't keep up, the engine drops it and closes its
// channel; the holder has to subscribe again.
type Subscription struct {
	// c carries the events.
	c chan Event
	// hub is the owner, used by Close.
	hub *hub
}

// C returns the event channel. It is closed when the subscription ends.
func (s *Subscription) C() <-chan Event {
	return s.c
}

// Close ends the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// hub fans events out to subscribers.
type hub struct {
	// mu protects subs and closed.
	mu sync.Mutex
	// subs are the live subscriptions.
	subs map[*Subscription]struct{}
	// closed is set once the engine stopped.
	closed bool
}

// newHub creates an empty hub.
func newHub() *hub {
	return &hub{
		subs: make(map[*Subscription]struct{}),
	}
}

// subscribe registers a new subscriber. After shutdown the channel is already closed.
func (h *hub) subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscription{
		c:   make(chan Event, subscriptionBuffer),
		hub: h,
	}

	if h.closed {
		close(sub.c)
		return sub
	}

	h.subs[sub] = struct{}{}

	return sub
}

// publish delivers ev without blocking, dropping subscribers that lag behind.
func (h *hub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.c <- ev:
		default:
			delete(h.subs, sub)
			close(sub.c)
		}
	}
}

// remove closes one subscription.
func (h *hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return
	}

	delete(h.subs, sub)
	close(sub.c)
}

// close ends every subscription.
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		close(sub.c)
	}

	h.subs = make(map[*Subscription]struct{})
	h.closed = true
}
