package notify

import (
	"sync"

	"github.com/devsettings/cecsource-go/pkg/cec"
)

// Listener receives events from an Emitter.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Sink is the host-facing callback set, one method per event.
type Sink interface {
	OnDeviceAdded(addr cec.LogicalAddress)
	OnDeviceRemoved(addr cec.LogicalAddress)
	OnDeviceInfoUpdated(addr cec.LogicalAddress)
	OnActiveSourceStatusUpdated(active bool)
	StandbyMessageReceived(addr cec.LogicalAddress)
	OnKeyPressEvent(addr cec.LogicalAddress, key cec.UICommand)
	OnKeyReleaseEvent(addr cec.LogicalAddress)
	OnWakeRequested(addr cec.LogicalAddress)
}

// SinkListener routes events to the matching Sink method.
func SinkListener(s Sink) Listener {
	return ListenerFunc(func(e Event) {
		switch e.Kind {
		case KindDeviceAdded:
			s.OnDeviceAdded(e.Address)
		case KindDeviceRemoved:
			s.OnDeviceRemoved(e.Address)
		case KindDeviceInfoUpdated:
			s.OnDeviceInfoUpdated(e.Address)
		case KindActiveSourceStatusUpdated:
			s.OnActiveSourceStatusUpdated(e.Active)
		case KindStandbyMessageReceived:
			s.StandbyMessageReceived(e.Address)
		case KindKeyPress:
			s.OnKeyPressEvent(e.Address, e.Key)
		case KindKeyRelease:
			s.OnKeyReleaseEvent(e.Address)
		case KindWakeRequested:
			s.OnWakeRequested(e.Address)
		}
	})
}

// Recorder is a Listener that keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// HandleEvent appends e.
func (r *Recorder) HandleEvent(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
