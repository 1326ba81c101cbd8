// Package notify delivers processor events to registered listeners.
//
// Emit only queues; a single background goroutine delivers each event to
// every listener in registration order, so a slow listener delays later
// events but never the caller of Emit.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Emitter fans events out to listeners.
type Emitter struct {
	mu        sync.Mutex
	idle      *sync.Cond
	listeners []registration
	nextID    uint64
	queue     []Event
	pending   int

	wake      chan struct{}
	deliverMu sync.Mutex

	// Background processing
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool

	logger *slog.Logger
}

type registration struct {
	id       uint64
	listener Listener
}

// NewEmitter creates a stopped emitter. A nil logger discards output.
func NewEmitter(logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Emitter{
		wake:   make(chan struct{}, 1),
		logger: logger,
	}
	e.idle = sync.NewCond(&e.mu)
	return e
}

// Register adds a listener and returns its ID.
func (e *Emitter) Register(l Listener) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	e.listeners = append(e.listeners, registration{id: e.nextID, listener: l})
	return e.nextID
}

// Unregister removes a listener. Unknown IDs are ignored.
func (e *Emitter) Unregister(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, r := range e.listeners {
		if r.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (e *Emitter) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Emit queues an event for delivery.
func (e *Emitter) Emit(ev Event) {
	e.mu.Lock()
	e.queue = append(e.queue, ev)
	e.pending++
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Start begins background delivery.
func (e *Emitter) Start() {
	if e.running.Swap(true) {
		return // Already running
	}

	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.wg.Add(1)
	go e.deliverLoop()
}

// Stop stops background delivery after delivering queued events.
func (e *Emitter) Stop() {
	if !e.running.Swap(false) {
		return // Not running
	}

	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	e.drain()
}

// Flush blocks until every event queued so far has been delivered. On a
// stopped emitter it delivers them on the calling goroutine.
func (e *Emitter) Flush() {
	if !e.running.Load() {
		e.drain()
		return
	}

	e.mu.Lock()
	for e.pending > 0 && e.running.Load() {
		e.idle.Wait()
	}
	e.mu.Unlock()
}

func (e *Emitter) deliverLoop() {
	defer e.wg.Done()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-e.wake:
			e.drain()
		}
	}
}

// drain delivers queued events until the queue is empty.
func (e *Emitter) drain() {
	e.deliverMu.Lock()
	defer e.deliverMu.Unlock()

	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.mu.Unlock()
			return
		}
		ev := e.queue[0]
		e.queue = e.queue[1:]
		listeners := make([]registration, len(e.listeners))
		copy(listeners, e.listeners)
		e.mu.Unlock()

		for _, r := range listeners {
			e.deliver(r, ev)
		}

		e.mu.Lock()
		e.pending--
		if e.pending == 0 {
			e.idle.Broadcast()
		}
		e.mu.Unlock()
	}
}

func (e *Emitter) deliver(r registration, ev Event) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Error("listener panicked",
				"listener", r.id,
				"event", ev.Kind.String(),
				"panic", fmt.Sprint(p))
		}
	}()
	r.listener.HandleEvent(ev)
}
