package connection

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Manager errors.
var (
	ErrManagerClosed = errors.New("link manager closed")
	ErrAlreadyOpen   = errors.New("link already open")
)

// State is the adapter link state.
type State uint8

const (
	// StateClosed indicates the adapter is not open and no retry is pending.
	StateClosed State = iota

	// StateOpening indicates an open attempt is in progress.
	StateOpening

	// StateOpen indicates the adapter is open.
	StateOpen

	// StateRetrying indicates a failed open is being retried with backoff.
	StateRetrying

	// StateShutdown indicates the manager has been shut down.
	StateShutdown
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpening:
		return "OPENING"
	case StateOpen:
		return "OPEN"
	case StateRetrying:
		return "RETRYING"
	case StateShutdown:
		return "SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}

// OpenFunc opens the adapter.
type OpenFunc func(ctx context.Context) error

// Callbacks are invoked outside the manager lock. All are optional.
// OnOpen runs on the goroutine that completed the open.
type Callbacks struct {
	OnStateChange func(old, new State)
	OnOpen        func()
	OnRetry       func(attempt int, delay time.Duration, err error)
}

// Manager opens the adapter and keeps retrying a failed open in the
// background until it succeeds, Close is called or the manager shuts down.
type Manager struct {
	mu sync.Mutex

	state     State
	backoff   *Backoff
	openFn    OpenFunc
	callbacks Callbacks

	// Context for the retry goroutine
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	retryTimeout time.Duration

	// State transitions waiting to be reported after unlock
	transitions []transition
}

type transition struct{ old, new State }

// NewManager creates a manager with default backoff.
func NewManager(openFn OpenFunc) *Manager {
	return NewManagerWithBackoff(openFn, NewBackoff())
}

// NewManagerWithBackoff creates a manager with a custom backoff.
func NewManagerWithBackoff(openFn OpenFunc, b *Backoff) *Manager {
	return &Manager{
		state:        StateClosed,
		backoff:      b,
		openFn:       openFn,
		retryTimeout: 10 * time.Second,
	}
}

// SetCallbacks replaces the callbacks.
func (m *Manager) SetCallbacks(cb Callbacks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = cb
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsOpen reports whether the adapter is open.
func (m *Manager) IsOpen() bool {
	return m.State() == StateOpen
}

// Open tries to open the adapter once. On failure the error is returned and
// a background retry loop is started when retry is set.
func (m *Manager) Open(ctx context.Context, retry bool) error {
	m.mu.Lock()
	switch m.state {
	case StateShutdown:
		m.mu.Unlock()
		return ErrManagerClosed
	case StateOpen:
		m.mu.Unlock()
		return ErrAlreadyOpen
	case StateRetrying:
		m.mu.Unlock()
		return nil
	}
	m.setStateLocked(StateOpening)
	m.unlock()

	err := m.openFn(ctx)

	m.mu.Lock()
	if err == nil {
		m.backoff.Reset()
		m.setStateLocked(StateOpen)
		onOpen := m.callbacks.OnOpen
		m.unlock()
		if onOpen != nil {
			onOpen()
		}
		return nil
	}
	if !retry || m.state == StateShutdown {
		if m.state != StateShutdown {
			m.setStateLocked(StateClosed)
		}
		m.unlock()
		return err
	}
	m.startRetryLocked(err)
	m.unlock()
	return err
}

// NotifyLost reports that an open adapter stopped working; a retry loop
// is started.
func (m *Manager) NotifyLost(cause error) {
	m.mu.Lock()
	if m.state != StateOpen {
		m.mu.Unlock()
		return
	}
	m.startRetryLocked(cause)
	m.unlock()
}

// Close stops any retry loop and marks the link closed. It does not close
// the adapter itself.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.state == StateShutdown {
		m.mu.Unlock()
		return
	}
	m.stopRetryLocked()
	m.setStateLocked(StateClosed)
	m.unlock()

	m.wg.Wait()
}

// Shutdown closes the manager permanently.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	if m.state == StateShutdown {
		m.mu.Unlock()
		return
	}
	m.stopRetryLocked()
	m.setStateLocked(StateShutdown)
	m.unlock()

	m.wg.Wait()
}

// Attempts returns the number of retries since the last successful open.
func (m *Manager) Attempts() int {
	return m.backoff.Attempts()
}

// setStateLocked changes the state. The transition is reported by unlock.
func (m *Manager) setStateLocked(s State) {
	old := m.state
	if old == s {
		return
	}
	m.state = s
	m.transitions = append(m.transitions, transition{old: old, new: s})
}

// unlock releases the lock and reports queued transitions.
func (m *Manager) unlock() {
	pending := m.transitions
	m.transitions = nil
	cb := m.callbacks.OnStateChange
	m.mu.Unlock()

	if cb == nil {
		return
	}
	for _, t := range pending {
		cb(t.old, t.new)
	}
}

func (m *Manager) startRetryLocked(cause error) {
	m.setStateLocked(StateRetrying)
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.wg.Add(1)
	go m.retryLoop(m.ctx, cause)
}

func (m *Manager) stopRetryLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Manager) retryLoop(ctx context.Context, lastErr error) {
	defer m.wg.Done()

	for {
		delay := m.backoff.Next()

		m.mu.Lock()
		onRetry := m.callbacks.OnRetry
		m.mu.Unlock()
		if onRetry != nil {
			onRetry(m.backoff.Attempts(), delay, lastErr)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		m.mu.Lock()
		if m.state != StateRetrying || ctx.Err() != nil {
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()

		attemptCtx, cancel := context.WithTimeout(ctx, m.retryTimeout)
		lastErr = m.openFn(attemptCtx)
		cancel()
		if lastErr != nil {
			continue
		}

		m.mu.Lock()
		if ctx.Err() != nil {
			m.mu.Unlock()
			return
		}
		m.backoff.Reset()
		m.setStateLocked(StateOpen)
		onOpen := m.callbacks.OnOpen
		m.unlock()
		if onOpen != nil {
			onOpen()
		}
		return
	}
}
