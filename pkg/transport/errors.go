package transport

import (
	"errors"

	"github.com/devsettings/cecsource-go/pkg/log"
)

// Send failures.
var (
	// ErrNoAck indicates the destination did not acknowledge the frame.
	ErrNoAck = errors.New("frame not acknowledged")

	// ErrIO indicates the adapter could not be read or written.
	ErrIO = errors.New("adapter I/O failure")

	// ErrBus indicates any other bus-level failure (arbitration lost,
	// low drive, retries exhausted).
	ErrBus = errors.New("bus error")
)

// Lifecycle errors.
var (
	// ErrNotOpen indicates the bus has not been opened or was closed.
	ErrNotOpen = errors.New("bus not open")

	// ErrAlreadyOpen indicates Open was called twice.
	ErrAlreadyOpen = errors.New("bus already open")

	// ErrInvalidFrame indicates an empty or oversized frame.
	ErrInvalidFrame = errors.New("invalid frame")
)

// IsSendFailure reports whether err is an expected transmit failure.
func IsSendFailure(err error) bool {
	return errors.Is(err, ErrNoAck) || errors.Is(err, ErrIO) || errors.Is(err, ErrBus) || errors.Is(err, ErrNotOpen)
}

// TxResultOf maps a send error to its capture-log result.
func TxResultOf(err error) log.TxResult {
	switch {
	case err == nil:
		return log.TxAck
	case errors.Is(err, ErrNoAck):
		return log.TxNoAck
	default:
		return log.TxFailed
	}
}

// ErrNotSupported is returned by wrappers when the wrapped bus lacks an
// optional capability.
var ErrNotSupported = errors.New("not supported by bus")
