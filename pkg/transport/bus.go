package transport

import (
	"context"

	"github.com/devsettings/cecsource-go/pkg/cec"
)

// FrameListener receives one raw frame. Listeners are called serially on the
// bus's receive goroutine; the slice must not be retained.
type FrameListener func(frame []byte)

// Bus is a CEC adapter.
type Bus interface {
	// Open starts the adapter and frame delivery.
	Open(ctx context.Context) error

	// Close stops frame delivery and releases the adapter. Close is
	// idempotent.
	Close() error

	// SendTo transmits a frame (header included) and waits for the result.
	SendTo(ctx context.Context, to cec.LogicalAddress, frame []byte) error

	// SendToAsync queues a frame for transmission. Failures are not reported
	// except for a closed bus or an invalid frame.
	SendToAsync(to cec.LogicalAddress, frame []byte) error

	// Ping sends a polling message from one address to another. A nil error
	// means the destination acknowledged.
	Ping(ctx context.Context, from, to cec.LogicalAddress) error

	// AddFrameListener registers a listener for received frames.
	AddFrameListener(l FrameListener)
}

// PhysicalAddressReader is implemented by buses that know the physical
// address the sink assigned to this device.
type PhysicalAddressReader interface {
	PhysicalAddress() (cec.PhysicalAddress, error)
}

// AddressClaimer is implemented by buses whose driver allocates logical
// addresses itself. ClaimLogicalAddress returns the claimed address, or
// cec.AddrUnregistered when every candidate is taken.
type AddressClaimer interface {
	ClaimLogicalAddress(ctx context.Context, t cec.DeviceType, candidates []cec.LogicalAddress) (cec.LogicalAddress, error)
}

// LogicalAddressSetter is implemented by buses that must be told which
// logical address to acknowledge after polling-based allocation.
type LogicalAddressSetter interface {
	SetLogicalAddress(addr cec.LogicalAddress) error
}
