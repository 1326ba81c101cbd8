package notify

import (
	"fmt"

	"github.com/devsettings/cecsource-go/pkg/cec"
)

// Kind identifies an event.
type Kind uint8

const (
	KindDeviceAdded Kind = iota + 1
	KindDeviceRemoved
	KindDeviceInfoUpdated
	KindActiveSourceStatusUpdated
	KindStandbyMessageReceived
	KindKeyPress
	KindKeyRelease
	KindWakeRequested
)

// String returns the event name.
func (k Kind) String() string {
	switch k {
	case KindDeviceAdded:
		return "DEVICE_ADDED"
	case KindDeviceRemoved:
		return "DEVICE_REMOVED"
	case KindDeviceInfoUpdated:
		return "DEVICE_INFO_UPDATED"
	case KindActiveSourceStatusUpdated:
		return "ACTIVE_SOURCE_STATUS_UPDATED"
	case KindStandbyMessageReceived:
		return "STANDBY_MESSAGE_RECEIVED"
	case KindKeyPress:
		return "KEY_PRESS"
	case KindKeyRelease:
		return "KEY_RELEASE"
	case KindWakeRequested:
		return "WAKE_REQUESTED"
	default:
		return "UNKNOWN"
	}
}

// Event is one notification for the host.
type Event struct {
	Kind Kind

	// Address is the peer the event concerns. Unused for
	// KindActiveSourceStatusUpdated.
	Address cec.LogicalAddress

	// Active is set for KindActiveSourceStatusUpdated.
	Active bool

	// Key is set for KindKeyPress.
	Key cec.UICommand
}

// DeviceAdded returns a device-added event.
func DeviceAdded(addr cec.LogicalAddress) Event {
	return Event{Kind: KindDeviceAdded, Address: addr}
}

// DeviceRemoved returns a device-removed event.
func DeviceRemoved(addr cec.LogicalAddress) Event {
	return Event{Kind: KindDeviceRemoved, Address: addr}
}

// DeviceInfoUpdated returns a device-info-updated event.
func DeviceInfoUpdated(addr cec.LogicalAddress) Event {
	return Event{Kind: KindDeviceInfoUpdated, Address: addr}
}

// ActiveSourceStatusUpdated returns an active-source event.
func ActiveSourceStatusUpdated(active bool) Event {
	return Event{Kind: KindActiveSourceStatusUpdated, Active: active}
}

// StandbyMessageReceived returns a standby event.
func StandbyMessageReceived(addr cec.LogicalAddress) Event {
	return Event{Kind: KindStandbyMessageReceived, Address: addr}
}

// KeyPress returns a key-press event.
func KeyPress(addr cec.LogicalAddress, key cec.UICommand) Event {
	return Event{Kind: KindKeyPress, Address: addr, Key: key}
}

// KeyRelease returns a key-release event.
func KeyRelease(addr cec.LogicalAddress) Event {
	return Event{Kind: KindKeyRelease, Address: addr}
}

// WakeRequested returns a wake event.
func WakeRequested(addr cec.LogicalAddress) Event {
	return Event{Kind: KindWakeRequested, Address: addr}
}

// String formats the event for logs and the console.
func (e Event) String() string {
	switch e.Kind {
	case KindActiveSourceStatusUpdated:
		return fmt.Sprintf("%s active=%t", e.Kind, e.Active)
	case KindKeyPress:
		return fmt.Sprintf("%s from=%d key=%s", e.Kind, e.Address, e.Key)
	default:
		return fmt.Sprintf("%s from=%d", e.Kind, e.Address)
	}
}
