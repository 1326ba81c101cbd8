package log

import "time"

// Event represents one captured occurrence on or around the bus.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one enable/disable cycle of the bus (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// LocalAddress is this device's logical address when the event occurred.
	LocalAddress uint8 `cbor:"6,keyasint"`

	// PhysicalAddress is this device's physical address ("1.0.0.0").
	PhysicalAddress string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Bus layer
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"` // Processor layer
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Service state
	Ping        *PingEvent        `cbor:"13,keyasint,omitempty"` // Liveness probing
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates a frame received from the bus.
	DirectionIn Direction = 0
	// DirectionOut indicates a frame sent by this device.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerBus is the transport (raw frames).
	LayerBus Layer = 0
	// LayerProcessor is the message processor (decoded messages).
	LayerProcessor Layer = 1
	// LayerService is the source service.
	LayerService Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerBus:
		return "BUS"
	case LayerProcessor:
		return "PROCESSOR"
	case LayerService:
		return "SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a CEC message.
	CategoryMessage Category = 0
	// CategoryControl indicates a ping or address poll.
	CategoryControl Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryControl:
		return "CONTROL"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures one raw frame.
type FrameEvent struct {
	// Data is the raw frame including the header byte.
	Data []byte `cbor:"1,keyasint"`

	// Source and Destination are the header nibbles.
	Source      uint8 `cbor:"2,keyasint"`
	Destination uint8 `cbor:"3,keyasint"`

	// OpCode is absent for polling frames.
	OpCode *uint8 `cbor:"4,keyasint,omitempty"`

	// Result is the transmit outcome for outgoing frames.
	Result TxResult `cbor:"5,keyasint,omitempty"`
}

// TxResult is the outcome of a transmit.
type TxResult uint8

const (
	// TxNone is used for received frames.
	TxNone TxResult = 0
	// TxAck indicates the frame was acknowledged.
	TxAck TxResult = 1
	// TxNoAck indicates the destination did not acknowledge.
	TxNoAck TxResult = 2
	// TxFailed indicates an I/O or bus error.
	TxFailed TxResult = 3
	// TxQueued indicates an asynchronous send whose result is not tracked.
	TxQueued TxResult = 4
)

// String returns the result name.
func (r TxResult) String() string {
	switch r {
	case TxNone:
		return "-"
	case TxAck:
		return "ACK"
	case TxNoAck:
		return "NACK"
	case TxFailed:
		return "FAILED"
	case TxQueued:
		return "QUEUED"
	default:
		return "UNKNOWN"
	}
}

// MessageEvent captures a decoded message and what the processor did with it.
type MessageEvent struct {
	// Name is the message name, e.g. "ACTIVE_SOURCE" or "POLLING".
	Name string `cbor:"1,keyasint"`

	Source      uint8 `cbor:"2,keyasint"`
	Destination uint8 `cbor:"3,keyasint"`

	// OpCode is absent for polling frames.
	OpCode *uint8 `cbor:"4,keyasint,omitempty"`

	// Disposition records how the message was handled.
	Disposition Disposition `cbor:"5,keyasint"`

	// Detail is a short human-readable summary of the operands.
	Detail string `cbor:"6,keyasint,omitempty"`

	// Result is the transmit outcome of an outgoing message.
	Result TxResult `cbor:"7,keyasint,omitempty"`
}

// Disposition records how a message was handled.
type Disposition uint8

const (
	// DispositionHandled indicates a handler ran.
	DispositionHandled Disposition = 0
	// DispositionIgnored indicates the destination filter rejected the message.
	DispositionIgnored Disposition = 1
	// DispositionUnhandled indicates an unknown opcode or malformed operands.
	DispositionUnhandled Disposition = 2
	// DispositionSent indicates a message this device transmitted.
	DispositionSent Disposition = 3
)

// String returns the disposition name.
func (d Disposition) String() string {
	switch d {
	case DispositionHandled:
		return "HANDLED"
	case DispositionIgnored:
		return "IGNORED"
	case DispositionUnhandled:
		return "UNHANDLED"
	case DispositionSent:
		return "SENT"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures service and directory state transitions.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityService indicates the enabled/disabled state of the service.
	StateEntityService StateEntity = 0
	// StateEntityAddress indicates a logical or physical address change.
	StateEntityAddress StateEntity = 1
	// StateEntityActiveSource indicates an active-source change.
	StateEntityActiveSource StateEntity = 2
	// StateEntityDevice indicates a directory entry was added or removed.
	StateEntityDevice StateEntity = 3
	// StateEntityPower indicates a host power-mode change.
	StateEntityPower StateEntity = 4
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityService:
		return "SERVICE"
	case StateEntityAddress:
		return "ADDRESS"
	case StateEntityActiveSource:
		return "ACTIVE_SOURCE"
	case StateEntityDevice:
		return "DEVICE"
	case StateEntityPower:
		return "POWER"
	default:
		return "UNKNOWN"
	}
}

// PingEvent captures a bus-level ping of one logical address.
type PingEvent struct {
	// Target is the pinged logical address.
	Target uint8 `cbor:"1,keyasint"`

	// Acked is true when the target acknowledged.
	Acked bool `cbor:"2,keyasint"`

	// Purpose is "probe" or "allocate".
	Purpose string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
