package cec

import (
	"errors"
	"fmt"
)

// MaxFrameSize is the largest frame the bus carries (header, opcode and 14 operands).
const MaxFrameSize = 16

// Codec errors.
var (
	// ErrFrameTooShort indicates a frame without a header byte.
	ErrFrameTooShort = errors.New("frame too short")

	// ErrFrameTooLong indicates a frame longer than MaxFrameSize.
	ErrFrameTooLong = errors.New("frame too long")
)

// Decode parses a raw frame. An empty frame returns ErrFrameTooShort.
// A header-only frame decodes to Polling. A modelled opcode with truncated
// operands decodes to Unhandled so that callers can drop it. Decode never
// panics on malformed input.
func Decode(frame []byte) (Header, Message, error) {
	if len(frame) == 0 {
		return Header{}, nil, ErrFrameTooShort
	}
	if len(frame) > MaxFrameSize {
		return Header{}, nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLong, len(frame))
	}
	h := ParseHeader(frame[0])
	if len(frame) == 1 {
		return h, Polling{}, nil
	}
	op := OpCode(frame[1])
	return h, decodeMessage(op, frame[2:]), nil
}

func decodeMessage(op OpCode, p []byte) Message {
	unhandled := func() Message {
		return Unhandled{Code: op, Operands: append([]byte(nil), p...)}
	}
	pa := func(i int) PhysicalAddress {
		return PhysicalAddress(uint16(p[i])<<8 | uint16(p[i+1]))
	}

	switch op {
	case OpImageViewOn:
		return ImageViewOn{}
	case OpTextViewOn:
		return TextViewOn{}
	case OpRequestActiveSource:
		return RequestActiveSource{}
	case OpStandby:
		return Standby{}
	case OpGetCECVersion:
		return GetCECVersion{}
	case OpGiveOSDName:
		return GiveOSDName{}
	case OpGivePhysicalAddress:
		return GivePhysicalAddress{}
	case OpGiveDeviceVendorID:
		return GiveDeviceVendorID{}
	case OpGiveDevicePowerStatus:
		return GiveDevicePowerStatus{}
	case OpUserControlReleased:
		return UserControlReleased{}
	case OpAbort:
		return Abort{}

	case OpActiveSource, OpInactiveSource, OpRoutingInformation, OpSetStreamPath:
		if len(p) < 2 {
			return unhandled()
		}
		switch op {
		case OpActiveSource:
			return ActiveSource{PhysicalAddress: pa(0)}
		case OpInactiveSource:
			return InactiveSource{PhysicalAddress: pa(0)}
		case OpRoutingInformation:
			return RoutingInformation{PhysicalAddress: pa(0)}
		default:
			return SetStreamPath{PhysicalAddress: pa(0)}
		}

	case OpCECVersion:
		if len(p) < 1 {
			return unhandled()
		}
		return CECVersion{Version: Version(p[0])}

	case OpSetOSDName:
		if len(p) < 1 {
			return unhandled()
		}
		return SetOSDName{Name: TruncateOSDName(string(p))}

	case OpReportPhysicalAddress:
		if len(p) < 3 {
			return unhandled()
		}
		return ReportPhysicalAddress{PhysicalAddress: pa(0), DeviceType: DeviceType(p[2])}

	case OpDeviceVendorID:
		if len(p) < 3 {
			return unhandled()
		}
		return DeviceVendorID{VendorID: NewVendorID(p[0], p[1], p[2])}

	case OpRoutingChange:
		if len(p) < 4 {
			return unhandled()
		}
		return RoutingChange{From: pa(0), To: pa(2)}

	case OpReportPowerStatus:
		if len(p) < 1 {
			return unhandled()
		}
		return ReportPowerStatus{Status: PowerStatus(p[0])}

	case OpUserControlPressed:
		if len(p) < 1 {
			return unhandled()
		}
		return UserControlPressed{Command: UICommand(p[0])}

	case OpFeatureAbort:
		if len(p) < 2 {
			return unhandled()
		}
		return FeatureAbort{Rejected: OpCode(p[0]), Reason: AbortReason(p[1])}

	default:
		return unhandled()
	}
}

// Encode serializes a message into a frame. Polling encodes to the header
// byte alone. Operands beyond MaxFrameSize are not checked; only SetOSDName
// and Unhandled carry variable-length operands and the former is truncated.
func Encode(h Header, m Message) []byte {
	frame := make([]byte, 1, MaxFrameSize)
	frame[0] = h.Byte()
	if _, ok := m.(Polling); ok || m == nil {
		return frame
	}
	frame = append(frame, byte(m.OpCode()))
	return m.appendOperands(frame)
}

// Name returns a printable message name; Polling has no opcode of its own.
func Name(m Message) string {
	switch m.(type) {
	case nil:
		return "NONE"
	case Polling:
		return "POLLING"
	default:
		return m.OpCode().String()
	}
}

// IsPolling reports whether m is a header-only frame.
func IsPolling(m Message) bool {
	_, ok := m.(Polling)
	return ok
}
