package cec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// LogicalAddress is a 4-bit CEC device address.
type LogicalAddress uint8

const (
	AddrTV          LogicalAddress = 0
	AddrRecording1  LogicalAddress = 1
	AddrRecording2  LogicalAddress = 2
	AddrTuner1      LogicalAddress = 3
	AddrPlayback1   LogicalAddress = 4
	AddrAudioSystem LogicalAddress = 5
	AddrTuner2      LogicalAddress = 6
	AddrTuner3      LogicalAddress = 7
	AddrPlayback2   LogicalAddress = 8
	AddrRecording3  LogicalAddress = 9
	AddrTuner4      LogicalAddress = 10
	AddrPlayback3   LogicalAddress = 11
	AddrReserved1   LogicalAddress = 12
	AddrReserved2   LogicalAddress = 13
	AddrSpecificUse LogicalAddress = 14

	// AddrBroadcast is the broadcast destination.
	AddrBroadcast LogicalAddress = 15

	// AddrUnregistered is the source address of a device without a claimed address.
	AddrUnregistered LogicalAddress = 15
)

// Peer address range tracked by the device directory.
const (
	MinPeerAddress LogicalAddress = 1
	MaxPeerAddress LogicalAddress = 14
)

// PlaybackAddresses lists the logical addresses a playback device may claim,
// in allocation order.
var PlaybackAddresses = []LogicalAddress{AddrPlayback1, AddrPlayback2, AddrPlayback3}

// IsValid reports whether the address fits in 4 bits.
func (a LogicalAddress) IsValid() bool {
	return a <= AddrBroadcast
}

// IsPeer reports whether the address is one of the 14 directory slots.
func (a LogicalAddress) IsPeer() bool {
	return a >= MinPeerAddress && a <= MaxPeerAddress
}

// String returns the address name.
func (a LogicalAddress) String() string {
	switch a {
	case AddrTV:
		return "TV"
	case AddrRecording1:
		return "Recording 1"
	case AddrRecording2:
		return "Recording 2"
	case AddrTuner1:
		return "Tuner 1"
	case AddrPlayback1:
		return "Playback 1"
	case AddrAudioSystem:
		return "Audio System"
	case AddrTuner2:
		return "Tuner 2"
	case AddrTuner3:
		return "Tuner 3"
	case AddrPlayback2:
		return "Playback 2"
	case AddrRecording3:
		return "Recording 3"
	case AddrTuner4:
		return "Tuner 4"
	case AddrPlayback3:
		return "Playback 3"
	case AddrReserved1, AddrReserved2:
		return "Reserved"
	case AddrSpecificUse:
		return "Specific Use"
	case AddrBroadcast:
		return "Broadcast/Unregistered"
	default:
		return fmt.Sprintf("Invalid(%d)", uint8(a))
	}
}

// DeviceType returns the primary device type implied by the address.
func (a LogicalAddress) DeviceType() DeviceType {
	switch a {
	case AddrTV:
		return DeviceTypeTV
	case AddrRecording1, AddrRecording2, AddrRecording3:
		return DeviceTypeRecording
	case AddrTuner1, AddrTuner2, AddrTuner3, AddrTuner4:
		return DeviceTypeTuner
	case AddrPlayback1, AddrPlayback2, AddrPlayback3:
		return DeviceTypePlayback
	case AddrAudioSystem:
		return DeviceTypeAudioSystem
	default:
		return DeviceTypeReserved
	}
}

// PhysicalAddress is the 16-bit HDMI topology address, one nibble per level.
type PhysicalAddress uint16

// InvalidPhysicalAddress is F.F.F.F, used before a sink has assigned one.
const InvalidPhysicalAddress PhysicalAddress = 0xFFFF

// ErrInvalidPhysicalAddress is returned when parsing a malformed physical address.
var ErrInvalidPhysicalAddress = errors.New("invalid physical address")

// NewPhysicalAddress builds an address from its four nibbles (a.b.c.d).
func NewPhysicalAddress(a, b, c, d uint8) PhysicalAddress {
	return PhysicalAddress(uint16(a&0x0F)<<12 | uint16(b&0x0F)<<8 | uint16(c&0x0F)<<4 | uint16(d&0x0F))
}

// ParsePhysicalAddress parses "a.b.c.d" with hexadecimal nibbles.
func ParsePhysicalAddress(s string) (PhysicalAddress, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return InvalidPhysicalAddress, fmt.Errorf("%w: %q", ErrInvalidPhysicalAddress, s)
	}
	var nibbles [4]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil || v > 0x0F {
			return InvalidPhysicalAddress, fmt.Errorf("%w: %q", ErrInvalidPhysicalAddress, s)
		}
		nibbles[i] = uint8(v)
	}
	return NewPhysicalAddress(nibbles[0], nibbles[1], nibbles[2], nibbles[3]), nil
}

// Nibble returns level i (0 = closest to the TV).
func (p PhysicalAddress) Nibble(i int) uint8 {
	if i < 0 || i > 3 {
		return 0
	}
	return uint8(p>>(12-4*uint(i))) & 0x0F
}

// Bytes returns the big-endian wire encoding.
func (p PhysicalAddress) Bytes() [2]byte {
	return [2]byte{byte(p >> 8), byte(p)}
}

// IsValid reports whether the address is not F.F.F.F.
func (p PhysicalAddress) IsValid() bool {
	return p != InvalidPhysicalAddress
}

// String returns the dotted form, e.g. "2.0.0.0".
func (p PhysicalAddress) String() string {
	return fmt.Sprintf("%x.%x.%x.%x", p.Nibble(0), p.Nibble(1), p.Nibble(2), p.Nibble(3))
}

// Header is the first byte of every frame.
type Header struct {
	Source      LogicalAddress
	Destination LogicalAddress
}

// IsBroadcast reports whether the frame is addressed to all devices.
func (h Header) IsBroadcast() bool {
	return h.Destination == AddrBroadcast
}

// Byte returns the encoded header byte.
func (h Header) Byte() byte {
	return byte(h.Source&0x0F)<<4 | byte(h.Destination&0x0F)
}

// String returns "src->dst".
func (h Header) String() string {
	return fmt.Sprintf("%X->%X", uint8(h.Source), uint8(h.Destination))
}

// ParseHeader splits a header byte into source and destination.
func ParseHeader(b byte) Header {
	return Header{
		Source:      LogicalAddress(b >> 4),
		Destination: LogicalAddress(b & 0x0F),
	}
}
