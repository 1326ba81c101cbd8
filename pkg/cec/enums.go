package cec

import "fmt"

// DeviceType is the primary device type carried by Report Physical Address.
type DeviceType uint8

const (
	DeviceTypeTV            DeviceType = 0
	DeviceTypeRecording     DeviceType = 1
	DeviceTypeReserved      DeviceType = 2
	DeviceTypeTuner         DeviceType = 3
	DeviceTypePlayback      DeviceType = 4
	DeviceTypeAudioSystem   DeviceType = 5
	DeviceTypePureCECSwitch DeviceType = 6
	DeviceTypeVideoProc     DeviceType = 7
)

// String returns the device type name.
func (t DeviceType) String() string {
	switch t {
	case DeviceTypeTV:
		return "TV"
	case DeviceTypeRecording:
		return "Recording Device"
	case DeviceTypeReserved:
		return "Reserved"
	case DeviceTypeTuner:
		return "Tuner"
	case DeviceTypePlayback:
		return "Playback Device"
	case DeviceTypeAudioSystem:
		return "Audio System"
	case DeviceTypePureCECSwitch:
		return "Pure CEC Switch"
	case DeviceTypeVideoProc:
		return "Video Processor"
	default:
		return "UNKNOWN"
	}
}

// ParseDeviceType accepts the short names used in configuration files.
func ParseDeviceType(s string) (DeviceType, error) {
	switch s {
	case "tv":
		return DeviceTypeTV, nil
	case "recording":
		return DeviceTypeRecording, nil
	case "tuner":
		return DeviceTypeTuner, nil
	case "playback":
		return DeviceTypePlayback, nil
	case "audio", "audiosystem":
		return DeviceTypeAudioSystem, nil
	default:
		return DeviceTypeReserved, fmt.Errorf("unknown device type %q", s)
	}
}

// Version is the CEC version operand.
type Version uint8

const (
	Version1_1  Version = 0x00
	Version1_2  Version = 0x01
	Version1_2a Version = 0x02
	Version1_3  Version = 0x03
	Version1_3a Version = 0x04
	Version1_4  Version = 0x05
	Version2_0  Version = 0x06

	// VersionUnknown marks a directory entry whose version has not been reported.
	VersionUnknown Version = 0xFF
)

// String returns the version name.
func (v Version) String() string {
	switch v {
	case Version1_1:
		return "1.1"
	case Version1_2:
		return "1.2"
	case Version1_2a:
		return "1.2a"
	case Version1_3:
		return "1.3"
	case Version1_3a:
		return "1.3a"
	case Version1_4:
		return "1.4"
	case Version2_0:
		return "2.0"
	case VersionUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Version(0x%02x)", uint8(v))
	}
}

// PowerStatus is the power status operand.
type PowerStatus uint8

const (
	PowerStatusOn                PowerStatus = 0x00
	PowerStatusStandby           PowerStatus = 0x01
	PowerStatusTransitionToOn    PowerStatus = 0x02
	PowerStatusTransitionStandby PowerStatus = 0x03

	// PowerStatusUnknown is never sent on the wire.
	PowerStatusUnknown PowerStatus = 0xFF
)

// String returns the power status name.
func (s PowerStatus) String() string {
	switch s {
	case PowerStatusOn:
		return "On"
	case PowerStatusStandby:
		return "Standby"
	case PowerStatusTransitionToOn:
		return "In transition Standby to On"
	case PowerStatusTransitionStandby:
		return "In transition On to Standby"
	case PowerStatusUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("PowerStatus(0x%02x)", uint8(s))
	}
}

// VendorID is the 24-bit IEEE OUI of a vendor.
type VendorID uint32

// Well-known vendor IDs.
const (
	// VendorIDDefault is the vendor ID this device reports when none is configured.
	VendorIDDefault VendorID = 0x0019FB

	// VendorIDLG is reported instead of the configured vendor ID when the
	// connected sink is an LG TV.
	VendorIDLG VendorID = 0x00E091
)

// NewVendorID builds a vendor ID from its three wire bytes.
func NewVendorID(a, b, c byte) VendorID {
	return VendorID(uint32(a)<<16 | uint32(b)<<8 | uint32(c))
}

// Bytes returns the three wire bytes.
func (v VendorID) Bytes() [3]byte {
	return [3]byte{byte(v >> 16), byte(v >> 8), byte(v)}
}

// String returns the bytes as concatenated unpadded hex, so that
// (0,0,0) formats as "000" and (0xAA,0xBB,0xCC) as "aabbcc".
func (v VendorID) String() string {
	b := v.Bytes()
	return fmt.Sprintf("%x%x%x", b[0], b[1], b[2])
}

// Hex returns the ID as six lowercase hex digits, e.g. "0019fb".
func (v VendorID) Hex() string {
	return fmt.Sprintf("%06x", uint32(v)&0xFFFFFF)
}

// AbortReason is the Feature Abort reason operand.
type AbortReason uint8

const (
	AbortUnrecognizedOpcode AbortReason = 0
	AbortNotInCorrectMode   AbortReason = 1
	AbortCannotProvide      AbortReason = 2
	AbortInvalidOperand     AbortReason = 3
	AbortRefused            AbortReason = 4
	AbortUnableToDetermine  AbortReason = 5
)

// String returns the reason name.
func (r AbortReason) String() string {
	switch r {
	case AbortUnrecognizedOpcode:
		return "Unrecognized opcode"
	case AbortNotInCorrectMode:
		return "Not in correct mode to respond"
	case AbortCannotProvide:
		return "Cannot provide source"
	case AbortInvalidOperand:
		return "Invalid operand"
	case AbortRefused:
		return "Refused"
	case AbortUnableToDetermine:
		return "Unable to determine"
	default:
		return fmt.Sprintf("AbortReason(%d)", uint8(r))
	}
}

// UICommand is the remote-control key code of User Control Pressed.
type UICommand uint8

const (
	UISelect     UICommand = 0x00
	UIUp         UICommand = 0x01
	UIDown       UICommand = 0x02
	UILeft       UICommand = 0x03
	UIRight      UICommand = 0x04
	UIRootMenu   UICommand = 0x09
	UIHome       UICommand = 0x09
	UIBack       UICommand = 0x0D
	UIExit       UICommand = 0x0D
	UINumber0    UICommand = 0x20
	UINumber1    UICommand = 0x21
	UINumber2    UICommand = 0x22
	UINumber3    UICommand = 0x23
	UINumber4    UICommand = 0x24
	UINumber5    UICommand = 0x25
	UINumber6    UICommand = 0x26
	UINumber7    UICommand = 0x27
	UINumber8    UICommand = 0x28
	UINumber9    UICommand = 0x29
	UIVolumeUp   UICommand = 0x41
	UIVolumeDown UICommand = 0x42
	UIMute       UICommand = 0x43
	UIPlay       UICommand = 0x44
	UIStop       UICommand = 0x45
	UIPause      UICommand = 0x46
)

// String returns the key name.
func (c UICommand) String() string {
	if c >= UINumber0 && c <= UINumber9 {
		return fmt.Sprintf("Number %d", uint8(c-UINumber0))
	}
	switch c {
	case UISelect:
		return "Select"
	case UIUp:
		return "Up"
	case UIDown:
		return "Down"
	case UILeft:
		return "Left"
	case UIRight:
		return "Right"
	case UIHome:
		return "Home"
	case UIBack:
		return "Back"
	case UIVolumeUp:
		return "Volume Up"
	case UIVolumeDown:
		return "Volume Down"
	case UIMute:
		return "Mute"
	case UIPlay:
		return "Play"
	case UIStop:
		return "Stop"
	case UIPause:
		return "Pause"
	default:
		return fmt.Sprintf("Key(0x%02x)", uint8(c))
	}
}
