package cec

import "fmt"

// OpCode identifies a CEC message.
type OpCode uint8

const (
	OpFeatureAbort          OpCode = 0x00
	OpImageViewOn           OpCode = 0x04
	OpTextViewOn            OpCode = 0x0D
	OpStandby               OpCode = 0x36
	OpUserControlPressed    OpCode = 0x44
	OpUserControlReleased   OpCode = 0x45
	OpGiveOSDName           OpCode = 0x46
	OpSetOSDName            OpCode = 0x47
	OpRoutingChange         OpCode = 0x80
	OpRoutingInformation    OpCode = 0x81
	OpActiveSource          OpCode = 0x82
	OpGivePhysicalAddress   OpCode = 0x83
	OpReportPhysicalAddress OpCode = 0x84
	OpRequestActiveSource   OpCode = 0x85
	OpSetStreamPath         OpCode = 0x86
	OpDeviceVendorID        OpCode = 0x87
	OpGiveDeviceVendorID    OpCode = 0x8C
	OpGiveDevicePowerStatus OpCode = 0x8F
	OpReportPowerStatus     OpCode = 0x90
	OpInactiveSource        OpCode = 0x9D
	OpCECVersion            OpCode = 0x9E
	OpGetCECVersion         OpCode = 0x9F
	OpAbort                 OpCode = 0xFF
)

// String returns the opcode name.
func (o OpCode) String() string {
	switch o {
	case OpFeatureAbort:
		return "FEATURE_ABORT"
	case OpImageViewOn:
		return "IMAGE_VIEW_ON"
	case OpTextViewOn:
		return "TEXT_VIEW_ON"
	case OpStandby:
		return "STANDBY"
	case OpUserControlPressed:
		return "USER_CONTROL_PRESSED"
	case OpUserControlReleased:
		return "USER_CONTROL_RELEASED"
	case OpGiveOSDName:
		return "GIVE_OSD_NAME"
	case OpSetOSDName:
		return "SET_OSD_NAME"
	case OpRoutingChange:
		return "ROUTING_CHANGE"
	case OpRoutingInformation:
		return "ROUTING_INFORMATION"
	case OpActiveSource:
		return "ACTIVE_SOURCE"
	case OpGivePhysicalAddress:
		return "GIVE_PHYSICAL_ADDRESS"
	case OpReportPhysicalAddress:
		return "REPORT_PHYSICAL_ADDRESS"
	case OpRequestActiveSource:
		return "REQUEST_ACTIVE_SOURCE"
	case OpSetStreamPath:
		return "SET_STREAM_PATH"
	case OpDeviceVendorID:
		return "DEVICE_VENDOR_ID"
	case OpGiveDeviceVendorID:
		return "GIVE_DEVICE_VENDOR_ID"
	case OpGiveDevicePowerStatus:
		return "GIVE_DEVICE_POWER_STATUS"
	case OpReportPowerStatus:
		return "REPORT_POWER_STATUS"
	case OpInactiveSource:
		return "INACTIVE_SOURCE"
	case OpCECVersion:
		return "CEC_VERSION"
	case OpGetCECVersion:
		return "GET_CEC_VERSION"
	case OpAbort:
		return "ABORT"
	default:
		return fmt.Sprintf("OPCODE(0x%02x)", uint8(o))
	}
}
