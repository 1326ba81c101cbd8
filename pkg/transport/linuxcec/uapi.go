package linuxcec

import (
	"fmt"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/transport"
)

// ioctl requests from <linux/cec.h>.
const (
	ioctlAdapGetPhysAddr = 0x80026101 // CEC_ADAP_G_PHYS_ADDR
	ioctlAdapGetLogAddrs = 0x805C6103 // CEC_ADAP_G_LOG_ADDRS
	ioctlAdapSetLogAddrs = 0xC05C6104 // CEC_ADAP_S_LOG_ADDRS
	ioctlTransmit        = 0xC0386105 // CEC_TRANSMIT
	ioctlReceive         = 0xC0386106 // CEC_RECEIVE
	ioctlSetMode         = 0x40046109 // CEC_S_MODE
)

const (
	modeInitiator        = 0x01
	modeFollowerPassthru = 0x30

	logAddrInvalid = 0xFF
	vendorIDNone   = 0xFFFFFFFF
)

// Transmit status bits.
const (
	txStatusOK         = 0x01
	txStatusArbLost    = 0x02
	txStatusNack       = 0x04
	txStatusLowDrive   = 0x08
	txStatusError      = 0x10
	txStatusMaxRetries = 0x20
)

// cecMsg mirrors struct cec_msg (56 bytes).
type cecMsg struct {
	TxTS          uint64
	RxTS          uint64
	Len           uint32
	Timeout       uint32
	Sequence      uint32
	Flags         uint32
	Msg           [cec.MaxFrameSize]byte
	Reply         uint8
	RxStatus      uint8
	TxStatus      uint8
	TxArbLostCnt  uint8
	TxNackCnt     uint8
	TxLowDriveCnt uint8
	TxErrorCnt    uint8
	_             [1]byte
}

func newMsg(frame []byte) (cecMsg, error) {
	var m cecMsg
	if len(frame) == 0 || len(frame) > cec.MaxFrameSize {
		return m, fmt.Errorf("%w: %d bytes", transport.ErrInvalidFrame, len(frame))
	}
	m.Len = uint32(copy(m.Msg[:], frame))
	return m, nil
}

func (m *cecMsg) frame() []byte {
	n := int(m.Len)
	if n > cec.MaxFrameSize {
		n = cec.MaxFrameSize
	}
	return append([]byte(nil), m.Msg[:n]...)
}

// cecLogAddrs mirrors struct cec_log_addrs (92 bytes).
type cecLogAddrs struct {
	LogAddr           [4]uint8
	LogAddrMask       uint16
	CECVersion        uint8
	NumLogAddrs       uint8
	VendorID          uint32
	Flags             uint32
	OSDName           [15]byte
	PrimaryDeviceType [4]uint8
	LogAddrType       [4]uint8
	AllDeviceTypes    [4]uint8
	Features          [4][12]uint8
	_                 [1]byte
}

// logAddrType maps a primary device type to CEC_LOG_ADDR_TYPE_*.
func logAddrType(t cec.DeviceType) uint8 {
	switch t {
	case cec.DeviceTypeTV:
		return 0
	case cec.DeviceTypeRecording:
		return 1
	case cec.DeviceTypeTuner:
		return 2
	case cec.DeviceTypePlayback:
		return 3
	case cec.DeviceTypeAudioSystem:
		return 4
	default:
		return 6 // unregistered
	}
}

// allDeviceTypes maps a primary device type to CEC_OP_ALL_DEVTYPE_*.
func allDeviceTypes(t cec.DeviceType) uint8 {
	switch t {
	case cec.DeviceTypeTV:
		return 0x80
	case cec.DeviceTypeRecording:
		return 0x40
	case cec.DeviceTypeTuner:
		return 0x20
	case cec.DeviceTypePlayback:
		return 0x10
	case cec.DeviceTypeAudioSystem:
		return 0x08
	default:
		return 0x04
	}
}

func newLogAddrs(t cec.DeviceType, osdName string, vendor cec.VendorID) cecLogAddrs {
	var la cecLogAddrs
	la.NumLogAddrs = 1
	la.CECVersion = uint8(cec.Version1_4)
	la.VendorID = uint32(vendor)
	if vendor == 0 {
		la.VendorID = vendorIDNone
	}
	copy(la.OSDName[:14], cec.TruncateOSDName(osdName))
	la.PrimaryDeviceType[0] = uint8(t)
	la.LogAddrType[0] = logAddrType(t)
	la.AllDeviceTypes[0] = allDeviceTypes(t)
	for i := range la.LogAddr {
		la.LogAddr[i] = logAddrInvalid
	}
	return la
}

// txError maps a transmit status to a transport error.
func txError(status uint8) error {
	switch {
	case status&txStatusOK != 0:
		return nil
	case status&txStatusNack != 0:
		return fmt.Errorf("tx status 0x%02x: %w", status, transport.ErrNoAck)
	default:
		return fmt.Errorf("tx status 0x%02x: %w", status, transport.ErrBus)
	}
}
