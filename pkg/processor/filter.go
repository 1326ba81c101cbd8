package processor

import "github.com/devsettings/cecsource-go/pkg/cec"

// addressing is the destination rule for one message kind.
type addressing uint8

const (
	addressingEither addressing = iota
	addressingBroadcast
	addressingDirect
)

func (a addressing) String() string {
	switch a {
	case addressingBroadcast:
		return "broadcast"
	case addressingDirect:
		return "direct"
	default:
		return "either"
	}
}

// addressingOf returns the destination rule for m.
func addressingOf(m cec.Message) addressing {
	switch m.(type) {
	case cec.RequestActiveSource, cec.ActiveSource, cec.RoutingChange,
		cec.RoutingInformation, cec.SetStreamPath:
		return addressingBroadcast
	case cec.GetCECVersion, cec.GiveOSDName, cec.GivePhysicalAddress,
		cec.GiveDeviceVendorID, cec.GiveDevicePowerStatus,
		cec.Abort, cec.FeatureAbort:
		return addressingDirect
	default:
		return addressingEither
	}
}

// accepts reports whether a message with header h passes the rule for a
// device at self.
func (a addressing) accepts(h cec.Header, self cec.LogicalAddress) bool {
	switch a {
	case addressingBroadcast:
		return h.IsBroadcast()
	case addressingDirect:
		return !h.IsBroadcast() && h.Destination == self
	default:
		return true
	}
}
