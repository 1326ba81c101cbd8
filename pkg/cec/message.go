package cec

// MaxOSDNameLength is the maximum number of characters in an OSD name.
const MaxOSDNameLength = 14

// Message is one decoded CEC message. The set of implementations is closed:
// only types in this package satisfy it.
type Message interface {
	// OpCode returns the message opcode. Polling carries no opcode on the
	// wire; its OpCode result is not meaningful and Encode never writes it.
	OpCode() OpCode

	appendOperands(b []byte) []byte
}

// Polling is a header-only frame.
type Polling struct{}

// ActiveSource announces the physical address of the current active source.
type ActiveSource struct {
	PhysicalAddress PhysicalAddress
}

// InactiveSource tells the TV that the sender is no longer showing content.
type InactiveSource struct {
	PhysicalAddress PhysicalAddress
}

// ImageViewOn asks the TV to leave standby and show the sender.
type ImageViewOn struct{}

// TextViewOn asks the TV to leave standby and remove any menu overlay.
type TextViewOn struct{}

// RequestActiveSource asks the active source to identify itself.
type RequestActiveSource struct{}

// Standby switches the addressed device(s) to standby.
type Standby struct{}

// GetCECVersion asks for the CEC version of the destination.
type GetCECVersion struct{}

// CECVersion reports the sender's CEC version.
type CECVersion struct {
	Version Version
}

// GiveOSDName asks for the destination's OSD name.
type GiveOSDName struct{}

// SetOSDName reports the sender's OSD name.
type SetOSDName struct {
	Name string
}

// GivePhysicalAddress asks the destination to broadcast its physical address.
type GivePhysicalAddress struct{}

// ReportPhysicalAddress broadcasts the sender's physical address and type.
type ReportPhysicalAddress struct {
	PhysicalAddress PhysicalAddress
	DeviceType      DeviceType
}

// GiveDeviceVendorID asks the destination to broadcast its vendor ID.
type GiveDeviceVendorID struct{}

// DeviceVendorID reports the sender's vendor ID.
type DeviceVendorID struct {
	VendorID VendorID
}

// RoutingChange is sent by a switch when its selected input changes.
type RoutingChange struct {
	From PhysicalAddress
	To   PhysicalAddress
}

// RoutingInformation reports the active route below a switch.
type RoutingInformation struct {
	PhysicalAddress PhysicalAddress
}

// SetStreamPath asks the device at the given address to become active source.
type SetStreamPath struct {
	PhysicalAddress PhysicalAddress
}

// GiveDevicePowerStatus asks for the destination's power status.
type GiveDevicePowerStatus struct{}

// ReportPowerStatus reports the sender's power status.
type ReportPowerStatus struct {
	Status PowerStatus
}

// UserControlPressed carries a remote-control key press.
type UserControlPressed struct {
	Command UICommand
}

// UserControlReleased marks the release of the last pressed key.
type UserControlReleased struct{}

// FeatureAbort rejects a previously received directed message.
type FeatureAbort struct {
	Rejected OpCode
	Reason   AbortReason
}

// Abort is a test message used to probe Feature Abort behaviour.
type Abort struct{}

// Unhandled carries any opcode this package does not model, or a modelled
// opcode whose operands were too short to decode.
type Unhandled struct {
	Code     OpCode
	Operands []byte
}

func (Polling) OpCode() OpCode               { return OpAbort }
func (ActiveSource) OpCode() OpCode          { return OpActiveSource }
func (InactiveSource) OpCode() OpCode        { return OpInactiveSource }
func (ImageViewOn) OpCode() OpCode           { return OpImageViewOn }
func (TextViewOn) OpCode() OpCode            { return OpTextViewOn }
func (RequestActiveSource) OpCode() OpCode   { return OpRequestActiveSource }
func (Standby) OpCode() OpCode               { return OpStandby }
func (GetCECVersion) OpCode() OpCode         { return OpGetCECVersion }
func (CECVersion) OpCode() OpCode            { return OpCECVersion }
func (GiveOSDName) OpCode() OpCode           { return OpGiveOSDName }
func (SetOSDName) OpCode() OpCode            { return OpSetOSDName }
func (GivePhysicalAddress) OpCode() OpCode   { return OpGivePhysicalAddress }
func (ReportPhysicalAddress) OpCode() OpCode { return OpReportPhysicalAddress }
func (GiveDeviceVendorID) OpCode() OpCode    { return OpGiveDeviceVendorID }
func (DeviceVendorID) OpCode() OpCode        { return OpDeviceVendorID }
func (RoutingChange) OpCode() OpCode         { return OpRoutingChange }
func (RoutingInformation) OpCode() OpCode    { return OpRoutingInformation }
func (SetStreamPath) OpCode() OpCode         { return OpSetStreamPath }
func (GiveDevicePowerStatus) OpCode() OpCode { return OpGiveDevicePowerStatus }
func (ReportPowerStatus) OpCode() OpCode     { return OpReportPowerStatus }
func (UserControlPressed) OpCode() OpCode    { return OpUserControlPressed }
func (UserControlReleased) OpCode() OpCode   { return OpUserControlReleased }
func (FeatureAbort) OpCode() OpCode          { return OpFeatureAbort }
func (Abort) OpCode() OpCode                 { return OpAbort }
func (m Unhandled) OpCode() OpCode           { return m.Code }

func (Polling) appendOperands(b []byte) []byte               { return b }
func (ImageViewOn) appendOperands(b []byte) []byte           { return b }
func (TextViewOn) appendOperands(b []byte) []byte            { return b }
func (RequestActiveSource) appendOperands(b []byte) []byte   { return b }
func (Standby) appendOperands(b []byte) []byte               { return b }
func (GetCECVersion) appendOperands(b []byte) []byte         { return b }
func (GiveOSDName) appendOperands(b []byte) []byte           { return b }
func (GivePhysicalAddress) appendOperands(b []byte) []byte   { return b }
func (GiveDeviceVendorID) appendOperands(b []byte) []byte    { return b }
func (GiveDevicePowerStatus) appendOperands(b []byte) []byte { return b }
func (UserControlReleased) appendOperands(b []byte) []byte   { return b }
func (Abort) appendOperands(b []byte) []byte                 { return b }

func (m ActiveSource) appendOperands(b []byte) []byte {
	pa := m.PhysicalAddress.Bytes()
	return append(b, pa[0], pa[1])
}

func (m InactiveSource) appendOperands(b []byte) []byte {
	pa := m.PhysicalAddress.Bytes()
	return append(b, pa[0], pa[1])
}

func (m CECVersion) appendOperands(b []byte) []byte {
	return append(b, byte(m.Version))
}

func (m SetOSDName) appendOperands(b []byte) []byte {
	return append(b, TruncateOSDName(m.Name)...)
}

func (m ReportPhysicalAddress) appendOperands(b []byte) []byte {
	pa := m.PhysicalAddress.Bytes()
	return append(b, pa[0], pa[1], byte(m.DeviceType))
}

func (m DeviceVendorID) appendOperands(b []byte) []byte {
	v := m.VendorID.Bytes()
	return append(b, v[0], v[1], v[2])
}

func (m RoutingChange) appendOperands(b []byte) []byte {
	from := m.From.Bytes()
	to := m.To.Bytes()
	return append(b, from[0], from[1], to[0], to[1])
}

func (m RoutingInformation) appendOperands(b []byte) []byte {
	pa := m.PhysicalAddress.Bytes()
	return append(b, pa[0], pa[1])
}

func (m SetStreamPath) appendOperands(b []byte) []byte {
	pa := m.PhysicalAddress.Bytes()
	return append(b, pa[0], pa[1])
}

func (m ReportPowerStatus) appendOperands(b []byte) []byte {
	return append(b, byte(m.Status))
}

func (m UserControlPressed) appendOperands(b []byte) []byte {
	return append(b, byte(m.Command))
}

func (m FeatureAbort) appendOperands(b []byte) []byte {
	return append(b, byte(m.Rejected), byte(m.Reason))
}

func (m Unhandled) appendOperands(b []byte) []byte {
	return append(b, m.Operands...)
}

// TruncateOSDName clips a name to MaxOSDNameLength bytes.
func TruncateOSDName(name string) string {
	if len(name) > MaxOSDNameLength {
		return name[:MaxOSDNameLength]
	}
	return name
}
