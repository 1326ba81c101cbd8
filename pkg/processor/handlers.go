package processor

import (
	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/notify"
)

// handle runs the handler for a message that passed the destination filter.
func (p *Processor) handle(h cec.Header, msg cec.Message) {
	src := h.Source

	switch m := msg.(type) {
	case cec.Polling:
		// Header only; the bus already acknowledged it.

	case cec.RequestActiveSource:
		p.handleRequestActiveSource()

	case cec.ActiveSource:
		p.handleActiveSource(src, m.PhysicalAddress)

	case cec.InactiveSource:
		p.debugLog("inactive source", "from", uint8(src), "physical", m.PhysicalAddress.String())

	case cec.ImageViewOn, cec.TextViewOn:
		p.debugLog("view on request ignored by source", "from", uint8(src), "message", cec.Name(msg))

	case cec.Standby:
		p.infoLog("standby requested", "from", uint8(src))
		p.emit(notify.StandbyMessageReceived(src))

	case cec.GetCECVersion:
		p.reply(src, cec.CECVersion{Version: p.cfg.Version})

	case cec.CECVersion:
		p.updatePeer(src, func() error { return p.dir.SetCECVersion(src, m.Version) })

	case cec.GiveOSDName:
		p.reply(src, cec.SetOSDName{Name: p.announcedName()})

	case cec.SetOSDName:
		p.updatePeer(src, func() error { return p.dir.SetOSDName(src, m.Name) })

	case cec.GivePhysicalAddress:
		id := p.Identity()
		p.reply(cec.AddrBroadcast, cec.ReportPhysicalAddress{
			PhysicalAddress: id.PhysicalAddress,
			DeviceType:      id.DeviceType,
		})

	case cec.ReportPhysicalAddress:
		p.handleReportPhysicalAddress(src, m)

	case cec.GiveDeviceVendorID:
		p.reply(cec.AddrBroadcast, cec.DeviceVendorID{VendorID: p.Identity().VendorID})

	case cec.DeviceVendorID:
		p.updatePeer(src, func() error { return p.dir.SetVendorID(src, m.VendorID) })

	case cec.RoutingChange:
		p.handleRouting(src, m.To, false)

	case cec.RoutingInformation:
		p.handleRouting(src, m.PhysicalAddress, false)

	case cec.SetStreamPath:
		p.handleRouting(src, m.PhysicalAddress, true)

	case cec.GiveDevicePowerStatus:
		p.reply(src, cec.ReportPowerStatus{Status: p.Identity().PowerStatus})

	case cec.ReportPowerStatus:
		if src.IsPeer() {
			if err := p.dir.SetPowerStatus(src, m.Status); err != nil {
				p.debugLog("power status not stored", "from", uint8(src), "error", err)
			}
		}

	case cec.UserControlPressed:
		p.emit(notify.KeyPress(src, m.Command))

	case cec.UserControlReleased:
		p.emit(notify.KeyRelease(src))

	case cec.Abort:
		p.debugLog("abort received", "from", uint8(src))

	case cec.FeatureAbort:
		p.debugLog("feature abort received",
			"from", uint8(src), "opcode", m.Rejected.String(), "reason", m.Reason.String())
	}
}

func (p *Processor) handleRequestActiveSource() {
	if !p.dir.IsActiveSource() {
		return
	}
	p.reply(cec.AddrBroadcast, cec.ActiveSource{PhysicalAddress: p.PhysicalAddress()})
}

func (p *Processor) handleActiveSource(src cec.LogicalAddress, pa cec.PhysicalAddress) {
	c := p.dir.ReportActiveSource(src, pa, p.PhysicalAddress())
	if c.Changed() {
		p.logState(log.StateEntityActiveSource, boolState(c.Was), boolState(c.Now), "ACTIVE_SOURCE from "+src.String())
	}
	p.emit(notify.ActiveSourceStatusUpdated(c.Now))
	if c.Woke {
		p.infoLog("woken by active source", "from", uint8(src))
		p.emit(notify.WakeRequested(src))
	}
}

// handleRouting re-evaluates the active source from a routing message.
// Set Stream Path naming this device is answered with Active Source.
func (p *Processor) handleRouting(src cec.LogicalAddress, path cec.PhysicalAddress, announce bool) {
	self := p.PhysicalAddress()
	c := p.dir.SetRoutingPath(path, self)
	if c.Changed() {
		p.logState(log.StateEntityActiveSource, boolState(c.Was), boolState(c.Now), "routing to "+path.String())
	}
	p.emit(notify.ActiveSourceStatusUpdated(c.Now))

	if announce && c.Now {
		p.reply(cec.AddrBroadcast, cec.ActiveSource{PhysicalAddress: self})
	}
}

func (p *Processor) handleReportPhysicalAddress(src cec.LogicalAddress, m cec.ReportPhysicalAddress) {
	if !src.IsPeer() {
		return
	}
	added, err := p.dir.SetPhysicalAddress(src, m.PhysicalAddress, m.DeviceType)
	if err != nil {
		p.debugLog("physical address not stored", "from", uint8(src), "error", err)
		return
	}
	if added {
		p.logState(log.StateEntityDevice, "", "PRESENT", "REPORT_PHYSICAL_ADDRESS from "+src.String())
		p.emit(notify.DeviceAdded(src))
		return
	}
	p.emit(notify.DeviceInfoUpdated(src))
}

// updatePeer applies a directory update for a peer and reports it. Frames
// from the TV and unregistered devices are not stored.
func (p *Processor) updatePeer(src cec.LogicalAddress, update func() error) {
	if !src.IsPeer() {
		return
	}
	if err := update(); err != nil {
		p.debugLog("directory update failed", "from", uint8(src), "error", err)
		return
	}
	p.emit(notify.DeviceInfoUpdated(src))
}

func boolState(b bool) string {
	if b {
		return "ACTIVE"
	}
	return "INACTIVE"
}
