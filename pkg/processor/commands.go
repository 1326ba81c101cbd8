package processor

import (
	"context"
	"fmt"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/log"
	"github.com/devsettings/cecsource-go/pkg/notify"
)

// Commands started by the host. Each returns the send error.

// SendStandby broadcasts Standby.
func (p *Processor) SendStandby(ctx context.Context) error {
	return p.command(ctx, cec.AddrBroadcast, cec.Standby{})
}

// RequestActiveSource broadcasts Request Active Source.
func (p *Processor) RequestActiveSource(ctx context.Context) error {
	return p.command(ctx, cec.AddrBroadcast, cec.RequestActiveSource{})
}

// SendKeyPress sends User Control Pressed followed by User Control Released
// to addr.
func (p *Processor) SendKeyPress(ctx context.Context, addr cec.LogicalAddress, key cec.UICommand) error {
	if err := p.command(ctx, addr, cec.UserControlPressed{Command: key}); err != nil {
		return err
	}
	return p.command(ctx, addr, cec.UserControlReleased{})
}

// AnnounceOSDName sends this device's OSD name to the TV.
func (p *Processor) AnnounceOSDName(ctx context.Context) error {
	return p.command(ctx, cec.AddrTV, cec.SetOSDName{Name: p.announcedName()})
}

// AnnounceVendorID broadcasts this device's vendor ID.
func (p *Processor) AnnounceVendorID(ctx context.Context) error {
	return p.command(ctx, cec.AddrBroadcast, cec.DeviceVendorID{VendorID: p.Identity().VendorID})
}

// AnnouncePhysicalAddress broadcasts Report Physical Address.
func (p *Processor) AnnouncePhysicalAddress(ctx context.Context) error {
	id := p.Identity()
	return p.command(ctx, cec.AddrBroadcast, cec.ReportPhysicalAddress{
		PhysicalAddress: id.PhysicalAddress,
		DeviceType:      id.DeviceType,
	})
}

// OneTouchPlay wakes the TV with Image View On, claims the active source
// with a broadcast Active Source and marks this device active.
func (p *Processor) OneTouchPlay(ctx context.Context) error {
	if err := p.command(ctx, cec.AddrTV, cec.ImageViewOn{}); err != nil {
		return fmt.Errorf("image view on: %w", err)
	}
	id := p.Identity()
	if err := p.command(ctx, cec.AddrBroadcast, cec.ActiveSource{PhysicalAddress: id.PhysicalAddress}); err != nil {
		return fmt.Errorf("active source: %w", err)
	}
	p.SetActive(true)
	return nil
}

// SetActive marks this device as active source (or not) and reports the
// new status. The status is emitted even when it did not change.
func (p *Processor) SetActive(active bool) {
	id := p.Identity()
	if p.dir.SetSelfActive(id.LogicalAddress, id.PhysicalAddress, active) {
		p.logState(log.StateEntityActiveSource, boolState(!active), boolState(active), "local")
	}
	p.emit(notify.ActiveSourceStatusUpdated(active))
}

// EnterStandby records host standby: this device stops being active source
// and reports Standby power status until Resume.
func (p *Processor) EnterStandby() {
	p.SetPowerStatus(cec.PowerStatusStandby)
	p.dir.SetAsleep(true)
	p.logState(log.StateEntityPower, "ON", "STANDBY", "host")
	p.SetActive(false)
}

// Resume records the host leaving standby.
func (p *Processor) Resume() {
	p.SetPowerStatus(cec.PowerStatusOn)
	p.dir.SetAsleep(false)
	p.logState(log.StateEntityPower, "STANDBY", "ON", "host")
}

func (p *Processor) command(ctx context.Context, to cec.LogicalAddress, msg cec.Message) error {
	if err := p.send(ctx, to, msg); err != nil {
		p.logError("command "+cec.Name(msg), err)
		return fmt.Errorf("%s to %d: %w", cec.Name(msg), to, err)
	}
	return nil
}
